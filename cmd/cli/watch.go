package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8FAFC")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 2)

	statusStyles = map[string]lipgloss.Style{
		"queued":    lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		"printing":  lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		"completed": lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		"failed":    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
)

type watchJob struct {
	ID        string    `json:"id"`
	PrinterID string    `json:"printer_id"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"created_at"`
}

type jobsMsg []watchJob

type jobsErrMsg struct{ err error }

type tickMsg time.Time

type watchModel struct {
	serverURL string
	spinner   spinner.Model
	jobs      []watchJob
	err       error
}

func runWatch(serverURL string) error {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	m := watchModel{serverURL: serverURL, spinner: sp}
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchJobs(m.serverURL), tick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case jobsMsg:
		m.jobs = msg
		m.err = nil
	case jobsErrMsg:
		m.err = msg.err
	case tickMsg:
		return m, tea.Batch(fetchJobs(m.serverURL), tick())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(watchTitleStyle.Render("Print Queue"))
	b.WriteString(" " + m.spinner.View() + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if len(m.jobs) == 0 {
		b.WriteString(mutedStyle.Render("No jobs") + "\n")
	} else {
		for _, job := range m.jobs {
			style, ok := statusStyles[job.Status]
			if !ok {
				style = mutedStyle
			}
			line := fmt.Sprintf("%s  %-10s attempts:%d  %s",
				idStyle.Render(job.ID),
				style.Render(job.Status),
				job.Attempts,
				mutedStyle.Render(job.PrinterID))
			if job.Error != "" {
				line += "  " + errorStyle.Render(job.Error)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + mutedStyle.Render("q to quit"))
	return b.String()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchJobs(serverURL string) tea.Cmd {
	return func() tea.Msg {
		resp, err := http.Get(strings.TrimSuffix(serverURL, "/") + "/jobs")
		if err != nil {
			return jobsErrMsg{err}
		}
		defer resp.Body.Close()

		var payload struct {
			Jobs []watchJob `json:"jobs"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return jobsErrMsg{err}
		}
		return jobsMsg(payload.Jobs)
	}
}
