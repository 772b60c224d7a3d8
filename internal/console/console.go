// Package console is the terminal dashboard shown by the server when
// it runs attached to a TTY.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sufra/receipt-renderer/internal/command"
	"github.com/sufra/receipt-renderer/internal/printing"
)

// Console renders printers, the job queue, and a command prompt in one
// screen.
type Console struct {
	app      *tview.Application
	manager  *printing.Manager
	spooler  *printing.Spooler
	executor *command.Executor
	addr     string

	printersList *tview.List
	jobsTable    *tview.Table
	statusBox    *tview.TextView
	logsArea     *tview.TextView
	commandInput *tview.InputField

	logs      []string
	maxLogs   int
	startTime time.Time
}

// New builds the console UI. Call Run to take over the terminal.
func New(manager *printing.Manager, spooler *printing.Spooler, executor *command.Executor, addr string) *Console {
	c := &Console{
		app:       tview.NewApplication(),
		manager:   manager,
		spooler:   spooler,
		executor:  executor,
		addr:      addr,
		maxLogs:   100,
		startTime: time.Now(),
	}
	c.setupUI()
	return c
}

func (c *Console) setupUI() {
	c.printersList = tview.NewList()
	c.printersList.SetBorder(true)
	c.printersList.SetTitle("Printers")

	c.jobsTable = tview.NewTable()
	c.jobsTable.SetBorder(true)
	c.jobsTable.SetTitle("Print Queue")

	c.statusBox = tview.NewTextView()
	c.statusBox.SetBorder(true)
	c.statusBox.SetTitle("Server Status")
	c.statusBox.SetDynamicColors(true)

	c.logsArea = tview.NewTextView()
	c.logsArea.SetBorder(true)
	c.logsArea.SetTitle("Logs")
	c.logsArea.SetDynamicColors(true)
	c.logsArea.SetScrollable(true)
	c.logsArea.SetChangedFunc(func() {
		c.app.Draw()
	})

	c.commandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0).
		SetPlaceholder("Type a command (e.g. 'help')").
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				c.runCommand(c.commandInput.GetText())
				c.commandInput.SetText("")
			}
		})

	topRow := tview.NewFlex().
		AddItem(c.printersList, 0, 1, false).
		AddItem(c.jobsTable, 0, 1, false).
		AddItem(c.statusBox, 0, 1, false)

	bottom := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(c.logsArea, 0, 3, false).
		AddItem(c.commandInput, 1, 0, true)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, false).
		AddItem(bottom, 0, 1, true)

	c.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if c.commandInput.HasFocus() {
			if event.Key() == tcell.KeyEsc {
				c.app.SetFocus(c.printersList)
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEsc:
			c.app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case ':':
				c.app.SetFocus(c.commandInput)
				return nil
			case 'q':
				c.app.Stop()
				return nil
			}
		}
		return event
	})

	c.app.SetRoot(root, true)
}

// Run starts the console and blocks until the user quits.
func (c *Console) Run() error {
	c.refreshAll()
	go c.refreshTicker()

	c.AddLog(fmt.Sprintf("Receipt renderer listening on %s", c.addr), "info")

	return c.app.Run()
}

// Stop terminates the console.
func (c *Console) Stop() {
	c.app.Stop()
}

func (c *Console) refreshTicker() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		c.app.QueueUpdateDraw(func() {
			c.refreshAll()
		})
	}
}

func (c *Console) refreshAll() {
	c.refreshPrinters()
	c.refreshJobs()
	c.refreshStatus()
}

func (c *Console) refreshPrinters() {
	c.printersList.Clear()

	devices := c.manager.All()
	if len(devices) == 0 {
		c.printersList.AddItem("No printers detected", "", 0, nil)
		return
	}

	for _, d := range devices {
		detail := strings.ToUpper(string(d.Kind))
		switch d.Kind {
		case printing.KindSerial:
			detail += " • " + d.Path
		case printing.KindNetwork:
			detail += fmt.Sprintf(" • %s:%d", d.Host, d.Port)
		case printing.KindUSB:
			detail += fmt.Sprintf(" • %04X:%04X", d.VID, d.PID)
		}
		c.printersList.AddItem(d.DisplayName(), detail, 0, nil)
	}
}

func (c *Console) refreshJobs() {
	c.jobsTable.Clear()

	headers := []string{"Status", "Printer", "Attempts", "Age"}
	for i, h := range headers {
		c.jobsTable.SetCell(0, i, tview.NewTableCell(h).SetAlign(tview.AlignCenter).SetSelectable(false))
	}

	for i, job := range c.spooler.Jobs() {
		row := i + 1
		c.jobsTable.SetCell(row, 0, tview.NewTableCell(string(job.Status)))
		c.jobsTable.SetCell(row, 1, tview.NewTableCell(job.PrinterID))
		c.jobsTable.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", job.Attempts)))
		c.jobsTable.SetCell(row, 3, tview.NewTableCell(time.Since(job.CreatedAt).Truncate(time.Second).String()))
	}
}

func (c *Console) refreshStatus() {
	uptime := time.Since(c.startTime)
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60

	c.statusBox.SetText(fmt.Sprintf(`[green]Running[white]

Uptime: %dh %dm
API: %s
Jobs: %d total`, hours, minutes, c.addr, len(c.spooler.Jobs())))
}

func (c *Console) runCommand(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}

	c.AddLog("> "+cmd, "command")

	switch cmd {
	case "quit", "q", "exit":
		c.app.Stop()
		return
	case "clear":
		c.logs = nil
		c.logsArea.Clear()
		return
	case "refresh":
		c.refreshAll()
		return
	}

	result := c.executor.Execute(cmd)
	if !result.Success {
		c.AddLog(result.Error, "error")
		return
	}
	if result.Message != "" {
		c.AddLog(result.Message, "info")
	}
	c.refreshAll()
}

// AddLog appends a line to the logs panel.
func (c *Console) AddLog(message, level string) {
	var color string
	switch level {
	case "error":
		color = "[red]"
	case "warning":
		color = "[yellow]"
	case "command":
		color = "[cyan]"
	default:
		color = "[white]"
	}

	entry := fmt.Sprintf("%s[%s] %s[white]\n", color, time.Now().Format("15:04:05"), message)
	c.logs = append(c.logs, entry)
	if len(c.logs) > c.maxLogs {
		c.logs = c.logs[len(c.logs)-c.maxLogs:]
	}

	c.logsArea.Clear()
	for _, line := range c.logs {
		fmt.Fprint(c.logsArea, line)
	}
	c.logsArea.ScrollToEnd()
}

// LogWriter adapts the logs panel to io.Writer so other components
// can write into it.
func (c *Console) LogWriter() io.Writer {
	return &logWriter{console: c}
}

type logWriter struct {
	console *Console
}

func (w *logWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimSpace(string(p)); msg != "" {
		w.console.AddLog(msg, "info")
	}
	return len(p), nil
}
