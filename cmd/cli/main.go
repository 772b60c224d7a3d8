package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultServerURL = "http://localhost:12212"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func main() {
	var serverURL string
	flag.StringVar(&serverURL, "server", defaultServerURL, "Server URL")
	flag.StringVar(&serverURL, "s", defaultServerURL, "Server URL (short)")
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	args := flag.Args()

	if args[0] == "watch" {
		if err := runWatch(serverURL); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
			os.Exit(1)
		}
		return
	}

	result := executeCommand(serverURL, strings.Join(args, " "))
	if result.Success {
		printSuccess(result)
		return
	}
	printError(result)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Receipt Renderer CLI

Usage:
  receipt-cli [flags] <command>

Flags:
  -s, -server <url>    Server URL (default: %s)

Commands:
  render <path-or-url> [--lang en|ar]
    Render an order document to a receipt image

  print <printer-id> <path-or-url> [--lang en|ar]
    Render an order document and queue it on a printer

  printer list
    List all known printers

  printer add-network <host> [port]
    Add a network printer (default port: 9100)

  printer rename <id> <name>
    Set a custom name for a printer

  job list
    List all print jobs

  job status <id>
    Get status of a specific job

  job clear
    Clear finished jobs from the queue

  scan
    Rescan for printers

  watch
    Follow the print queue interactively

  help
    Show help message

Examples:
  receipt-cli render ./order.json --lang ar
  receipt-cli print printer-123 ./order.json
  receipt-cli printer add-network 192.168.1.100 9100
  receipt-cli printer rename printer-123 "Kitchen Printer"
  receipt-cli -s http://localhost:8080 printer list

`, defaultServerURL)
}

type commandResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

func executeCommand(serverURL, command string) *commandResult {
	url := strings.TrimSuffix(serverURL, "/") + "/command"

	body, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	resp, err := http.Post(url, "application/json", strings.NewReader(string(body)))
	if err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to connect to server: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to read response: %v", err)}
	}

	var result commandResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to parse response: %v", err)}
	}
	// Flattened fields land next to success/message.
	var flat map[string]interface{}
	if json.Unmarshal(raw, &flat) == nil {
		delete(flat, "success")
		delete(flat, "message")
		delete(flat, "error")
		if len(flat) > 0 {
			result.Data = flat
		}
	}
	return &result
}

func printSuccess(result *commandResult) {
	if result.Message != "" {
		fmt.Println(successStyle.Render(result.Message))
	}

	if result.Data == nil {
		return
	}

	if printers, ok := result.Data["printers"].([]interface{}); ok {
		fmt.Println("\nPrinters:")
		for _, p := range printers {
			printer, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := printer["name"].(string)
			if name == "" {
				name, _ = printer["description"].(string)
			}
			fmt.Printf("  %s  %s %s\n",
				idStyle.Render(fmt.Sprint(printer["id"])),
				name,
				mutedStyle.Render(fmt.Sprintf("(%v)", printer["kind"])))
		}
	}

	if jobs, ok := result.Data["jobs"].([]interface{}); ok {
		fmt.Println("\nJobs:")
		for _, j := range jobs {
			job, ok := j.(map[string]interface{})
			if !ok {
				continue
			}
			fmt.Printf("  %s  %-10v %s\n",
				idStyle.Render(fmt.Sprint(job["id"])),
				job["status"],
				mutedStyle.Render(fmt.Sprintf("printer: %v", job["printer_id"])))
		}
	}

	if jobID, ok := result.Data["job_id"].(string); ok {
		fmt.Printf("Job ID: %s\n", idStyle.Render(jobID))
	}
	if printerID, ok := result.Data["printer_id"].(string); ok {
		fmt.Printf("Printer ID: %s\n", idStyle.Render(printerID))
	}
	if height, ok := result.Data["height"].(float64); ok {
		fmt.Printf("Height: %dpx\n", int(height))
	}
}

func printError(result *commandResult) {
	if result.Error != "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+result.Error))
	} else if result.Message != "" {
		fmt.Fprintln(os.Stderr, result.Message)
	}
}
