// Package command implements the text command interface shared by the
// server console and the /command HTTP endpoint.
package command

import (
	"fmt"
	"strings"

	"github.com/sufra/receipt-renderer/internal/printing"
	"github.com/sufra/receipt-renderer/internal/renderer"
)

// Executor routes command strings to their handlers.
type Executor struct {
	manager    *printing.Manager
	spooler    *printing.Spooler
	renderOpts *renderer.Options
}

// NewExecutor creates a command executor.
func NewExecutor(manager *printing.Manager, spooler *printing.Spooler, renderOpts *renderer.Options) *Executor {
	return &Executor{
		manager:    manager,
		spooler:    spooler,
		renderOpts: renderOpts,
	}
}

// Result is the outcome of one executed command.
type Result struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Execute parses and runs a command string.
func (e *Executor) Execute(cmdStr string) *Result {
	parts := parseCommand(cmdStr)
	if len(parts) == 0 {
		return &Result{Success: false, Error: "empty command"}
	}

	name, args := parts[0], parts[1:]

	switch name {
	case "render":
		return e.handleRender(args)
	case "print":
		return e.handlePrint(args)
	case "printer":
		return e.handlePrinter(args)
	case "job":
		return e.handleJob(args)
	case "scan":
		return e.handleScan(args)
	case "help":
		return e.handleHelp(args)
	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown command: %s. Type 'help' for available commands", name),
		}
	}
}

// parseCommand splits a command line into fields, honoring single and
// double quotes.
func parseCommand(cmdStr string) []string {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		return nil
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := byte(0)

	for i := 0; i < len(cmdStr); i++ {
		ch := cmdStr[i]
		switch {
		case ch == '"' || ch == '\'':
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
				quoteChar = 0
			} else {
				current.WriteByte(ch)
			}
		case ch == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
