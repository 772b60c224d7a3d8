package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/sufra/receipt-renderer/internal/printing"
	"github.com/sufra/receipt-renderer/internal/renderer"
	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

// document is the JSON envelope accepted by render and print. It
// matches the body of the /render/receipt HTTP endpoint.
type document struct {
	Order        *orderdoc.Order         `json:"order"`
	Restaurant   orderdoc.RestaurantInfo `json:"restaurant"`
	Translations orderdoc.Translations   `json:"translations"`
	Language     orderdoc.Language       `json:"language"`
	CreatedBy    string                  `json:"created_by"`
}

// handleRender renders an order document and reports its dimensions.
// Usage: render <path-or-url> [--lang en|ar]
func (e *Executor) handleRender(args []string) *Result {
	if len(args) < 1 {
		return &Result{Success: false, Error: "usage: render <path-or-url> [--lang en|ar]"}
	}

	doc, res := e.loadDocument(args[0], args[1:])
	if res != nil {
		return res
	}

	opts := e.documentOptions(doc)

	height, err := renderer.EstimateReceiptHeight(doc.Order, doc.Restaurant, doc.Translations, doc.Language, opts)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("failed to measure receipt: %v", err)}
	}

	img, err := renderer.GenerateReceiptImage(context.Background(), doc.Order, doc.Restaurant, doc.Translations, doc.Language, opts)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("failed to render receipt: %v", err)}
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Rendered %dx%d receipt", renderer.PaperWidth, height),
		Data: map[string]interface{}{
			"width":  renderer.PaperWidth,
			"height": height,
			"image":  img,
		},
	}
}

// handlePrint renders an order document and queues it on a printer.
// Usage: print <printer-id> <path-or-url> [--lang en|ar]
func (e *Executor) handlePrint(args []string) *Result {
	if len(args) < 2 {
		return &Result{Success: false, Error: "usage: print <printer-id> <path-or-url> [--lang en|ar]"}
	}

	printerID := args[0]
	if e.manager.Get(printerID) == nil {
		return &Result{Success: false, Error: fmt.Sprintf("printer not found: %s", printerID)}
	}

	doc, res := e.loadDocument(args[1], args[2:])
	if res != nil {
		return res
	}

	dataURL, err := renderer.GenerateReceiptImage(context.Background(), doc.Order, doc.Restaurant, doc.Translations, doc.Language, e.documentOptions(doc))
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("failed to render receipt: %v", err)}
	}

	img, err := renderer.DecodeDataURL(dataURL)
	if err != nil {
		return &Result{Success: false, Error: err.Error()}
	}

	jobID := e.spooler.Enqueue(printerID, img)

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Print job queued: %s", jobID),
		Data: map[string]interface{}{
			"job_id":     jobID,
			"printer_id": printerID,
		},
	}
}

// handlePrinter handles printer subcommands.
// Usage: printer list | add-network <host> [port] | rename <id> <name>
func (e *Executor) handlePrinter(args []string) *Result {
	if len(args) == 0 {
		return &Result{Success: false, Error: "usage: printer <list|add-network|rename>"}
	}

	switch args[0] {
	case "list":
		devices := e.manager.All()
		list := make([]map[string]interface{}, len(devices))
		for i, d := range devices {
			list[i] = map[string]interface{}{
				"id":          d.ID,
				"kind":        d.Kind,
				"description": d.Description,
				"name":        d.Name,
			}
			if d.Kind == printing.KindNetwork {
				list[i]["host"] = d.Host
				list[i]["port"] = d.Port
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Found %d printer(s)", len(devices)),
			Data:    map[string]interface{}{"printers": list},
		}

	case "add-network":
		if len(args) < 2 {
			return &Result{Success: false, Error: "usage: printer add-network <host> [port]"}
		}
		host := args[1]
		port := 9100
		if len(args) >= 3 {
			var err error
			if port, err = strconv.Atoi(args[2]); err != nil {
				return &Result{Success: false, Error: fmt.Sprintf("invalid port: %s", args[2])}
			}
		}
		id := e.manager.AddNetwork(host, port, "")
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Added network printer %s:%d", host, port),
			Data: map[string]interface{}{
				"printer_id": id,
				"printer":    e.manager.Get(id),
			},
		}

	case "rename":
		if len(args) < 3 {
			return &Result{Success: false, Error: "usage: printer rename <id> <name>"}
		}
		if !e.manager.Rename(args[1], args[2]) {
			return &Result{Success: false, Error: fmt.Sprintf("printer not found: %s", args[1])}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Renamed printer %s to %s", args[1], args[2]),
		}

	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown printer subcommand: %s. Use: list, add-network, rename", args[0]),
		}
	}
}

// handleJob handles job subcommands.
// Usage: job list | status <id> | clear
func (e *Executor) handleJob(args []string) *Result {
	if len(args) == 0 {
		return &Result{Success: false, Error: "usage: job <list|status|clear>"}
	}

	switch args[0] {
	case "list":
		jobs := e.spooler.Jobs()
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Found %d job(s)", len(jobs)),
			Data:    map[string]interface{}{"jobs": jobs},
		}

	case "status":
		if len(args) < 2 {
			return &Result{Success: false, Error: "usage: job status <id>"}
		}
		job := e.spooler.GetJob(args[1])
		if job == nil {
			return &Result{Success: false, Error: fmt.Sprintf("job not found: %s", args[1])}
		}
		return &Result{
			Success: true,
			Data: map[string]interface{}{
				"id":         job.ID,
				"printer_id": job.PrinterID,
				"status":     job.Status,
				"attempts":   job.Attempts,
				"error":      job.Error,
				"created_at": job.CreatedAt,
			},
		}

	case "clear":
		e.spooler.ClearFinished()
		return &Result{Success: true, Message: "Cleared finished jobs"}

	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown job subcommand: %s. Use: list, status, clear", args[0]),
		}
	}
}

// handleScan rescans for printers.
func (e *Executor) handleScan(args []string) *Result {
	devices, err := e.manager.Scan()
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("scan failed: %v", err)}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("Detected %d printer(s)", len(devices)),
		Data:    map[string]interface{}{"count": len(devices)},
	}
}

func (e *Executor) handleHelp(args []string) *Result {
	helpText := `Available Commands:

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

  help
    Show this help message

Examples:
  render ./order.json --lang ar
  print printer-123 ./order.json
  printer add-network 192.168.1.100 9100
  printer rename printer-123 "Kitchen Printer"
`
	return &Result{Success: true, Message: helpText}
}

// loadDocument reads and validates an order document from a file or
// URL and applies flag arguments.
func (e *Executor) loadDocument(pathOrURL string, flags []string) (*document, *Result) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		data, err = fetchDocument(pathOrURL)
	} else {
		data, err = os.ReadFile(pathOrURL)
	}
	if err != nil {
		return nil, &Result{Success: false, Error: fmt.Sprintf("failed to load document: %v", err)}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Result{Success: false, Error: fmt.Sprintf("invalid document: %v", err)}
	}
	if doc.Language == "" {
		doc.Language = orderdoc.LanguageEN
	}

	for i := 0; i < len(flags); i++ {
		if flags[i] == "--lang" && i+1 < len(flags) {
			doc.Language = orderdoc.Language(flags[i+1])
			i++
		}
	}

	if err := orderdoc.ValidateLanguage(doc.Language); err != nil {
		return nil, &Result{Success: false, Error: err.Error()}
	}
	if err := orderdoc.ValidateOrder(doc.Order); err != nil {
		return nil, &Result{Success: false, Error: err.Error()}
	}
	return &doc, nil
}

func (e *Executor) documentOptions(doc *document) *renderer.Options {
	opts := &renderer.Options{}
	if e.renderOpts != nil {
		*opts = *e.renderOpts
	}
	opts.CreatedBy = doc.CreatedBy
	return opts
}

func fetchDocument(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch document: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
