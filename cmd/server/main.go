package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sufra/receipt-renderer/internal/api"
	"github.com/sufra/receipt-renderer/internal/command"
	"github.com/sufra/receipt-renderer/internal/config"
	"github.com/sufra/receipt-renderer/internal/console"
	"github.com/sufra/receipt-renderer/internal/printing"
	"github.com/sufra/receipt-renderer/internal/renderer"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fonts := loadFonts(cfg)

	renderOpts := &renderer.Options{
		Fonts:        fonts,
		HTTPClient:   &http.Client{Timeout: cfg.LogoTimeout},
		LogoTimeout:  cfg.LogoTimeout,
		ShareBaseURL: cfg.ShareBaseURL,
	}

	manager, err := printing.NewManager(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("Failed to create printer manager: %v", err)
	}

	printers, err := manager.Scan()
	if err != nil {
		log.Printf("Warning: printer detection failed: %v", err)
	}

	pool := printing.NewPool()
	defer pool.Close()

	spooler := printing.NewSpooler(manager, pool, cfg.MaxPrintRetries)
	defer spooler.Stop()

	monitor := printing.NewMonitor(manager, cfg.ScanInterval)

	server := api.NewServer(manager, pool, spooler, renderOpts)

	spooler.OnUpdate(server.BroadcastJobUpdate)
	manager.OnAttached(server.BroadcastPrinterAdded)
	manager.OnDetached(server.BroadcastPrinterRemoved)

	monitor.Start()
	defer monitor.Stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Run(cfg.Addr()); err != nil {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if cfg.Headless {
		log.Printf("Receipt renderer listening on %s", cfg.Addr())
		if len(printers) > 0 {
			log.Printf("Found %d printer(s)", len(printers))
		}
		select {
		case err := <-serverErr:
			log.Fatalf("Server error: %v", err)
		case <-sigChan:
			return
		}
	}

	executor := command.NewExecutor(manager, spooler, renderOpts)
	ui := console.New(manager, spooler, executor, cfg.Addr())

	log.SetOutput(io.MultiWriter(os.Stderr, ui.LogWriter()))

	manager.OnAttached(func(d *printing.Device) {
		server.BroadcastPrinterAdded(d)
		ui.AddLog(fmt.Sprintf("Printer connected: %s", d.DisplayName()), "info")
	})
	manager.OnDetached(func(id string) {
		server.BroadcastPrinterRemoved(id)
		ui.AddLog(fmt.Sprintf("Printer disconnected: %s", id), "info")
	})

	if len(printers) > 0 {
		ui.AddLog(fmt.Sprintf("Found %d printer(s)", len(printers)), "info")
	}

	uiDone := make(chan struct{})
	go func() {
		if err := ui.Run(); err != nil {
			log.Printf("Console error: %v", err)
		}
		close(uiDone)
	}()

	select {
	case err := <-serverErr:
		ui.Stop()
		log.Fatalf("Server error: %v", err)
	case <-sigChan:
		ui.Stop()
	case <-uiDone:
	}
}

// loadFonts resolves the font set: a configured directory first, then
// common system fonts, then the builtin bitmap face.
func loadFonts(cfg *config.Config) *renderer.FontSet {
	if cfg.FontsDir != "" {
		fonts, err := renderer.LoadFontDir(cfg.FontsDir)
		if err == nil {
			return fonts
		}
		log.Printf("Warning: failed to load fonts from %s: %v", cfg.FontsDir, err)
	}
	return renderer.DefaultFontSet()
}
