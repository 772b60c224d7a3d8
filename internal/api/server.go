// Package api exposes the rendering and printing engine over HTTP and
// WebSocket.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sufra/receipt-renderer/internal/command"
	"github.com/sufra/receipt-renderer/internal/printing"
	"github.com/sufra/receipt-renderer/internal/renderer"
	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

// Server is the HTTP API server.
type Server struct {
	router     *gin.Engine
	manager    *printing.Manager
	pool       *printing.Pool
	spooler    *printing.Spooler
	executor   *command.Executor
	renderOpts *renderer.Options
	upgrader   websocket.Upgrader
	hub        *hub
}

// NewServer wires the engine components into a gin router.
func NewServer(manager *printing.Manager, pool *printing.Pool, spooler *printing.Spooler, renderOpts *renderer.Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(corsMiddleware())

	s := &Server{
		router:     router,
		manager:    manager,
		pool:       pool,
		spooler:    spooler,
		executor:   command.NewExecutor(manager, spooler, renderOpts),
		renderOpts: renderOpts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		hub: newHub(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/render/receipt", s.handleRenderReceipt)
	s.router.POST("/render/invoice", s.handleRenderInvoice)
	s.router.POST("/print", s.handlePrint)

	s.router.GET("/printers", s.handleGetPrinters)
	s.router.POST("/printer/network", s.handleAddNetworkPrinter)
	s.router.POST("/printer/:id/name", s.handleSetPrinterName)

	s.router.GET("/jobs", s.handleGetJobs)
	s.router.GET("/job/:id", s.handleGetJob)

	s.router.POST("/command", s.handleCommand)

	s.router.GET("/ws", s.handleWebSocket)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

type renderReceiptRequest struct {
	Order        *orderdoc.Order         `json:"order" binding:"required"`
	Restaurant   orderdoc.RestaurantInfo `json:"restaurant"`
	Translations orderdoc.Translations   `json:"translations"`
	Language     orderdoc.Language       `json:"language"`
	CreatedBy    string                  `json:"created_by"`
	EstimateOnly bool                    `json:"estimate_only"`
}

func (s *Server) handleRenderReceipt(c *gin.Context) {
	var req renderReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = orderdoc.LanguageEN
	}

	opts := s.requestOptions(req.CreatedBy)

	height, err := renderer.EstimateReceiptHeight(req.Order, req.Restaurant, req.Translations, req.Language, opts)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"width":  renderer.PaperWidth,
		"height": height,
	}

	if !req.EstimateOnly {
		img, err := renderer.GenerateReceiptImage(c.Request.Context(), req.Order, req.Restaurant, req.Translations, req.Language, opts)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		resp["image"] = img
	}

	c.JSON(200, resp)
}

type renderInvoiceRequest struct {
	Invoice      *orderdoc.Invoice       `json:"invoice" binding:"required"`
	Restaurant   orderdoc.RestaurantInfo `json:"restaurant"`
	Translations orderdoc.Translations   `json:"translations"`
	Language     orderdoc.Language       `json:"language"`
	Barcode      bool                    `json:"barcode"`
	Catalog      *renderer.Catalog       `json:"catalog"`
	EstimateOnly bool                    `json:"estimate_only"`
}

func (s *Server) handleRenderInvoice(c *gin.Context) {
	var req renderInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = orderdoc.LanguageEN
	}

	opts := s.requestOptions("")
	opts.Barcode = req.Barcode

	height, err := renderer.EstimateInvoiceHeight(req.Invoice, req.Restaurant, req.Translations, req.Language, opts)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"width":  renderer.PaperWidth,
		"height": height,
	}

	if !req.EstimateOnly {
		var (
			img string
		)
		if req.Invoice.Kind == orderdoc.InvoiceSales && req.Catalog != nil {
			img, err = renderer.GenerateSalesInvoiceImage(c.Request.Context(), req.Invoice, req.Restaurant, req.Translations, req.Language, *req.Catalog, opts)
		} else {
			img, err = renderer.GeneratePurchaseInvoiceImage(c.Request.Context(), req.Invoice, req.Restaurant, req.Translations, req.Language, opts)
		}
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		resp["image"] = img
	}

	c.JSON(200, resp)
}

type printRequest struct {
	PrinterID string `json:"printer_id" binding:"required"`
	renderReceiptRequest
}

func (s *Server) handlePrint(c *gin.Context) {
	var req printRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = orderdoc.LanguageEN
	}

	if s.manager.Get(req.PrinterID) == nil {
		c.JSON(404, gin.H{"error": "printer not found"})
		return
	}

	opts := s.requestOptions(req.CreatedBy)
	dataURL, err := renderer.GenerateReceiptImage(c.Request.Context(), req.Order, req.Restaurant, req.Translations, req.Language, opts)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	img, err := renderer.DecodeDataURL(dataURL)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	jobID := s.spooler.Enqueue(req.PrinterID, img)

	c.JSON(200, gin.H{
		"success": true,
		"job_id":  jobID,
	})
}

func (s *Server) handleGetPrinters(c *gin.Context) {
	c.JSON(200, gin.H{"printers": s.manager.All()})
}

func (s *Server) handleAddNetworkPrinter(c *gin.Context) {
	var req struct {
		Host        string `json:"host" binding:"required"`
		Port        int    `json:"port"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "host is required"})
		return
	}
	if req.Port == 0 {
		req.Port = 9100
	}

	id := s.manager.AddNetwork(req.Host, req.Port, req.Description)

	c.JSON(200, gin.H{
		"success":    true,
		"printer_id": id,
		"printer":    s.manager.Get(id),
	})
}

func (s *Server) handleSetPrinterName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "name is required"})
		return
	}

	if !s.manager.Rename(c.Param("id"), req.Name) {
		c.JSON(404, gin.H{"error": "printer not found"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func (s *Server) handleGetJobs(c *gin.Context) {
	c.JSON(200, gin.H{"jobs": s.spooler.Jobs()})
}

func (s *Server) handleGetJob(c *gin.Context) {
	job := s.spooler.GetJob(c.Param("id"))
	if job == nil {
		c.JSON(404, gin.H{"error": "job not found"})
		return
	}
	c.JSON(200, job)
}

func (s *Server) handleCommand(c *gin.Context) {
	var req struct {
		Command string `json:"command" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "command is required"})
		return
	}

	result := s.executor.Execute(req.Command)
	if !result.Success {
		c.JSON(400, gin.H{"success": false, "error": result.Error})
		return
	}

	resp := gin.H{"success": true}
	if result.Message != "" {
		resp["message"] = result.Message
	}
	for k, v := range result.Data {
		resp[k] = v
	}
	c.JSON(200, resp)
}

// requestOptions clones the server's render options so per-request
// fields never leak between requests.
func (s *Server) requestOptions(createdBy string) *renderer.Options {
	opts := &renderer.Options{}
	if s.renderOpts != nil {
		*opts = *s.renderOpts
	}
	opts.CreatedBy = createdBy
	return opts
}

// Run starts the API server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
