package server

import (
	_ "embed"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed index.html
var indexHTML []byte

// Handler exposes the dashboard HTTP surface. It implements
// http.Handler and can be mounted directly on an http.Server.
type Handler struct {
	router  *gin.Engine
	service *Service
	log     *logrus.Logger
}

// NewHandler builds the gin router around the analysis service.
func NewHandler(service *Service, log *logrus.Logger) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{router: router, service: service, log: log}
	router.Use(h.requestLogger())
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/", h.index)
	h.router.GET("/healthz", h.healthz)

	api := h.router.Group("/api/v1")
	{
		api.POST("/analyze", h.analyze)
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("request")
	}
}

func (h *Handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// analyze accepts one trade history per request, either as a multipart
// "file" field or as a raw CSV body, and responds with the enriched
// report plus the chart data derived from it.
func (h *Handler) analyze(c *gin.Context) {
	reader, err := uploadReader(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer reader.Close()

	analysis, err := h.service.Analyze(c.Request.Context(), reader)
	if err != nil {
		// one error per upload, no partial results
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := analysis.Report
	c.JSON(http.StatusOK, gin.H{
		"summaries": report,
		"totals": gin.H{
			"valuation":       report.TotalValuation(),
			"purchase_amount": report.TotalPurchaseAmount(),
			"profit":          report.TotalProfit(),
		},
		"charts": gin.H{
			"pie":     pieSlices(report),
			"scatter": scatterPoints(analysis.Trades),
		},
	})
}

func uploadReader(c *gin.Context) (io.ReadCloser, error) {
	if file, err := c.FormFile("file"); err == nil {
		return file.Open()
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil, errors.New("missing trade history: upload a CSV file")
	}
	return c.Request.Body, nil
}
