// Package handler provides the HTTP surface of the portfolio API.
package handler

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pratheesh-555/My-Portfolio/metrics"
	"github.com/Pratheesh-555/My-Portfolio/portfolio"
	"github.com/Pratheesh-555/My-Portfolio/store"
)

// DefaultMaxBodyBytes caps POST bodies at 100 KiB.
const DefaultMaxBodyBytes = 100 << 10

// Options configures the optional parts of the handler.
type Options struct {
	// MaxBodyBytes caps POST bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// StaticDir, when set, is served for every non-API path, with
	// index.html as the fallback so client-side routes resolve.
	StaticDir string

	// Metrics enables request metrics and the /metrics endpoint.
	Metrics *metrics.Metrics

	Logger *zap.Logger
}

// Handler holds the server dependencies and registers routes.
type Handler struct {
	store  store.Store
	opts   Options
	log    *zap.Logger
	engine *gin.Engine
}

// New creates a Handler and wires up all routes.
func New(s store.Store, opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{store: s, opts: opts, log: log, engine: gin.New()}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	r := h.engine
	r.Use(gin.Recovery())
	r.Use(loggerMiddleware(h.log))
	if h.opts.Metrics != nil {
		r.Use(metricsMiddleware(h.opts.Metrics))
	}
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/portfolio", h.getPortfolio)
		api.POST("/portfolio", h.savePortfolio)
		api.GET("/health", h.health)
	}

	if h.opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.opts.Metrics.Handler()))
	}

	r.NoRoute(h.notFound)
}

// ---------- helpers ----------

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ---------- endpoints ----------

func (h *Handler) getPortfolio(c *gin.Context) {
	doc, err := h.store.Read(c.Request.Context())
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to read portfolio data")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) savePortfolio(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxBodyBytes)
	defer body.Close()

	doc, err := portfolio.Decode(body)
	if err != nil {
		c.Error(err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid data structure")
		return
	}

	if err := h.store.Write(c.Request.Context(), doc); err != nil {
		c.Error(err)
		if errors.Is(err, portfolio.ErrInvalidDocument) {
			respondError(c, http.StatusBadRequest, "Invalid data structure")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to save portfolio data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Portfolio data saved successfully",
	})
}

// health never touches the store, so liveness does not depend on storage.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Portfolio API is running",
	})
}

func (h *Handler) notFound(c *gin.Context) {
	urlPath := c.Request.URL.Path
	if h.opts.StaticDir == "" || strings.HasPrefix(urlPath, "/api/") || c.Request.Method != http.MethodGet {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}

	// Clean against "/" first so the result cannot climb out of StaticDir.
	file := filepath.Join(h.opts.StaticDir, filepath.FromSlash(path.Clean("/"+urlPath)))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}
	c.File(filepath.Join(h.opts.StaticDir, "index.html"))
}
