package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todo-list/internal/api"
	"todo-list/internal/config"
)

//go:embed templates/*.html static/*
var assets embed.FS

const shutdownTimeout = 5 * time.Second

// Server serves the board page and the JSON API
type Server struct {
	api            api.BusinessAPI
	router         *gin.Engine
	logger         *slog.Logger
	exportFilename string
}

// NewServer creates a new web server
func NewServer(businessAPI api.BusinessAPI, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	s := &Server{
		api:            businessAPI,
		router:         router,
		logger:         logger,
		exportFilename: cfg.Export.Filename,
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	router.StaticFS("/static", http.FS(static))

	// Web routes
	router.GET("/", s.handleIndex)

	// API routes
	apiGroup := router.Group("/api")
	apiGroup.Use(limitBody(maxContentSize))
	{
		apiGroup.GET("/board", s.handleAPIBoard)

		apiGroup.POST("/tasks", s.handleAPIAddTask)
		apiGroup.DELETE("/tasks/:id", s.handleAPIRemoveTask)
		apiGroup.POST("/tasks/:id/toggle", s.handleAPIToggleTask)

		apiGroup.POST("/projects", s.handleAPICreateProject)
		apiGroup.PUT("/projects/:id", s.handleAPIRenameProject)
		apiGroup.DELETE("/projects/:id", s.handleAPIDeleteProject)
		apiGroup.POST("/projects/:id/toggle", s.handleAPIToggleProject)
		apiGroup.DELETE("/projects/:id/tasks/:taskId", s.handleAPIDeleteProjectTask)

		apiGroup.POST("/drop", s.handleAPIDrop)
		apiGroup.POST("/decompose", s.handleAPIDecompose)
		apiGroup.POST("/markdown", s.handleAPIMarkdown)
		apiGroup.GET("/export.pdf", s.handleAPIExport)
	}

	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger writes one structured line per request
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
