package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/runner"
	"github.com/rezonia/afip-submitter/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Address       string
	MaxConcurrent int
	BatchDelay    time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Debug         bool
}

// Server exposes the validation and submission core over HTTP
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *pipeline.Pipeline
	now      func() time.Time
}

// NewServer creates a new API server around a submission pipeline
func NewServer(config *Config, p *pipeline.Pipeline) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: p,
		now:      time.Now,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices/validate", s.handleValidate)
		v1.POST("/invoices/submit", s.handleSubmit)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readRequests(c *gin.Context) []*model.InvoiceRequest {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil
	}

	requests, err := model.ParseRequests(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice record set", Details: err.Error()})
		return nil
	}
	if len(requests) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no invoice requests in record set"})
		return nil
	}
	return requests
}

// handleValidate runs every domain validator over the posted record set
// without touching the portal
func (s *Server) handleValidate(c *gin.Context) {
	requests := s.readRequests(c)
	if requests == nil {
		return
	}

	resp := ValidationResponse{Valid: true}
	now := s.now()
	for i, req := range requests {
		rv := RequestValidation{
			Index:      i,
			IssuerCUIT: req.IssuerKey(),
			Valid:      true,
		}
		if _, err := req.Validate(now); err != nil {
			rv.Valid = false
			rv.Error = err.Error()
			resp.Valid = false
		}
		resp.Requests = append(resp.Requests, rv)
	}

	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

// handleSubmit schedules and runs the posted record set. Per-request
// failures land in the result list; the call itself only fails on
// malformed input.
func (s *Server) handleSubmit(c *gin.Context) {
	requests := s.readRequests(c)
	if requests == nil {
		return
	}

	batches := scheduler.Schedule(requests, s.config.MaxConcurrent)
	run := runner.New(s.pipeline, runner.WithDelay(s.config.BatchDelay))
	results := run.RunAll(c.Request.Context(), batches)
	report := runner.Summarize(results)

	c.JSON(http.StatusOK, SubmitResponse{
		Total:     report.Total,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Batches:   len(batches),
		Results:   results,
	})
}
