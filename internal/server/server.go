// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the reference REST backend for the citation catalog.
// It serves the /api routes over a Repository (normally the SQLite store).
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

// Repository is the persistence surface the handlers need.
type Repository interface {
	List(ctx context.Context) ([]types.Citation, error)
	Search(ctx context.Context, term string) ([]types.Citation, error)
	Get(ctx context.Context, id string) (types.Citation, error)
	Create(ctx context.Context, in types.CitationInput) (types.Citation, error)
	Update(ctx context.Context, id string, in types.CitationInput) (types.Citation, error)
	Delete(ctx context.Context, id string) error
}

// Server routes catalog requests to a Repository.
type Server struct {
	repo   Repository
	logger *slog.Logger
	token  string
	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithToken requires "Authorization: Bearer <token>" on every /api request.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// New builds the router.
func New(repo Repository, opts ...Option) *Server {
	s := &Server{repo: repo, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	if s.token != "" {
		api.Use(s.requireToken())
	}
	api.GET("/citations", s.listCitations)
	api.GET("/citations/:id", s.getCitation)
	api.POST("/citations", s.createCitation)
	api.PUT("/citations/:id", s.updateCitation)
	api.DELETE("/citations/:id", s.deleteCitation)
	api.GET("/search", s.searchCitations)
	api.GET("/export", s.exportCitations)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("catalog server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) requireToken() gin.HandlerFunc {
	want := "Bearer " + s.token
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if c.GetHeader("Authorization") != want {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
