// Package server exposes the analysis pipeline over HTTP. Routing, file
// storage and persistence live here; the pipeline itself neither knows nor
// cares how results are stored.
package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/fewie27/ultimate/internal/analyze"
	"github.com/fewie27/ultimate/internal/config"
	"github.com/fewie27/ultimate/internal/helper"
)

type Server struct {
	analyzer   *analyze.Analyzer
	db         *bun.DB
	uploadsDir string
}

func New(analyzer *analyze.Analyzer, db *bun.DB, uploadsDir string) *Server {
	return &Server{analyzer: analyzer, db: db, uploadsDir: uploadsDir}
}

// Run builds the echo instance and serves until the listener fails.
func (s *Server) Run(cfg *config.ServerConfig) error {
	if err := helper.CreateFolder(s.uploadsDir); err != nil {
		return err
	}

	e := s.newEcho()

	log.Info().Str("addr", cfg.Addr).Msg("Starting server")
	return e.Start(cfg.Addr)
}

// newEcho assembles the echo instance with middleware and routes.
func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		log.Error().Int("status", code).Str("method", req.Method).Str("path", req.URL.Path).Err(err).Msg("Request failed")
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]string{"error": msg})
		}
	}
	// no cookies in play, so the wildcard origin must stay uncredentialed
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	s.Register(e)
	return e
}

// Register attaches all routes to the given echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	api := e.Group("/api")
	api.POST("/upload", s.uploadDocument)
	api.GET("/analysis/:id", s.getAnalysis)
	api.GET("/documents", s.listDocuments)
}
