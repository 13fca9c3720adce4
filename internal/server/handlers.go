package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/fewie27/ultimate/internal/db"
)

type uploadResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// uploadDocument accepts a multipart upload, runs the analysis pipeline and
// persists the result. The stored file is kept for reference under
// <uploads>/<id>_<filename>.
func (s *Server) uploadDocument(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file part")
	}
	if fileHeader.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No selected file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	result := s.analyzer.Analyze(c.Request().Context(), data, fileHeader.Filename)

	filename := filepath.Base(fileHeader.Filename)
	if err := db.StoreAnalysis(c.Request().Context(), s.db, result, filename); err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}

	// the raw upload is kept best-effort; analysis is already persisted
	path := filepath.Join(s.uploadsDir, result.ID+"_"+filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Could not keep uploaded file")
	}

	return c.JSON(http.StatusCreated, uploadResponse{ID: result.ID, Message: "File uploaded successfully"})
}

func (s *Server) getAnalysis(c echo.Context) error {
	id := c.Param("id")
	result, err := db.GetAnalysis(c.Request().Context(), s.db, id)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Analysis not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) listDocuments(c echo.Context) error {
	infos, err := db.ListAnalyses(c.Request().Context(), s.db)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, infos)
}
