// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/cite-catalog/internal/export"
	"github.com/pdiddy/cite-catalog/internal/store"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

const (
	msgNotFound      = "citation not found"
	msgTitleRequired = "title is required"
	msgQueryRequired = "search query is required"
)

func (s *Server) listCitations(c *gin.Context) {
	citations, err := s.repo.List(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, citations)
}

func (s *Server) getCitation(c *gin.Context) {
	citation, err := s.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, citation)
}

func (s *Server) createCitation(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	citation, err := s.repo.Create(c.Request.Context(), in)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, citation)
}

func (s *Server) updateCitation(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	citation, err := s.repo.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, citation)
}

func (s *Server) deleteCitation(c *gin.Context) {
	if err := s.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "citation deleted"})
}

func (s *Server) searchCitations(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgQueryRequired})
		return
	}
	citations, err := s.repo.Search(c.Request.Context(), q)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, citations)
}

func (s *Server) exportCitations(c *gin.Context) {
	format := types.ExportFormat(c.DefaultQuery("format", string(types.ExportJSON)))
	if !format.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": export.ErrUnsupportedFormat.Error()})
		return
	}

	citations, err := s.repo.List(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}

	// Render fully before writing so a failure can still change the status.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, citations); err != nil {
		s.internalError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.FileName(format))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

// bindInput decodes the request body and enforces a non-empty title.
func bindInput(c *gin.Context) (types.CitationInput, bool) {
	var in types.CitationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return in, false
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		return in, false
	}
	return in, true
}

func (s *Server) repoError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	s.internalError(c, err)
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
