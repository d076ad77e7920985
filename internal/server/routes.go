package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RiverChu0/TikTokDownloader/internal/extract"
	"github.com/RiverChu0/TikTokDownloader/internal/recorder"
)

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.handleHealth)
	api := engine.Group("/api")
	api.POST("/extract", s.handleExtract)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// extractRequest is the POST /api/extract payload.
type extractRequest struct {
	Type     string           `json:"type" binding:"required"`
	Items    []map[string]any `json:"items"`
	Nickname string           `json:"nickname"`
	Mark     string           `json:"mark"`
	Earliest string           `json:"earliest"`
	Latest   string           `json:"latest"`
	Post     bool             `json:"post"`
	// Save also writes the records through the configured storage
	// backend into the exports directory.
	Save bool `json:"save"`
}

// extractResponse is the POST /api/extract result.
type extractResponse struct {
	RequestID string           `json:"request_id"`
	Count     int              `json:"count"`
	Records   []extract.Record `json:"records"`
	Export    string           `json:"export,omitempty"`
}

func (s *Server) handleExtract(c *gin.Context) {
	requestID := uuid.New().String()
	log := s.logger.With("request_id", requestID)

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	typ, err := extract.ParseContentType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	earliest, latest, err := extract.ParseDateRange(req.Earliest, req.Latest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rec extract.Recorder
	var export string
	if req.Save {
		sink, path, err := s.openRecorder(requestID)
		if err != nil {
			log.Error("failed to open recorder", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open storage backend"})
			return
		}
		defer sink.Close()
		rec, export = sink, path
	}

	records, err := s.extractor.Run(req.Items, rec, typ, extract.Options{
		Nickname: req.Nickname,
		Mark:     req.Mark,
		Earliest: earliest,
		Latest:   latest,
		Post:     req.Post,
	})
	if err != nil {
		// Run only fails on an unknown tag, which ParseContentType
		// already rejected; treat anything else as a server fault.
		log.Error("extraction failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info("extraction complete", "type", string(typ), "items", len(req.Items), "records", len(records))
	c.JSON(http.StatusOK, extractResponse{
		RequestID: requestID,
		Count:     len(records),
		Records:   records,
		Export:    export,
	})
}

// openRecorder creates the configured storage backend under the
// exports directory, named after the request.
func (s *Server) openRecorder(requestID string) (recorder.Recorder, string, error) {
	format := s.configMgr.Get().Storage.Format
	switch format {
	case "csv":
		path := s.homeDir.ExportFile(fmt.Sprintf("works-%s.csv", requestID))
		rec, err := recorder.NewCSV(path)
		return rec, path, err
	case "sqlite":
		path := s.homeDir.ExportFile("works.db")
		rec, err := recorder.NewSQLite(path)
		return rec, path, err
	default:
		return nil, "", errors.New("unknown storage format: " + format)
	}
}
