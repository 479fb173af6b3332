package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mgpai22/srtcheck/internal/logging"
	"github.com/mgpai22/srtcheck/internal/report"
	"github.com/mgpai22/srtcheck/internal/subtitle"
)

// AnalyzeRequest is the JSON form of an analyze call
type AnalyzeRequest struct {
	Content string `json:"content"`
}

func errorResponse(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// AnalyzeHandler accepts raw SRT text, or JSON {"content": "..."} when the
// request is sent as application/json, and returns the analysis document.
func AnalyzeHandler(maxBytes int64, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := subtitle.Read(c.Request.Body, maxBytes)
		if err != nil {
			var maxErr *http.MaxBytesError
			switch {
			case errors.As(err, &maxErr), errors.Is(err, subtitle.ErrInputTooLarge):
				errorResponse(c, http.StatusRequestEntityTooLarge, "request body too large")
			case errors.Is(err, subtitle.ErrInvalidEncoding):
				errorResponse(c, http.StatusBadRequest, err.Error())
			default:
				errorResponse(c, http.StatusBadRequest, "failed to read request body")
			}
			return
		}

		content := body
		if c.ContentType() == "application/json" && strings.TrimSpace(body) != "" {
			var req AnalyzeRequest
			dec := json.NewDecoder(bytes.NewReader([]byte(body)))
			if err := dec.Decode(&req); err != nil {
				errorResponse(c, http.StatusBadRequest, "invalid JSON body")
				return
			}
			content = req.Content
		}

		a := subtitle.Analyze(content)
		logger.Debugw("Analyzed document",
			"segments", len(a.Segments),
			"overlaps", len(a.Overlaps),
			"errors", len(a.Errors),
		)

		c.JSON(http.StatusOK, report.NewDocument(a, nil))
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

func VersionHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "srtcheck",
			"version": version,
		})
	}
}
