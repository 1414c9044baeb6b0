package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sadopc/dayzen/internal/export"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sadopc/dayzen/internal/summary"
)

const syntheticHeader = "X-Dayzen-Synthetic"

// statusClientClosedRequest is logged when the caller hangs up mid-request.
const statusClientClosedRequest = 499

type exportQuery struct {
	Type       string `form:"type" binding:"required,oneof=weekly yearly"`
	Format     string `form:"format"`
	WeekOffset string `form:"weekOffset"`
	Year       string `form:"year"`
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// fail maps err onto a status code. Data source failures get a generic
// message; the cause is only logged.
func fail(c *gin.Context, err error, sourceMsg string) {
	c.Error(err)
	switch {
	case errors.Is(err, summary.ErrInvalidPeriodSelector):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, summary.ErrUnauthenticated):
		abortUnauthorized(c, "Unauthorized")
	case errors.Is(err, summary.ErrDataSource):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": sourceMsg})
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func markSynthetic(c *gin.Context, synthetic bool) {
	if synthetic {
		c.Header(syntheticHeader, "true")
	}
}

func sessionOf(c *gin.Context) *session.Session {
	return session.FromContext(c.Request.Context())
}

func (s *Server) loadWeekly(c *gin.Context, raw string) (*summary.WeeklySummary, bool) {
	offset, err := summary.ParseWeekOffset(raw)
	if err != nil {
		fail(c, err, "")
		return nil, false
	}
	sum, err := s.svc.Weekly(c.Request.Context(), sessionOf(c), offset)
	if err != nil {
		fail(c, err, "Failed to fetch weekly summary")
		return nil, false
	}
	markSynthetic(c, sum.Synthetic)
	return sum, true
}

func (s *Server) loadYearly(c *gin.Context, raw string) (*summary.YearlySummary, bool) {
	year, err := summary.ParseYear(raw, s.now())
	if err != nil {
		fail(c, err, "")
		return nil, false
	}
	sum, err := s.svc.Yearly(c.Request.Context(), sessionOf(c), year)
	if err != nil {
		fail(c, err, "Failed to fetch yearly summary")
		return nil, false
	}
	markSynthetic(c, sum.Synthetic)
	return sum, true
}

func (s *Server) weekly(c *gin.Context) {
	if sum, ok := s.loadWeekly(c, c.Query("offset")); ok {
		c.JSON(http.StatusOK, sum)
	}
}

func (s *Server) yearly(c *gin.Context) {
	if sum, ok := s.loadYearly(c, c.Query("year")); ok {
		c.JSON(http.StatusOK, sum)
	}
}

func (s *Server) achievements(c *gin.Context) {
	sum, ok := s.loadYearly(c, c.Query("year"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":         sum.Year,
		"achievements": sum.Achievements,
	})
}

func (s *Server) streak(c *gin.Context) {
	st, err := s.svc.Streak(c.Request.Context(), sessionOf(c))
	if err != nil {
		fail(c, err, "Failed to fetch streak")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) export(c *gin.Context) {
	var q exportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "type must be weekly or yearly"})
		return
	}
	format, err := export.ParseFormat(q.Format)
	if err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sum any
	switch export.Kind(q.Type) {
	case export.Weekly:
		w, ok := s.loadWeekly(c, q.WeekOffset)
		if !ok {
			return
		}
		sum = w
	case export.Yearly:
		y, ok := s.loadYearly(c, q.Year)
		if !ok {
			return
		}
		sum = y
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, sum); err != nil {
		fail(c, err, "")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(format, sum)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
