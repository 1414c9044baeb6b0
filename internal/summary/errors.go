package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriodSelector means the selector cannot be resolved to a date range.
	ErrInvalidPeriodSelector = errors.New("invalid period selector")

	// ErrDataSource is matched by every record-fetch failure.
	ErrDataSource = errors.New("data source failure")

	// ErrUnauthenticated is returned when a request carries no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Pipeline names which summary a request belongs to.
type Pipeline string

const (
	PipelineWeekly Pipeline = "weekly"
	PipelineYearly Pipeline = "yearly"
)

// SourceError carries the selector of a failed fetch so callers can retry or report it.
type SourceError struct {
	Pipeline Pipeline
	Selector int
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fetch %s records for %d: %v", e.Pipeline, e.Selector, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrDataSource }
