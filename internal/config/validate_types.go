package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// HasField reports whether any issue concerns field.
func (err *ValidationError) HasField(field string) bool {
	if err == nil {
		return false
	}
	for _, issue := range err.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) addf(field, format string, args ...any) {
	c.add(field, fmt.Sprintf(format, args...))
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
