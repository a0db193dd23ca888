// Package employee derives an employee's standing from the optional
// performance rating and termination date carried on a directory entry.
package employee

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rating bounds on the 1-5 performance scale.
const (
	MinRating = 1
	MaxRating = 5
)

// Standing is one of Active, Rated or Terminated.
type Standing interface {
	Label() string
	standing()
}

// Active is an employee with no rating and no termination date.
type Active struct{}

// Rated is an active employee with a performance rating.
type Rated struct {
	Level int
}

// Terminated is a former employee. Date is the raw termination date.
type Terminated struct {
	Date string
}

func (Active) standing()     {}
func (Rated) standing()      {}
func (Terminated) standing() {}

func (Active) Label() string { return "Active" }

// Label maps the rating onto its band. Out-of-range levels are clamped.
func (r Rated) Label() string {
	switch {
	case r.Level >= 5:
		return "Excellent"
	case r.Level == 4:
		return "Good"
	case r.Level == 3:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

func (Terminated) Label() string { return "Terminated" }

// Derive computes the standing. A termination date wins over any rating.
func Derive(rating *int, terminatedOn string) Standing {
	if d := strings.TrimSpace(terminatedOn); d != "" {
		return Terminated{Date: d}
	}
	if rating != nil {
		return Rated{Level: clamp(*rating)}
	}
	return Active{}
}

// ParseRating parses a CLI rating argument. An empty string means no rating.
func ParseRating(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q: %w", s, err)
	}
	if n < MinRating || n > MaxRating {
		return nil, fmt.Errorf("rating %d out of range %d-%d", n, MinRating, MaxRating)
	}
	return &n, nil
}

// ValidateDate checks a termination date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid termination date %q: %w", s, err)
	}
	return nil
}

func clamp(n int) int {
	if n < MinRating {
		return MinRating
	}
	if n > MaxRating {
		return MaxRating
	}
	return n
}
