package sponsorship

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow   = errors.New("window end must be after start")
	ErrInvalidDuration = errors.New("duration must be a positive number of days")
	ErrInvalidProduct  = errors.New("product reference must not be empty")
)

// Window is the half-open occupancy interval [start, end) of a grant.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints (one ends exactly where the other starts) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w Window) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339Nano), w.end.Format(time.RFC3339Nano))
}

// Duration is a requested occupancy length in whole days.
type Duration struct {
	days int
}

func NewDuration(days int) (Duration, error) {
	if days <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{days: days}, nil
}

func (d Duration) Days() int {
	return d.days
}

func (d Duration) AsTimeDuration() time.Duration {
	return time.Duration(d.days) * 24 * time.Hour
}

// ProductRef is the opaque identifier of the sponsored product.
type ProductRef struct {
	value string
}

func NewProductRef(value string) (ProductRef, error) {
	if value == "" {
		return ProductRef{}, ErrInvalidProduct
	}
	return ProductRef{value: value}, nil
}

func (p ProductRef) String() string {
	return p.value
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
