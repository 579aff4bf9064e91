package display

import (
	"fmt"
	"io"
	"sync"
)

// Direction labels the sign of a price move for the console line.
type Direction int

const (
	DirectionFlat Direction = iota
	DirectionUp
	DirectionDown
)

// Symbol returns the one-character column marker for the direction.
func (d Direction) Symbol() string {
	switch d {
	case DirectionUp:
		return "+"
	case DirectionDown:
		return "-"
	default:
		return "="
	}
}

// Writer prints one fixed-width console line per price update.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// PriceUpdate writes the progress line for one ticker update: pair,
// last price, signed delta against the previous update and the
// direction marker, all in fixed-width columns.
func (w *Writer) PriceUpdate(pair string, last, delta float64, dir Direction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%-16s %16.4f %+16.4f  %s\n", pair, last, delta, dir.Symbol())
}
