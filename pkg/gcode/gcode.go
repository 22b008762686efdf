// Package gcode writes placed motion programs as plain G0/G1 blocks.
// No dialect post-processing: one command per line, axis words in
// fixed order, feeds on cutting moves only.
package gcode

import (
	"fmt"
	"io"

	"github.com/chazu/tenon/pkg/adaptive"
)

// axisOrder fixes the emission order of axis words.
var axisOrder = [...]string{"X", "Y", "Z", "A", "B", "C"}

// Write renders the program to w. Comments become parenthesised
// blocks, as G-code wants them.
func Write(w io.Writer, p adaptive.Program) error {
	for _, c := range p {
		if err := writeCommand(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeCommand(w io.Writer, c adaptive.Command) error {
	if c.Verb == adaptive.Comment {
		_, err := fmt.Fprintf(w, "(%s)\n", c.Comment)
		return err
	}

	var word string
	switch c.Verb {
	case adaptive.Rapid:
		word = "G0"
	case adaptive.Linear:
		word = "G1"
	default:
		return fmt.Errorf("gcode: unknown verb %v", c.Verb)
	}

	if _, err := fmt.Fprint(w, word); err != nil {
		return err
	}
	for _, axis := range axisOrder {
		if v, ok := c.Axes[axis]; ok {
			if _, err := fmt.Fprintf(w, " %s%.4f", axis, v); err != nil {
				return err
			}
		}
	}
	if c.Verb == adaptive.Linear && c.Feed > 0 {
		if _, err := fmt.Fprintf(w, " F%.2f", c.Feed); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
