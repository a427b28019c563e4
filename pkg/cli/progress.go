package cli

import (
	"fmt"
	"io"
)

// progressLine redraws a single "label: NN%" line in place. Repeated
// percentages are not redrawn.
type progressLine struct {
	w     io.Writer
	label string
	last  int
}

func newProgressLine(w io.Writer, label string) *progressLine {
	return &progressLine{w: w, label: label, last: -1}
}

func (p *progressLine) Update(percent int) {
	if percent == p.last {
		return
	}
	p.last = percent
	fmt.Fprintf(p.w, "\r%s: %3d%%", p.label, percent)
}

// Done terminates the line, if anything was drawn.
func (p *progressLine) Done() {
	if p.last >= 0 {
		fmt.Fprintln(p.w)
	}
}
