package filter

import (
	"errors"
)

// ErrEmptyElement is returned for a structuring element with no active cell.
var ErrEmptyElement = errors.New("structuring element has no active cell")

// StructuringElement is a fixed 3x3 binary mask, indexed [dy+1][dx+1].
type StructuringElement struct {
	mask [3][3]bool
}

// NewStructuringElement builds an element from a row-major 0/1 mask.
// Any non-zero entry is treated as active.
func NewStructuringElement(mask [3][3]uint8) (StructuringElement, error) {
	var se StructuringElement
	active := false
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			se.mask[r][c] = mask[r][c] != 0
			active = active || se.mask[r][c]
		}
	}
	if !active {
		return StructuringElement{}, ErrEmptyElement
	}
	return se, nil
}

// Plus is the cross-shaped element used by default.
var Plus = StructuringElement{mask: [3][3]bool{
	{false, true, false},
	{true, true, true},
	{false, true, false},
}}

// Square selects the full 3x3 neighborhood.
var Square = StructuringElement{mask: [3][3]bool{
	{true, true, true},
	{true, true, true},
	{true, true, true},
}}

// Contains reports whether offset (dx, dy) participates. Offsets outside
// [-1,1] never do.
func (se StructuringElement) Contains(dx, dy int) bool {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	return se.mask[dy+1][dx+1]
}

// isZero is true for the zero value, which has no active cell.
func (se StructuringElement) isZero() bool {
	return se == StructuringElement{}
}
