package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a filter carries a parameter its rule cannot use.
var ErrInvalidParameter = errors.New("invalid filter parameter")

// Rule computes one output pixel from the source buffer.
type Rule func(src *PixelBuffer, x, y int) RGB

// Filter is one of Point, Convolution, Morphological or Composite.
// The set is closed: only types in this package implement it.
type Filter interface {
	Name() string
	isFilter()
}

// PointOp selects a per-pixel color rule.
type PointOp int

const (
	OpInvert PointOp = iota
	OpGrayScale
	OpSepia
	OpBrightness
	OpWave
	OpShift
	OpPerfectReflector
	OpGrayWorld
)

var pointOpNames = map[PointOp]string{
	OpInvert:           "invert",
	OpGrayScale:        "grayscale",
	OpSepia:            "sepia",
	OpBrightness:       "brightness",
	OpWave:             "wave",
	OpShift:            "shift",
	OpPerfectReflector: "perfectReflector",
	OpGrayWorld:        "grayWorld",
}

func (op PointOp) String() string {
	if s, ok := pointOpNames[op]; ok {
		return s
	}
	return fmt.Sprintf("PointOp(%d)", int(op))
}

// Point reads one (possibly resampled) source pixel per output pixel.
type Point struct {
	Op PointOp
	// Strength is the k constant of sepia and brightness.
	Strength int
	// Amplitude and Period shape the wave displacement, in pixels.
	Amplitude float64
	Period    float64
	// Offset is the horizontal displacement of shift.
	Offset int
}

func (p Point) Name() string { return p.Op.String() }
func (Point) isFilter() {}

func Invert() Point           { return Point{Op: OpInvert} }
func GrayScale() Point        { return Point{Op: OpGrayScale} }
func Sepia() Point            { return Point{Op: OpSepia, Strength: 30} }
func BrightnessUp() Point     { return Point{Op: OpBrightness, Strength: 30} }
func Wave() Point             { return Point{Op: OpWave, Amplitude: 20, Period: 30} }
func Shift() Point            { return Point{Op: OpShift, Offset: 50} }
func PerfectReflector() Point { return Point{Op: OpPerfectReflector} }
func GrayWorld() Point        { return Point{Op: OpGrayWorld} }

// Convolution applies a Kernel with edge-replicated sampling.
type Convolution struct {
	Kernel Kernel
	// Label names the kernel in logs and listings; optional.
	Label string
}

func (c Convolution) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("convolution%dx%d", c.Kernel.Width, c.Kernel.Height)
}
func (Convolution) isFilter() {}

// MorphMode selects erosion or dilation.
type MorphMode int

const (
	Erode MorphMode = iota
	Dilate
)

// Morphological is a brightness-ordered min (Erode) or max (Dilate) over a
// structuring element. The zero Element means Plus.
type Morphological struct {
	Element StructuringElement
	Mode    MorphMode
}

func (m Morphological) Name() string {
	if m.Mode == Dilate {
		return "dilation"
	}
	return "erosion"
}
func (Morphological) isFilter() {}

// CompositeKind selects a composition of erosion and dilation.
type CompositeKind int

const (
	Opening CompositeKind = iota
	Closing
	Gradient
	TopHat
	BlackHat
)

var compositeNames = map[CompositeKind]string{
	Opening:  "opening",
	Closing:  "closing",
	Gradient: "gradient",
	TopHat:   "topHat",
	BlackHat: "blackHat",
}

// Composite evaluates erosion and dilation recursively on coordinates of
// the original source. The zero Element means Plus.
type Composite struct {
	Element StructuringElement
	Kind    CompositeKind
}

func (c Composite) Name() string {
	if s, ok := compositeNames[c.Kind]; ok {
		return s
	}
	return fmt.Sprintf("composite(%d)", int(c.Kind))
}
func (Composite) isFilter() {}

func elementOrDefault(se StructuringElement) StructuringElement {
	if se.isZero() {
		return Plus
	}
	return se
}

// ruleFor resolves f into its per-pixel rule. Whole-image statistics some
// point rules need are gathered here, once.
func ruleFor(f Filter, src *PixelBuffer) (Rule, error) {
	switch f := f.(type) {
	case Point:
		return pointRule(f, src)
	case Convolution:
		k, err := NewKernel(f.Kernel.Width, f.Kernel.Height, f.Kernel.Weights)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		return func(src *PixelBuffer, x, y int) RGB {
			return convolveAt(src, k, x, y)
		}, nil
	case Morphological:
		se := elementOrDefault(f.Element)
		switch f.Mode {
		case Erode:
			return func(src *PixelBuffer, x, y int) RGB { return erodeAt(src, se, x, y) }, nil
		case Dilate:
			return func(src *PixelBuffer, x, y int) RGB { return dilateAt(src, se, x, y) }, nil
		}
		return nil, fmt.Errorf("%w: morph mode %d", ErrInvalidParameter, int(f.Mode))
	case Composite:
		return compositeRule(f)
	case nil:
		return nil, fmt.Errorf("%w: nil filter", ErrInvalidParameter)
	}
	return nil, fmt.Errorf("%w: unsupported filter %T", ErrInvalidParameter, f)
}
