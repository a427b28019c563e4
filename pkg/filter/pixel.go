package filter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidDimensions is returned when a buffer is requested with a non-positive size.
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// RGB is a single 8-bit-per-channel sample.
type RGB struct {
	R, G, B uint8
}

// PixelBuffer is a width x height grid of RGB samples stored row-major,
// three bytes per pixel.
type PixelBuffer struct {
	Pix    []uint8
	Stride int
	Width  int
	Height int
}

// NewPixelBuffer allocates a black buffer of the given size.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &PixelBuffer{
		Pix:    make([]uint8, 3*width*height),
		Stride: 3 * width,
		Width:  width,
		Height: height,
	}, nil
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (p *PixelBuffer) PixOffset(x, y int) int {
	return y*p.Stride + x*3
}

// At returns the pixel at (x, y). Coordinates must be in range.
func (p *PixelBuffer) At(x, y int) RGB {
	i := p.PixOffset(x, y)
	return RGB{p.Pix[i], p.Pix[i+1], p.Pix[i+2]}
}

// Set stores c at (x, y). Coordinates must be in range.
func (p *PixelBuffer) Set(x, y int, c RGB) {
	i := p.PixOffset(x, y)
	p.Pix[i+0] = c.R
	p.Pix[i+1] = c.G
	p.Pix[i+2] = c.B
}

// AtClamped returns the pixel nearest to (x, y) inside the buffer.
func (p *PixelBuffer) AtClamped(x, y int) RGB {
	return p.At(Clamp(x, 0, p.Width-1), Clamp(y, 0, p.Height-1))
}

// Clone returns a deep copy of p.
func (p *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{
		Pix:    make([]uint8, len(p.Pix)),
		Stride: p.Stride,
		Width:  p.Width,
		Height: p.Height,
	}
	copy(out.Pix, p.Pix)
	return out
}

// FromImage converts any image.Image into a PixelBuffer. Alpha is dropped;
// colors are read non-premultiplied.
func FromImage(src image.Image) (*PixelBuffer, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	b := src.Bounds()
	out, err := NewPixelBuffer(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				i := n.PixOffset(b.Min.X+x, b.Min.Y+y)
				j := out.PixOffset(x, y)
				copy(out.Pix[j:j+3], n.Pix[i:i+3])
			}
		}
		return out, nil
	}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Set(x, y, RGB{c.R, c.G, c.B})
		}
	}
	return out, nil
}

// ToNRGBA returns an opaque *image.NRGBA copy of p.
func (p *PixelBuffer) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			i := out.PixOffset(x, y)
			j := p.PixOffset(x, y)
			out.Pix[i+0] = p.Pix[j+0]
			out.Pix[i+1] = p.Pix[j+1]
			out.Pix[i+2] = p.Pix[j+2]
			out.Pix[i+3] = 255
		}
	}
	return out
}

// Clamp clamps v to [lo,hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampChannel saturates v into a channel value.
func clampChannel(v int) uint8 {
	return uint8(Clamp(v, 0, 255))
}
