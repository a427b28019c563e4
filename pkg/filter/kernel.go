package filter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidKernel is returned for kernels that are empty, even-sized or
// built from out-of-range parameters.
var ErrInvalidKernel = errors.New("invalid kernel")

// Kernel is a 2D grid of convolution weights stored row-major.
// Width and Height are always odd.
type Kernel struct {
	Width   int
	Height  int
	Weights []float64
}

// NewKernel builds a kernel from row-major weights. Both dimensions must be
// odd and positive, and len(weights) must equal width*height.
func NewKernel(width, height int, weights []float64) (Kernel, error) {
	if width <= 0 || height <= 0 {
		return Kernel{}, fmt.Errorf("%w: empty %dx%d", ErrInvalidKernel, width, height)
	}
	if width%2 == 0 || height%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: even size %dx%d", ErrInvalidKernel, width, height)
	}
	if len(weights) != width*height {
		return Kernel{}, fmt.Errorf("%w: %d weights for %dx%d", ErrInvalidKernel, len(weights), width, height)
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return Kernel{Width: width, Height: height, Weights: w}, nil
}

// mustKernel is for the fixed 3x3 factories below.
func mustKernel(width, height int, weights []float64) Kernel {
	k, err := NewKernel(width, height, weights)
	if err != nil {
		panic(err)
	}
	return k
}

// RadiusX is the horizontal half-width.
func (k Kernel) RadiusX() int { return k.Width / 2 }

// RadiusY is the vertical half-height.
func (k Kernel) RadiusY() int { return k.Height / 2 }

// At returns the weight at offset (dx, dy) from the kernel center.
func (k Kernel) At(dx, dy int) float64 {
	return k.Weights[(dy+k.RadiusY())*k.Width+dx+k.RadiusX()]
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 {
	s := 0.0
	for _, w := range k.Weights {
		s += w
	}
	return s
}

// BoxKernel returns a 3x3 uniform averaging kernel.
func BoxKernel() Kernel {
	const sizeX, sizeY = 3, 3
	w := make([]float64, sizeX*sizeY)
	for i := range w {
		w[i] = 1.0 / float64(sizeX*sizeY)
	}
	return mustKernel(sizeX, sizeY, w)
}

// GaussianKernel returns a normalized (2r+1)x(2r+1) kernel with weights
// exp(-(i²+j²)/σ²).
func GaussianKernel(radius int, sigma float64) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, fmt.Errorf("%w: negative radius %d", ErrInvalidKernel, radius)
	}
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return Kernel{}, fmt.Errorf("%w: sigma must be positive, got %v", ErrInvalidKernel, sigma)
	}
	size := 2*radius + 1
	w := make([]float64, size*size)
	norm := 0.0
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			v := math.Exp(-float64(i*i+j*j) / (sigma * sigma))
			w[(j+radius)*size+i+radius] = v
			norm += v
		}
	}
	for i := range w {
		w[i] /= norm
	}
	return NewKernel(size, size, w)
}

// DefaultGaussianKernel is GaussianKernel(3, 2).
func DefaultGaussianKernel() Kernel {
	k, err := GaussianKernel(3, 2)
	if err != nil {
		panic(err)
	}
	return k
}

// SobelKernel is the vertical Sobel derivative. It sums to zero.
func SobelKernel() Kernel {
	return mustKernel(3, 3, []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}

// SharpenKernel is the 4-neighbor sharpening kernel.
func SharpenKernel() Kernel {
	return mustKernel(3, 3, []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// SharpenStrongKernel is the 8-neighbor sharpening kernel.
func SharpenStrongKernel() Kernel {
	return mustKernel(3, 3, []float64{
		-1, -1, -1,
		-1, 9, -1,
		-1, -1, -1,
	})
}

// SharrKernel is the horizontal Scharr derivative.
func SharrKernel() Kernel {
	return mustKernel(3, 3, []float64{
		3, 0, -3,
		10, 0, -10,
		3, 0, -3,
	})
}
