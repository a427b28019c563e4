package filter

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Brightness is the HSL lightness of c, (max+min)/2 on channels scaled to [0,1].
func Brightness(c RGB) float64 {
	_, _, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
	return l
}

// reduceAt picks, among the element's neighbors of (x, y), the sample with
// the highest (brighter) or lowest brightness. Neighbors are visited
// row-major over the mask and the first one wins ties. sample is evaluated
// at the clamped neighbor coordinate, which lets erosion and dilation nest.
func reduceAt(src *PixelBuffer, se StructuringElement, x, y int, sample Rule, brighter bool) RGB {
	var best RGB
	bestL := 0.0
	found := false
	for dy := -1; dy <= 1; dy++ {
		ny := Clamp(y+dy, 0, src.Height-1)
		for dx := -1; dx <= 1; dx++ {
			if !se.Contains(dx, dy) {
				continue
			}
			c := sample(src, Clamp(x+dx, 0, src.Width-1), ny)
			l := Brightness(c)
			if !found || (brighter && l > bestL) || (!brighter && l < bestL) {
				best, bestL, found = c, l, true
			}
		}
	}
	return best
}

func sourceAt(src *PixelBuffer, x, y int) RGB {
	return src.At(x, y)
}

func erodeAt(src *PixelBuffer, se StructuringElement, x, y int) RGB {
	return reduceAt(src, se, x, y, sourceAt, false)
}

func dilateAt(src *PixelBuffer, se StructuringElement, x, y int) RGB {
	return reduceAt(src, se, x, y, sourceAt, true)
}

// subtract is the per-channel saturating difference a-b.
func subtract(a, b RGB) RGB {
	return RGB{
		clampChannel(int(a.R) - int(b.R)),
		clampChannel(int(a.G) - int(b.G)),
		clampChannel(int(a.B) - int(b.B)),
	}
}

// compositeRule builds opening, closing and the derived filters out of the
// erosion and dilation rules. Inner rules always sample the original source
// at the shifted coordinate; no intermediate image is materialized.
func compositeRule(c Composite) (Rule, error) {
	se := elementOrDefault(c.Element)
	erode := func(src *PixelBuffer, x, y int) RGB { return erodeAt(src, se, x, y) }
	dilate := func(src *PixelBuffer, x, y int) RGB { return dilateAt(src, se, x, y) }
	opening := func(src *PixelBuffer, x, y int) RGB { return reduceAt(src, se, x, y, erode, true) }
	closing := func(src *PixelBuffer, x, y int) RGB { return reduceAt(src, se, x, y, dilate, false) }

	switch c.Kind {
	case Opening:
		return opening, nil
	case Closing:
		return closing, nil
	case Gradient:
		return func(src *PixelBuffer, x, y int) RGB {
			return subtract(dilate(src, x, y), erode(src, x, y))
		}, nil
	case TopHat:
		return func(src *PixelBuffer, x, y int) RGB {
			return subtract(src.At(x, y), opening(src, x, y))
		}, nil
	case BlackHat:
		return func(src *PixelBuffer, x, y int) RGB {
			return subtract(closing(src, x, y), src.At(x, y))
		}, nil
	}
	return nil, fmt.Errorf("%w: composite kind %d", ErrInvalidParameter, int(c.Kind))
}
