package filter

import (
	"fmt"
	"math"
)

// intensity is the weighted gray level; each term is truncated before summing.
func intensity(c RGB) int {
	return int(0.36*float64(c.R)) + int(0.53*float64(c.G)) + int(0.11*float64(c.B))
}

func pointRule(p Point, src *PixelBuffer) (Rule, error) {
	switch p.Op {
	case OpInvert:
		return invertAt, nil
	case OpGrayScale:
		return grayScaleAt, nil
	case OpSepia:
		k := p.Strength
		return func(src *PixelBuffer, x, y int) RGB {
			i := intensity(src.At(x, y))
			return RGB{
				clampChannel(i + 2*k),
				clampChannel(i + int(0.5*float64(k))),
				clampChannel(i - k),
			}
		}, nil
	case OpBrightness:
		k := p.Strength
		return func(src *PixelBuffer, x, y int) RGB {
			c := src.At(x, y)
			return RGB{
				clampChannel(int(c.R) + k),
				clampChannel(int(c.G) + k),
				clampChannel(int(c.B) + k),
			}
		}, nil
	case OpWave:
		if p.Period <= 0 || math.IsNaN(p.Period) || math.IsInf(p.Period, 0) {
			return nil, fmt.Errorf("%w: wave period %v", ErrInvalidParameter, p.Period)
		}
		if math.IsNaN(p.Amplitude) || math.IsInf(p.Amplitude, 0) {
			return nil, fmt.Errorf("%w: wave amplitude %v", ErrInvalidParameter, p.Amplitude)
		}
		amp, period := p.Amplitude, p.Period
		return func(src *PixelBuffer, x, y int) RGB {
			nx := int(float64(x) + amp*math.Sin(2*math.Pi*float64(y)/period))
			return src.At(Clamp(nx, 0, src.Width-1), y)
		}, nil
	case OpShift:
		off := p.Offset
		return func(src *PixelBuffer, x, y int) RGB {
			return src.AtClamped(x+off, y)
		}, nil
	case OpPerfectReflector:
		return perfectReflectorRule(src), nil
	case OpGrayWorld:
		return grayWorldRule(src), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, p.Op)
}

func invertAt(src *PixelBuffer, x, y int) RGB {
	c := src.At(x, y)
	return RGB{255 - c.R, 255 - c.G, 255 - c.B}
}

func grayScaleAt(src *PixelBuffer, x, y int) RGB {
	i := clampChannel(intensity(src.At(x, y)))
	return RGB{i, i, i}
}

// perfectReflectorRule stretches every channel so its brightest sample maps to 255.
func perfectReflectorRule(src *PixelBuffer) Rule {
	var maxR, maxG, maxB int
	for i := 0; i+2 < len(src.Pix); i += 3 {
		maxR = max(maxR, int(src.Pix[i+0]))
		maxG = max(maxG, int(src.Pix[i+1]))
		maxB = max(maxB, int(src.Pix[i+2]))
	}
	scale := func(v uint8, m int) uint8 {
		if m == 0 {
			return v
		}
		return clampChannel(int(v) * 255 / m)
	}
	return func(src *PixelBuffer, x, y int) RGB {
		c := src.At(x, y)
		return RGB{scale(c.R, maxR), scale(c.G, maxG), scale(c.B, maxB)}
	}
}

// grayWorldRule scales each channel so the channel means become equal.
func grayWorldRule(src *PixelBuffer) Rule {
	var sumR, sumG, sumB float64
	for i := 0; i+2 < len(src.Pix); i += 3 {
		sumR += float64(src.Pix[i+0])
		sumG += float64(src.Pix[i+1])
		sumB += float64(src.Pix[i+2])
	}
	n := float64(src.Width * src.Height)
	meanR, meanG, meanB := sumR/n, sumG/n, sumB/n
	avg := (meanR + meanG + meanB) / 3
	scale := func(v uint8, mean float64) uint8 {
		if mean == 0 {
			return v
		}
		return clampChannel(int(float64(v) * avg / mean))
	}
	return func(src *PixelBuffer, x, y int) RGB {
		c := src.At(x, y)
		return RGB{scale(c.R, meanR), scale(c.G, meanG), scale(c.B, meanB)}
	}
}
