package filter

import (
	"math"
)

// truncEpsilon absorbs float accumulation error so that a normalized
// uniform kernel over a flat region returns the input value.
const truncEpsilon = 1e-6

// truncChannel truncates an accumulated channel sum and saturates it.
func truncChannel(v float64) uint8 {
	return clampChannel(int(math.Floor(v + truncEpsilon)))
}

// convolveAt sums the kernel-weighted neighborhood of (x, y). Neighbors
// outside the image are replaced by the nearest edge pixel.
func convolveAt(src *PixelBuffer, k Kernel, x, y int) RGB {
	rx, ry := k.RadiusX(), k.RadiusY()
	var sr, sg, sb float64
	for l := -ry; l <= ry; l++ {
		iy := Clamp(y+l, 0, src.Height-1)
		row := (l + ry) * k.Width
		for m := -rx; m <= rx; m++ {
			w := k.Weights[row+m+rx]
			if w == 0 {
				continue
			}
			i := src.PixOffset(Clamp(x+m, 0, src.Width-1), iy)
			sr += float64(src.Pix[i+0]) * w
			sg += float64(src.Pix[i+1]) * w
			sb += float64(src.Pix[i+2]) * w
		}
	}
	return RGB{truncChannel(sr), truncChannel(sg), truncChannel(sb)}
}
