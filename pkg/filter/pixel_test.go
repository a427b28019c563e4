package filter

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
)

func makeSolid(t *testing.T, w, h int, c RGB) *PixelBuffer {
	t.Helper()
	p, err := NewPixelBuffer(w, h)
	if err != nil {
		t.Fatalf("NewPixelBuffer(%d, %d): %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.Set(x, y, c)
		}
	}
	return p
}

func makeRandom(t *testing.T, w, h int, seed uint64) *PixelBuffer {
	t.Helper()
	p, err := NewPixelBuffer(w, h)
	if err != nil {
		t.Fatalf("NewPixelBuffer(%d, %d): %v", w, h, err)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range p.Pix {
		p.Pix[i] = uint8(r.IntN(256))
	}
	return p
}

// makeRandomGray fills every pixel with R=G=B.
func makeRandomGray(t *testing.T, w, h int, seed uint64) *PixelBuffer {
	t.Helper()
	p := makeRandom(t, w, h, seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := p.At(x, y).R
			p.Set(x, y, RGB{v, v, v})
		}
	}
	return p
}

func equalBuffers(a, b *PixelBuffer) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{-5, 0, 10, 0},
		{0, 0, 10, 0},
		{7, 0, 10, 7},
		{10, 0, 10, 10},
		{11, 0, 10, 10},
		{3, 3, 3, 3},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d; want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestNewPixelBufferRejectsEmpty(t *testing.T) {
	for _, d := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		if _, err := NewPixelBuffer(d[0], d[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("NewPixelBuffer(%d, %d) err = %v; want ErrInvalidDimensions", d[0], d[1], err)
		}
	}
}

func TestAtClampedReplicatesEdges(t *testing.T) {
	p := makeRandom(t, 4, 3, 7)
	if p.AtClamped(-2, -9) != p.At(0, 0) {
		t.Fatalf("top-left clamp mismatch")
	}
	if p.AtClamped(100, 1) != p.At(3, 1) {
		t.Fatalf("right edge clamp mismatch")
	}
	if p.AtClamped(2, 50) != p.At(2, 2) {
		t.Fatalf("bottom edge clamp mismatch")
	}
}

func TestFromImageAndBack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 5, 5))
	src.SetNRGBA(2, 3, color.NRGBA{10, 20, 30, 255})
	src.SetNRGBA(4, 4, color.NRGBA{200, 100, 50, 255})

	p, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if p.Width != 3 || p.Height != 2 {
		t.Fatalf("dims = %dx%d; want 3x2", p.Width, p.Height)
	}
	if got := p.At(0, 0); got != (RGB{10, 20, 30}) {
		t.Fatalf("At(0,0) = %v", got)
	}
	if got := p.At(2, 1); got != (RGB{200, 100, 50}) {
		t.Fatalf("At(2,1) = %v", got)
	}

	out := p.ToNRGBA()
	i := out.PixOffset(2, 1)
	if out.Pix[i] != 200 || out.Pix[i+1] != 100 || out.Pix[i+2] != 50 || out.Pix[i+3] != 255 {
		t.Fatalf("ToNRGBA pixel = %v", out.Pix[i:i+4])
	}
}

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(1, 0, color.Gray{Y: 77})
	p, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if got := p.At(1, 0); got != (RGB{77, 77, 77}) {
		t.Fatalf("At(1,0) = %v; want gray 77", got)
	}
}
