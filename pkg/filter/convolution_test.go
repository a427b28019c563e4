package filter

import (
	"math"
	"testing"
)

func meanBrightness(p *PixelBuffer) float64 {
	sum := 0.0
	for _, v := range p.Pix {
		sum += float64(v)
	}
	return sum / float64(len(p.Pix))
}

func TestBoxBlurUniformUnchanged(t *testing.T) {
	for _, v := range []uint8{0, 1, 77, 128, 200, 255} {
		src := makeSolid(t, 5, 5, RGB{v, v, v})
		out := applyOrFail(t, src, Convolution{Kernel: BoxKernel()})
		if !equalBuffers(src, out) {
			t.Fatalf("box blur changed uniform gray %d: got %v", v, out.At(2, 2))
		}
	}
}

func TestGaussianUniformUnchanged(t *testing.T) {
	src := makeSolid(t, 9, 6, RGB{31, 129, 254})
	out := applyOrFail(t, src, Convolution{Kernel: DefaultGaussianKernel()})
	if !equalBuffers(src, out) {
		t.Fatalf("gaussian changed a flat image: got %v", out.At(0, 0))
	}
}

func TestBoxBlurPreservesMean(t *testing.T) {
	src := makeRandom(t, 48, 32, 3)
	out := applyOrFail(t, src, Convolution{Kernel: BoxKernel()})
	before, after := meanBrightness(src), meanBrightness(out)
	if math.Abs(before-after) >= 1 {
		t.Fatalf("mean moved from %.3f to %.3f", before, after)
	}
}

func TestSobelFlatIsBlack(t *testing.T) {
	src := makeSolid(t, 6, 4, RGB{90, 180, 33})
	for _, k := range []Kernel{SobelKernel(), SharrKernel()} {
		out := applyOrFail(t, src, Convolution{Kernel: k})
		for i, v := range out.Pix {
			if v != 0 {
				t.Fatalf("edge kernel on flat image: byte %d = %d; want 0", i, v)
			}
		}
	}
}

func TestSobelDetectsHorizontalEdge(t *testing.T) {
	src := makeSolid(t, 5, 5, RGB{})
	for y := 3; y < 5; y++ {
		for x := 0; x < 5; x++ {
			src.Set(x, y, RGB{100, 100, 100})
		}
	}
	out := applyOrFail(t, src, Convolution{Kernel: SobelKernel()})
	// rows below minus rows above: 4*100 at row 2, saturated
	if got := out.At(2, 2); got != (RGB{255, 255, 255}) {
		t.Fatalf("edge row = %v; want saturated white", got)
	}
	if got := out.At(2, 0); got != (RGB{}) {
		t.Fatalf("flat row = %v; want black", got)
	}
}

func TestSharpenSaturates(t *testing.T) {
	src := makeSolid(t, 3, 3, RGB{10, 10, 10})
	src.Set(1, 1, RGB{250, 250, 250})
	out := applyOrFail(t, src, Convolution{Kernel: SharpenKernel()})
	if got := out.At(1, 1); got != (RGB{255, 255, 255}) {
		t.Fatalf("center = %v; want saturated", got)
	}
	// 5*10 - 250 - 3*10 < 0
	if got := out.At(1, 0); got != (RGB{}) {
		t.Fatalf("neighbor = %v; want clamped to 0", got)
	}
}

func TestOutputChannelsInRange(t *testing.T) {
	src := makeRandom(t, 11, 7, 4)
	for _, c := range Commands {
		f, err := Build(c.Name, nil)
		if err != nil {
			t.Fatalf("Build(%s): %v", c.Name, err)
		}
		out := applyOrFail(t, src, f)
		if len(out.Pix) != len(src.Pix) {
			t.Fatalf("%s: pixel slice length %d; want %d", c.Name, len(out.Pix), len(src.Pix))
		}
	}
}
