package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Fepozopo/filterlab/pkg/config"
	"github.com/Fepozopo/filterlab/pkg/filter"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	fzfBinary = "filterlab-test-no-fzf"
	root := NewRootCommand(config.Default(), zerolog.Nop())
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(10 * x), uint8(20 * y), 100, 255})
		}
	}
	path := filepath.Join(dir, "in.png")
	if err := SaveImage(path, img); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	return path
}

func loadBuffer(t *testing.T, path string) *filter.PixelBuffer {
	t.Helper()
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	p, err := filter.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	return p
}

func TestApplyInvert(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "out.png")

	stdout, err := runCLI(t, context.Background(), "", "apply", in, out, "invert")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(stdout, "Saved to") {
		t.Fatalf("stdout = %q", stdout)
	}
	src, res := loadBuffer(t, in), loadBuffer(t, out)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			s, r := src.At(x, y), res.At(x, y)
			if r != (filter.RGB{R: 255 - s.R, G: 255 - s.G, B: 255 - s.B}) {
				t.Fatalf("(%d,%d) = %v; want inverse of %v", x, y, r, s)
			}
		}
	}
}

func TestApplyChainKeepsSize(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "out.jpg")
	if _, err := runCLI(t, context.Background(), "", "apply", "-w", "2", in, out, "gaussian:1", "sobel", "opening"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	res := loadBuffer(t, out)
	if res.Width != 4 || res.Height != 3 {
		t.Fatalf("output is %dx%d; want 4x3", res.Width, res.Height)
	}
}

func TestApplyCancelledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "out.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runCLI(t, ctx, "", "apply", in, out, "blur")
	if !errors.Is(err, filter.ErrCancelled) {
		t.Fatalf("err = %v; want ErrCancelled", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output exists after cancel (stat err %v)", statErr)
	}
}

func TestApplyRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	cases := [][]string{
		{"apply", in, filepath.Join(dir, "out.xyz"), "invert"},
		{"apply", in, filepath.Join(dir, "out.png"), "posterize"},
		{"apply", in, filepath.Join(dir, "out.png"), "wave:1,0"},
		{"apply", filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), "invert"},
		{"apply", "--workers", "0", in, filepath.Join(dir, "out.png"), "invert"},
		{"apply", in},
	}
	for _, args := range cases {
		if _, err := runCLI(t, context.Background(), "", args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}

func TestApplyInteractivePicker(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "out.png")

	// pick "brightness" by name with k=5, then invert by prefix, then finish
	stdout, err := runCLI(t, context.Background(), "brightness\n5\ninv\n\n", "apply", in, out)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(stdout, "added brightness") || !strings.Contains(stdout, "added invert") {
		t.Fatalf("stdout = %q", stdout)
	}
	src, res := loadBuffer(t, in), loadBuffer(t, out)
	s, r := src.At(1, 1), res.At(1, 1)
	if r.B != 255-(s.B+5) {
		t.Fatalf("blue = %d; want %d", r.B, 255-(s.B+5))
	}
}

func TestApplyInteractiveNothingPicked(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	if _, err := runCLI(t, context.Background(), "\n", "apply", in, filepath.Join(dir, "out.png")); err == nil {
		t.Fatalf("expected an error when no filter is picked")
	}
}

func TestBuildFilterGaussianDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.GaussianRadius, cfg.GaussianSigma = 1, 0.8
	a := &app{cfg: cfg, log: zerolog.Nop()}

	f, err := a.buildFilter("gaussian", nil)
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if k := f.(filter.Convolution).Kernel; k.Width != 3 {
		t.Fatalf("width = %d; want 3 from the configured radius", k.Width)
	}
	f, err = a.buildFilter("gaussian", []string{"2"})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if k := f.(filter.Convolution).Kernel; k.Width != 5 {
		t.Fatalf("width = %d; want 5 from the explicit radius", k.Width)
	}
	if _, err := a.buildFilter("gaussian", []string{"1", "1", "1"}); err == nil {
		t.Fatalf("three gaussian args accepted")
	}
}

func TestListAndVersion(t *testing.T) {
	out, err := runCLI(t, context.Background(), "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range filter.Commands {
		if !strings.Contains(out, c.Usage) {
			t.Errorf("list output lacks %q", c.Usage)
		}
	}
	out, err = runCLI(t, context.Background(), "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "filterlab "+Version {
		t.Fatalf("version output = %q", out)
	}
}
