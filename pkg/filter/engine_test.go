package filter

import (
	"errors"
	"slices"
	"testing"
)

func TestBuildEveryCommand(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		if seen[c.Name] {
			t.Fatalf("duplicate command %q", c.Name)
		}
		seen[c.Name] = true
		f, err := Build(c.Name, nil)
		if err != nil {
			t.Fatalf("Build(%q): %v", c.Name, err)
		}
		if f.Name() != c.Name {
			t.Errorf("Build(%q).Name() = %q", c.Name, f.Name())
		}
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := Build("posterize", nil); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("err = %v; want ErrUnknownFilter", err)
	}
}

func TestBuildRejectsArgsForPlainFilters(t *testing.T) {
	for _, name := range []string{"invert", "blur", "dilation", "opening"} {
		if _, err := Build(name, []string{"3"}); err == nil {
			t.Errorf("Build(%q, [3]) succeeded", name)
		}
	}
}

func TestParseSpec(t *testing.T) {
	cases := []struct {
		in   string
		name string
		args []string
	}{
		{"invert", "invert", nil},
		{" gaussian:2, 1.5 ", "gaussian", []string{"2", "1.5"}},
		{"wave:", "wave", nil},
		{"wave:,40", "wave", []string{"", "40"}},
	}
	for _, c := range cases {
		name, args := ParseSpec(c.in)
		if name != c.name || !slices.Equal(args, c.args) {
			t.Errorf("ParseSpec(%q) = %q %q; want %q %q", c.in, name, args, c.name, c.args)
		}
	}
}

func TestBuildSpecArguments(t *testing.T) {
	f, err := BuildSpec("gaussian:1,0.5")
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	k := f.(Convolution).Kernel
	if k.Width != 3 || k.Height != 3 {
		t.Fatalf("gaussian:1 size = %dx%d; want 3x3", k.Width, k.Height)
	}

	f, err = BuildSpec("wave:,40")
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	if p := f.(Point); p.Amplitude != 20 || p.Period != 40 {
		t.Fatalf("wave = %+v; want default amplitude and period 40", p)
	}

	f, err = BuildSpec("shift:-5")
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	if p := f.(Point); p.Offset != -5 {
		t.Fatalf("shift offset = %d; want -5", p.Offset)
	}
}

func TestBuildSpecBadArguments(t *testing.T) {
	for _, spec := range []string{
		"sepia:abc",
		"sepia:1,2",
		"wave:1,0",
		"gaussian:-1",
		"gaussian:2,0",
		"shift:1.5",
	} {
		if _, err := BuildSpec(spec); err == nil {
			t.Errorf("BuildSpec(%q) succeeded", spec)
		}
	}
	if _, err := BuildSpec("gaussian:2,0"); !errors.Is(err, ErrInvalidKernel) {
		t.Errorf("zero sigma err = %v; want ErrInvalidKernel", err)
	}
}

func TestLookupCommand(t *testing.T) {
	c, ok := LookupCommand("gaussian")
	if !ok || len(c.Args) != 2 || c.Kind != "convolution" {
		t.Fatalf("LookupCommand(gaussian) = %+v, %v", c, ok)
	}
	if _, ok := LookupCommand("nope"); ok {
		t.Fatalf("LookupCommand(nope) found something")
	}
}
