// Registry of named filters understood by Build.
//
// This file mirrors the cases in Build in engine.go. Keep the two in sync
// so callers (CLI, help text, pickers) can read a single source of truth.

package filter

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single named filter and its arguments.
type CommandSpec struct {
	Name        string
	Kind        string // "point", "convolution", "morphology", "composite"
	Args        []ArgSpec
	Usage       string
	Description string
}

// Commands is the authoritative list of filters implemented by Build.
var Commands = []CommandSpec{
	{
		Name:        "invert",
		Kind:        "point",
		Usage:       "invert",
		Description: "Invert every channel (255-c).",
	},
	{
		Name:        "grayscale",
		Kind:        "point",
		Usage:       "grayscale",
		Description: "Gray level 0.36R+0.53G+0.11B.",
	},
	{
		Name:        "sepia",
		Kind:        "point",
		Args:        []ArgSpec{{"k", "int", false, "30", "tone strength"}},
		Usage:       "sepia[:k]",
		Description: "Sepia tone from the gray level (R+2k, G+k/2, B-k).",
	},
	{
		Name:        "brightness",
		Kind:        "point",
		Args:        []ArgSpec{{"k", "int", false, "30", "added to every channel"}},
		Usage:       "brightness[:k]",
		Description: "Raise brightness by a constant.",
	},
	{
		Name:        "wave",
		Kind:        "point",
		Args:        []ArgSpec{{"amplitude", "float", false, "20", "displacement in pixels"}, {"period", "float", false, "30", "wavelength in rows"}},
		Usage:       "wave[:amplitude,period]",
		Description: "Horizontal sinusoidal displacement.",
	},
	{
		Name:        "shift",
		Kind:        "point",
		Args:        []ArgSpec{{"offset", "int", false, "50", "horizontal offset in pixels"}},
		Usage:       "shift[:offset]",
		Description: "Move the image left, repeating the right edge.",
	},
	{
		Name:        "perfectReflector",
		Kind:        "point",
		Usage:       "perfectReflector",
		Description: "Stretch each channel so its maximum becomes 255.",
	},
	{
		Name:        "grayWorld",
		Kind:        "point",
		Usage:       "grayWorld",
		Description: "Balance channel means (gray world assumption).",
	},
	{
		Name:        "blur",
		Kind:        "convolution",
		Usage:       "blur",
		Description: "3x3 box blur.",
	},
	{
		Name:        "gaussian",
		Kind:        "convolution",
		Args:        []ArgSpec{{"radius", "int", false, "3", "kernel radius"}, {"sigma", "float", false, "2", "spread"}},
		Usage:       "gaussian[:radius,sigma]",
		Description: "Gaussian blur, exp(-(i²+j²)/σ²) normalized.",
	},
	{
		Name:        "sobel",
		Kind:        "convolution",
		Usage:       "sobel",
		Description: "Vertical Sobel edge detector.",
	},
	{
		Name:        "sharpen",
		Kind:        "convolution",
		Usage:       "sharpen",
		Description: "4-neighbor sharpening.",
	},
	{
		Name:        "sharpenStrong",
		Kind:        "convolution",
		Usage:       "sharpenStrong",
		Description: "8-neighbor sharpening.",
	},
	{
		Name:        "sharr",
		Kind:        "convolution",
		Usage:       "sharr",
		Description: "Horizontal Scharr edge detector.",
	},
	{
		Name:        "dilation",
		Kind:        "morphology",
		Usage:       "dilation",
		Description: "Brightest pixel of the plus-shaped neighborhood.",
	},
	{
		Name:        "erosion",
		Kind:        "morphology",
		Usage:       "erosion",
		Description: "Darkest pixel of the plus-shaped neighborhood.",
	},
	{
		Name:        "opening",
		Kind:        "composite",
		Usage:       "opening",
		Description: "Erosion then dilation; removes small bright details.",
	},
	{
		Name:        "closing",
		Kind:        "composite",
		Usage:       "closing",
		Description: "Dilation then erosion; fills small dark gaps.",
	},
	{
		Name:        "gradient",
		Kind:        "composite",
		Usage:       "gradient",
		Description: "Dilation minus erosion (morphological edges).",
	},
	{
		Name:        "topHat",
		Kind:        "composite",
		Usage:       "topHat",
		Description: "Source minus opening; isolates small bright features.",
	},
	{
		Name:        "blackHat",
		Kind:        "composite",
		Usage:       "blackHat",
		Description: "Closing minus source; isolates small dark features.",
	},
}

// LookupCommand returns the spec for name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
