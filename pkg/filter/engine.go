package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownFilter is returned by Build for names missing from Commands.
var ErrUnknownFilter = errors.New("unknown filter")

// ParseSpec splits "name:arg1,arg2" into its name and arguments.
func ParseSpec(spec string) (string, []string) {
	name, rest, found := strings.Cut(strings.TrimSpace(spec), ":")
	if !found || strings.TrimSpace(rest) == "" {
		return name, nil
	}
	args := strings.Split(rest, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return name, args
}

// Build returns the filter registered under commandName, configured from
// args. Missing optional arguments take the defaults listed in Commands.
func Build(commandName string, args []string) (Filter, error) {
	if spec, ok := LookupCommand(commandName); ok && len(spec.Args) == 0 && len(args) != 0 {
		return nil, fmt.Errorf("%s takes no args", commandName)
	}
	switch commandName {
	case "invert":
		return Invert(), nil
	case "grayscale":
		return GrayScale(), nil
	case "sepia", "brightness":
		p := Sepia()
		if commandName == "brightness" {
			p = BrightnessUp()
		}
		if len(args) > 1 {
			return nil, fmt.Errorf("%s takes at most 1 arg: k", commandName)
		}
		if len(args) == 1 && args[0] != "" {
			k, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid k: %w", err)
			}
			p.Strength = k
		}
		return p, nil
	case "wave":
		p := Wave()
		if len(args) > 2 {
			return nil, fmt.Errorf("wave takes at most 2 args: amplitude period")
		}
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid amplitude: %w", err)
			}
			p.Amplitude = v
		}
		if len(args) >= 2 && args[1] != "" {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid period: %w", err)
			}
			if v <= 0 {
				return nil, fmt.Errorf("%w: period must be positive", ErrInvalidParameter)
			}
			p.Period = v
		}
		return p, nil
	case "shift":
		p := Shift()
		if len(args) > 1 {
			return nil, fmt.Errorf("shift takes at most 1 arg: offset")
		}
		if len(args) == 1 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid offset: %w", err)
			}
			p.Offset = v
		}
		return p, nil
	case "perfectReflector":
		return PerfectReflector(), nil
	case "grayWorld":
		return GrayWorld(), nil

	case "blur":
		return Convolution{Kernel: BoxKernel(), Label: commandName}, nil
	case "gaussian":
		radius, sigma := 3, 2.0
		if len(args) > 2 {
			return nil, fmt.Errorf("gaussian takes at most 2 args: radius sigma")
		}
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid radius: %w", err)
			}
			radius = v
		}
		if len(args) >= 2 && args[1] != "" {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid sigma: %w", err)
			}
			sigma = v
		}
		k, err := GaussianKernel(radius, sigma)
		if err != nil {
			return nil, err
		}
		return Convolution{Kernel: k, Label: commandName}, nil
	case "sobel":
		return Convolution{Kernel: SobelKernel(), Label: commandName}, nil
	case "sharpen":
		return Convolution{Kernel: SharpenKernel(), Label: commandName}, nil
	case "sharpenStrong":
		return Convolution{Kernel: SharpenStrongKernel(), Label: commandName}, nil
	case "sharr":
		return Convolution{Kernel: SharrKernel(), Label: commandName}, nil

	case "dilation":
		return Morphological{Element: Plus, Mode: Dilate}, nil
	case "erosion":
		return Morphological{Element: Plus, Mode: Erode}, nil
	case "opening":
		return Composite{Element: Plus, Kind: Opening}, nil
	case "closing":
		return Composite{Element: Plus, Kind: Closing}, nil
	case "gradient":
		return Composite{Element: Plus, Kind: Gradient}, nil
	case "topHat":
		return Composite{Element: Plus, Kind: TopHat}, nil
	case "blackHat":
		return Composite{Element: Plus, Kind: BlackHat}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, commandName)
	}
}

// BuildSpec parses and builds a "name:args" spec.
func BuildSpec(spec string) (Filter, error) {
	name, args := ParseSpec(spec)
	return Build(name, args)
}
