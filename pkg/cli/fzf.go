package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/filterlab/pkg/filter"
)

// fzfBinary is looked up on PATH; tests point it at a missing name.
var fzfBinary = "fzf"

var errFzfUnavailable = errors.New("fzf not available")

// commandLines formats one "name: description" line per command, the
// listing shown by fzf.
func commandLines(commands []filter.CommandSpec) string {
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Description)
	}
	return b.String()
}

// parseSelection extracts the command name from an fzf output line.
func parseSelection(out string) (string, error) {
	selection := strings.TrimSpace(out)
	name, _, _ := strings.Cut(selection, ":")
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("no command selected")
}

// SelectCommandWithFzf displays the filter commands in fzf and returns the
// selected command name.
func SelectCommandWithFzf(commands []filter.CommandSpec) (string, error) {
	path, err := exec.LookPath(fzfBinary)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errFzfUnavailable, err)
	}
	cmd := exec.Command(path, "--prompt=Filter> ", "--height=40%", "--border")
	cmd.Stdin = strings.NewReader(commandLines(commands))
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	return parseSelection(out.String())
}

// resolveSelection maps a typed answer from the numbered fallback list to a
// command name: a 1-based index, an exact name (case-insensitive) or an
// unambiguous prefix.
func resolveSelection(selection string, commands []filter.CommandSpec) (string, error) {
	if idx, err := strconv.Atoi(selection); err == nil {
		if idx < 1 || idx > len(commands) {
			return "", fmt.Errorf("invalid selection %d", idx)
		}
		return commands[idx-1].Name, nil
	}
	selLower := strings.ToLower(selection)
	var matches []string
	for _, c := range commands {
		name := strings.ToLower(c.Name)
		if name == selLower {
			return c.Name, nil
		}
		if strings.HasPrefix(name, selLower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", filter.ErrUnknownFilter, selection)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("ambiguous selection %q, candidates: %s", selection, strings.Join(matches, ", "))
}

// pickCommand asks for a filter name, through fzf when it is installed and
// a numbered list otherwise. Leaving fzf or an empty answer returns "".
func (p *prompter) pickCommand(commands []filter.CommandSpec) (string, error) {
	name, err := SelectCommandWithFzf(commands)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, errFzfUnavailable) {
		return "", nil
	}
	fmt.Fprintln(p.out, "Filter selection:")
	for i, c := range commands {
		fmt.Fprintf(p.out, "  %2d) %-16s %s\n", i+1, c.Name, c.Description)
	}
	selection, err := p.PromptLine("Enter number or filter name (leave empty to finish): ")
	if err != nil || selection == "" {
		return "", err
	}
	return resolveSelection(selection, commands)
}

// promptArgs asks for each argument of spec. Empty answers keep the default;
// trailing empty answers are dropped.
func (p *prompter) promptArgs(spec filter.CommandSpec) ([]string, error) {
	args := make([]string, len(spec.Args))
	for i, a := range spec.Args {
		val, err := p.PromptLine(fmt.Sprintf("%s (%s, default %s) - %s: ", a.Name, a.Type, a.Default, a.Description))
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}
	return args, nil
}

// pickFilters runs the interactive picker until an empty answer, building
// each chosen filter with build as it goes.
func (p *prompter) pickFilters(build func(name string, args []string) (filter.Filter, error)) ([]filter.Filter, error) {
	var filters []filter.Filter
	for {
		name, err := p.pickCommand(filter.Commands)
		if errors.Is(err, io.EOF) {
			return filters, nil
		}
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		if name == "" {
			return filters, nil
		}
		spec, _ := filter.LookupCommand(name)
		args, err := p.promptArgs(spec)
		if err != nil {
			return nil, err
		}
		f, err := build(name, args)
		if err != nil {
			fmt.Fprintf(p.out, "invalid %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(p.out, "added %s\n", f.Name())
		filters = append(filters, f)
	}
}
