package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Fepozopo/filterlab/pkg/config"
	"github.com/Fepozopo/filterlab/pkg/filter"
)

// app carries the settings shared by the subcommands.
type app struct {
	cfg config.Config
	log zerolog.Logger
}

// NewRootCommand builds the filterlab command tree. cfg supplies flag
// defaults; log receives diagnostics.
func NewRootCommand(cfg config.Config, log zerolog.Logger) *cobra.Command {
	a := &app{cfg: cfg, log: log}
	root := &cobra.Command{
		Use:           "filterlab",
		Short:         "Apply point, convolution and morphological filters to images",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(a.applyCommand(), a.listCommand(), a.versionCommand(), a.updateCommand())
	return root
}

func (a *app) applyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <input> <output> [filter[:arg,arg...]]...",
		Short: "Apply filters in order and save the result",
		Long: "Apply filters in order and save the result.\n\n" +
			"Filters are given as name[:args], for example gaussian:2,1.5 or wave:10,40.\n" +
			"Without filters an interactive picker is shown. Ctrl-C cancels and\n" +
			"leaves the output file untouched. Run \"filterlab list\" for all names.",
		Args: cobra.MinimumNArgs(2),
		RunE: a.runApply,
	}
	f := cmd.Flags()
	f.IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "goroutines per column")
	f.IntVar(&a.cfg.GaussianRadius, "gaussian-radius", a.cfg.GaussianRadius, "default radius of gaussian")
	f.Float64Var(&a.cfg.GaussianSigma, "gaussian-sigma", a.cfg.GaussianSigma, "default sigma of gaussian")
	f.BoolVarP(&a.cfg.Preview, "preview", "p", a.cfg.Preview, "show the result in the terminal (kitty/iTerm2)")
	return cmd
}

// buildFilter is filter.Build with the configured gaussian defaults filled in.
func (a *app) buildFilter(name string, args []string) (filter.Filter, error) {
	if name == "gaussian" {
		defaults := []string{
			strconv.Itoa(a.cfg.GaussianRadius),
			strconv.FormatFloat(a.cfg.GaussianSigma, 'g', -1, 64),
		}
		full := make([]string, len(defaults))
		copy(full, defaults)
		for i, v := range args {
			if i < len(full) && v != "" {
				full[i] = v
			} else if i >= len(full) {
				full = append(full, v)
			}
		}
		args = full
	}
	return filter.Build(name, args)
}

// parseFilters builds every "name[:args]" spec, stopping at the first error.
func (a *app) parseFilters(specs []string) ([]filter.Filter, error) {
	filters := make([]filter.Filter, 0, len(specs))
	for _, s := range specs {
		name, args := filter.ParseSpec(s)
		f, err := a.buildFilter(name, args)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", s, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func (a *app) runApply(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	if a.cfg.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", a.cfg.Workers)
	}
	if err := CheckOutputPath(output); err != nil {
		return err
	}
	filters, err := a.parseFilters(args[2:])
	if err != nil {
		return err
	}

	img, err := LoadImage(input)
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fmt.Fprintln(stdout, imageInfo(input, img))

	if len(filters) == 0 {
		p := newPrompter(cmd.InOrStdin(), stdout)
		if filters, err = p.pickFilters(a.buildFilter); err != nil {
			return err
		}
		if len(filters) == 0 {
			return errors.New("no filters selected")
		}
	}

	src, err := filter.FromImage(img)
	if err != nil {
		return err
	}
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.Name()
	}
	a.log.Info().Strs("filters", names).Int("workers", a.cfg.Workers).Str("input", input).Msg("applying")

	bar := newProgressLine(stderr, "applying")
	start := time.Now()
	res, err := filter.ApplyAll(cmd.Context(), src, filters, filter.Options{
		Progress: bar.Update,
		Workers:  a.cfg.Workers,
	})
	bar.Done()
	if errors.Is(err, filter.ErrCancelled) {
		fmt.Fprintf(stderr, "cancelled, %s not written\n", output)
		return err
	}
	if err != nil {
		return err
	}

	out := res.ToNRGBA()
	if err := SaveImage(output, out); err != nil {
		return err
	}
	a.log.Info().Str("output", output).Dur("elapsed", time.Since(start)).Msg("saved")
	fmt.Fprintf(stdout, "Saved to %s\n", output)

	if a.cfg.Preview {
		if err := PreviewImage(stdout, out); err != nil {
			a.log.Warn().Err(err).Msg("preview unavailable")
		}
	}
	return nil
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tUSAGE\tDESCRIPTION")
			for _, c := range filter.Commands {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Kind, c.Usage, c.Description)
			}
			return tw.Flush()
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := parseVersion(Version)
			if err != nil {
				return fmt.Errorf("invalid build version %q: %w", Version, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "filterlab %s\n", v)
			return nil
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return CheckForUpdates(cmd.Context(), a.cfg.UpdateRepo, p)
		},
	}
}
