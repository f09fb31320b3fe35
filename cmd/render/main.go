package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"treehealth/internal/application"
	"treehealth/internal/config"
	"treehealth/internal/domain/service/dashboard"
	"treehealth/internal/domain/service/presentation"
	"treehealth/internal/domain/value"
	"treehealth/internal/infrastructure/render"
	"treehealth/pkg/contextx"
	"treehealth/pkg/logx"
)

const (
	formatPNG      = "png"
	formatVegaLite = "vega-lite"
)

var errUnknownFormat = errors.New("unknown output format")

// Flag values.
var (
	output  string
	format  string
	summary bool
)

var rootCmd = &cobra.Command{
	Use:   "render <borough> <mode>",
	Short: "Render the tree health chart of one borough to a file",
	Long: `Render fetches the 2015 street tree census for a borough, aggregates it
the same way the dashboard does and writes the chart as a PNG image or a
Vega-Lite document.

Example:
  render "Staten Island" stewardship -o staten-island.png`,
	Args:          cobra.ExactArgs(2), //nolint:mnd
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRender,
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "chart.png", "output file path")
	rootCmd.Flags().StringVarP(&format, "format", "f", formatPNG, "output format: png or vega-lite")
	rootCmd.Flags().BoolVarP(&summary, "summary", "s", false, "print the chart values to stdout")
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "out" {
			name = "output"
		}

		return pflag.NormalizedName(name)
	})
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("render: %v", err))
		os.Exit(1) //nolint:gocritic
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logx.NewLogger(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logx.NewLogger: %w", err)
	}

	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	state, err := dashboard.Update(dashboard.DefaultState(), dashboard.BoroughSelected(args[0]))
	if err != nil {
		return fmt.Errorf("dashboard.Update: %w", err)
	}

	state, err = dashboard.Update(state, dashboard.ModeSelected(args[1]))
	if err != nil {
		return fmt.Errorf("dashboard.Update: %w", err)
	}

	pipeline := dashboard.NewPipeline(application.NewCensusClient(cfg, logx.NewSensitiveDataMasker()))

	spec, err := pipeline.Build(ctx, state.Selection)
	if err != nil {
		return fmt.Errorf("pipeline.Build: %w", err)
	}

	body, err := encode(spec)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, body, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	if summary {
		printSummary(cmd.OutOrStdout(), spec)
	}

	log.Info(
		"chart written",
		slog.String("file", output),
		slog.String(logx.FieldBorough, state.Selection.Borough.String()),
		slog.String(logx.FieldMode, state.Selection.Mode.String()),
		slog.Int("species", len(spec.Categories)),
	)

	return nil
}

func encode(spec presentation.ChartSpec) ([]byte, error) {
	switch format {
	case formatPNG:
		img, err := render.PNG(spec)
		if err != nil {
			return nil, fmt.Errorf("render.PNG: %w", err)
		}

		return img, nil
	case formatVegaLite:
		doc, err := json.MarshalIndent(render.VegaLite(spec), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json.MarshalIndent: %w", err)
		}

		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

//nolint:gochecknoglobals
var seriesColors = map[string]*color.Color{
	value.HealthPoor.String(): color.New(color.FgRed),
	value.HealthFair.String(): color.New(color.FgYellow),
	value.HealthGood.String(): color.New(color.FgGreen),
}

func printSummary(w io.Writer, spec presentation.ChartSpec) {
	bold := color.New(color.Bold)
	fallback := color.New(color.FgCyan)

	values := make(map[string][]string, len(spec.Categories))

	for _, s := range spec.Series {
		c, ok := seriesColors[s.Name]
		if !ok {
			c = fallback
		}

		for _, p := range s.Points {
			values[p.Category] = append(values[p.Category], c.Sprintf("%s %s", s.Name, formatValue(spec, p.Value)))
		}
	}

	for _, category := range spec.Categories {
		fmt.Fprintf(w, "%s\t", bold.Sprint(category))

		for _, v := range values[category] {
			fmt.Fprintf(w, " %s", v)
		}

		fmt.Fprintln(w)
	}
}

func formatValue(spec presentation.ChartSpec, v float64) string {
	if spec.Grouped {
		return fmt.Sprintf("%.1f", v)
	}

	return fmt.Sprintf("%.1f%%", v*100) //nolint:mnd
}
