// Package main provides the CLI entrypoint for axisview.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/axisview/internal/axis"
	"github.com/verte-zerg/axisview/internal/config"
	"github.com/verte-zerg/axisview/internal/domains"
	"github.com/verte-zerg/axisview/internal/model"
	"github.com/verte-zerg/axisview/internal/ruler"
)

const (
	defaultDomain       = domains.NameLinear
	defaultBegin        = "0"
	defaultEnd          = "100"
	defaultResizePolicy = "extend"
)

var (
	axisDomain        string
	axisBegin         string
	axisEnd           string
	axisMinExtent     int
	axisTargetSpacing float64
	axisResizePolicy  string
	axisRoundShift    bool
	axisCellWidth     int
	limitBegin        string
	limitEnd          string
	limitMinScale     float64
	limitMaxScale     float64

	verbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "axisview",
		Short:         "Terminal axis ruler and viewer",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log axis changes")

	rootCmd.AddCommand(newTicksCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newSegmentsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// addAxisFlags registers the flags shared by ticks and view.
func addAxisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&axisDomain, "domain", defaultDomain, "axis domain ("+strings.Join(domains.Names(), ", ")+")")
	cmd.Flags().StringVar(&axisBegin, "begin", "", "first visible value (default depends on domain)")
	cmd.Flags().StringVar(&axisEnd, "end", "", "last visible value (default depends on domain)")
	cmd.Flags().IntVar(&axisMinExtent, "min-extent", axis.DefaultMinExtent, "smallest valid axis length in pixels")
	cmd.Flags().Float64Var(&axisTargetSpacing, "target-spacing", axis.DefaultTargetSpacing, "nominal pixels between labels (25-250)")
	cmd.Flags().StringVar(&axisResizePolicy, "resize-policy", defaultResizePolicy, "what a resize keeps: extend (scale) or rescale (value)")
	cmd.Flags().BoolVar(&axisRoundShift, "round-shift", true, "align panned values to whole pixels")
	cmd.Flags().IntVar(&axisCellWidth, "cell-width", ruler.DefaultCellWidth, "axis pixels per terminal cell")
	cmd.Flags().StringVar(&limitBegin, "limit-begin", "", "lowest reachable value")
	cmd.Flags().StringVar(&limitEnd, "limit-end", "", "highest reachable value")
	cmd.Flags().Float64Var(&limitMinScale, "min-scale", 0, "smallest units per pixel (0 = unbounded)")
	cmd.Flags().Float64Var(&limitMaxScale, "max-scale", 0, "largest units per pixel (0 = unbounded)")
}

// resolveConfig merges the config file into unchanged flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "domain", &axisDomain, fileCfg.Axis.Domain)
	applyIntConfig(cmd, "min-extent", &axisMinExtent, fileCfg.Axis.MinExtent)
	applyFloatConfig(cmd, "target-spacing", &axisTargetSpacing, fileCfg.Axis.TargetSpacing)
	applyStringConfig(cmd, "resize-policy", &axisResizePolicy, fileCfg.Axis.ResizePolicy)
	applyBoolConfig(cmd, "round-shift", &axisRoundShift, fileCfg.Axis.RoundShift)
	applyIntConfig(cmd, "cell-width", &axisCellWidth, fileCfg.Axis.CellWidth)
	applyStringConfig(cmd, "limit-begin", &limitBegin, fileCfg.Limits.Begin)
	applyStringConfig(cmd, "limit-end", &limitEnd, fileCfg.Limits.End)
	applyFloatConfig(cmd, "min-scale", &limitMinScale, fileCfg.Limits.MinScale)
	applyFloatConfig(cmd, "max-scale", &limitMaxScale, fileCfg.Limits.MaxScale)

	cfg := model.Config{
		Domain:        strings.ToLower(strings.TrimSpace(axisDomain)),
		Begin:         axisBegin,
		End:           axisEnd,
		MinExtent:     axisMinExtent,
		TargetSpacing: axisTargetSpacing,
		ResizePolicy:  axisResizePolicy,
		RoundShift:    axisRoundShift,
		CellWidth:     axisCellWidth,
		LimitBegin:    limitBegin,
		LimitEnd:      limitEnd,
		MinScale:      limitMinScale,
		MaxScale:      limitMaxScale,
	}
	if cfg.Domain == domains.NameLinear || cfg.Domain == domains.NameDecimal {
		if cfg.Begin == "" && cfg.End == "" {
			cfg.Begin, cfg.End = defaultBegin, defaultEnd
		}
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# axisview configuration
# Uncomment a value to enable it. CLI flags override config values.

[axis]
# domain = %q            # One of: %s
# min-extent = %d           # Smallest valid axis length in pixels
# target-spacing = %.0f       # Nominal pixels between labels (25-250)
# resize-policy = %q     # extend keeps the scale, rescale keeps the value
# round-shift = true        # Align panned values to whole pixels
# cell-width = %d            # Axis pixels per terminal cell

[limits]
# begin = "0"               # Lowest reachable value, in the domain's text form
# end = "1000"              # Highest reachable value
# min-scale = 0.001         # Smallest units per pixel
# max-scale = 1000          # Largest units per pixel
`,
		defaultDomain,
		strings.Join(domains.Names(), ", "),
		axis.DefaultMinExtent,
		float64(axis.DefaultTargetSpacing),
		defaultResizePolicy,
		ruler.DefaultCellWidth,
	)
}

func validateConfig(cfg model.Config) error {
	switch cfg.Domain {
	case domains.NameLinear, domains.NameDecimal, domains.NameTime:
	default:
		return fmt.Errorf("--domain must be one of: %s", strings.Join(domains.Names(), ", "))
	}
	if cfg.MinExtent <= 0 {
		return fmt.Errorf("--min-extent must be > 0")
	}
	if cfg.TargetSpacing <= 0 {
		return fmt.Errorf("--target-spacing must be > 0")
	}
	if _, err := domains.ParseResizePolicy(cfg.ResizePolicy); err != nil {
		return fmt.Errorf("--resize-policy must be extend or rescale")
	}
	if cfg.CellWidth <= 0 {
		return fmt.Errorf("--cell-width must be > 0")
	}
	if cfg.MinScale < 0 {
		return fmt.Errorf("--min-scale must be >= 0")
	}
	if cfg.MaxScale < 0 {
		return fmt.Errorf("--max-scale must be >= 0")
	}
	if cfg.MinScale > 0 && cfg.MaxScale > 0 && cfg.MinScale > cfg.MaxScale {
		return fmt.Errorf("--min-scale must be <= --max-scale")
	}
	return nil
}

func setupLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func logErrf(format string, args ...any) {
	log.Errorf(strings.TrimSuffix(format, "\n"), args...)
}

func logErrln(args ...any) {
	log.Warnln(args...)
}
