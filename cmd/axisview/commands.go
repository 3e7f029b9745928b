package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/axisview/internal/config"
	"github.com/verte-zerg/axisview/internal/model"
	"github.com/verte-zerg/axisview/internal/ruler"
	"github.com/verte-zerg/axisview/internal/store"
)

var (
	ticksWidth int
	ticksColor bool

	viewResume bool

	segDomain   string
	segBegin    string
	segEnd      string
	segColor    string
	segTooltip  string
	segBandFrom float64
	segBandTo   float64
)

func newTicksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Print the ruler and tick list for a range",
		Args:  cobra.NoArgs,
		RunE:  runTicksCmd,
	}
	addAxisFlags(cmd)
	cmd.Flags().IntVar(&ticksWidth, "width", 0, "ruler width in cells (default: terminal width)")
	cmd.Flags().BoolVar(&ticksColor, "color", false, "force colored output")
	return cmd
}

func runTicksCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	width := ticksWidth
	if !cmd.Flags().Changed("width") {
		width = ruler.TerminalWidth()
	}
	if width <= 0 {
		return fmt.Errorf("--width must be > 0")
	}
	r, err := newRunner(cfg.Domain)
	if err != nil {
		return err
	}
	recs := loadSegments(cmd.Context(), r.name())
	out := cmd.OutOrStdout()
	return r.printTicks(out, cfg, width, ruler.ShouldUseColor(out, ticksColor), recs)
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive axis viewer",
		Args:  cobra.NoArgs,
		RunE:  runViewCmd,
	}
	addAxisFlags(cmd)
	cmd.Flags().BoolVar(&viewResume, "resume", false, "start from the range shown when the viewer last quit")
	return cmd
}

func runViewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	r, err := newRunner(cfg.Domain)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if viewResume && !cmd.Flags().Changed("begin") && !cmd.Flags().Changed("end") {
		v, ok, err := st.GetView(ctx, lastViewName, r.name())
		switch {
		case err != nil:
			logErrf("failed to load last view: %v\n", err)
		case ok:
			cfg.Begin, cfg.End = v.Begin, v.End
		default:
			logErrln("no saved view yet; using the default range")
		}
	}
	recs, err := st.ListSegments(ctx, r.name())
	if err != nil {
		logErrf("failed to load segments: %v\n", err)
	}

	logger, closeLog, err := viewerLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	saved, err := r.runView(cfg, recs, logger)
	if err != nil {
		return err
	}
	if err := st.SaveView(ctx, saved); err != nil {
		logErrf("failed to save view: %v\n", err)
	}
	return nil
}

// viewerLogger keeps log output away from the terminal while the viewer
// owns it. Debug logs go to a file next to the database.
func viewerLogger() (log.FieldLogger, func(), error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if !verbose {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}
	path := filepath.Join(filepath.Dir(config.DefaultDBPath()), "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	logger.SetOutput(f)
	logger.SetLevel(log.DebugLevel)
	return logger, func() { _ = f.Close() }, nil
}

// loadSegments is best-effort: a missing or broken store only costs the
// segment band.
func loadSegments(ctx context.Context, domain string) []model.SegmentRecord {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	recs, err := st.ListSegments(ctx, domain)
	if err != nil {
		logErrf("failed to load segments: %v\n", err)
		return nil
	}
	return recs
}

func newSegmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Manage segments drawn along the axis",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a segment",
		Args:  cobra.NoArgs,
		RunE:  runSegmentsAddCmd,
	}
	addCmd.Flags().StringVar(&segDomain, "domain", defaultDomain, "segment domain")
	addCmd.Flags().StringVar(&segBegin, "begin", "", "segment start value")
	addCmd.Flags().StringVar(&segEnd, "end", "", "segment end value")
	addCmd.Flags().StringVar(&segColor, "color", "#C89A3A", "segment color (hex or ANSI number)")
	addCmd.Flags().StringVar(&segTooltip, "tooltip", "", "text shown when the cursor is on the segment")
	addCmd.Flags().Float64Var(&segBandFrom, "band-from", 0, "lower edge of the band as a fraction of the row (0-1)")
	addCmd.Flags().Float64Var(&segBandTo, "band-to", 1, "upper edge of the band as a fraction of the row (0-1)")
	_ = addCmd.MarkFlagRequired("begin")
	_ = addCmd.MarkFlagRequired("end")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List segments",
		Args:  cobra.NoArgs,
		RunE:  runSegmentsListCmd,
	}
	listCmd.Flags().StringVar(&segDomain, "domain", "", "only list segments of this domain")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a segment",
		Args:  cobra.ExactArgs(1),
		RunE:  runSegmentsRmCmd,
	}

	cmd.AddCommand(addCmd, listCmd, rmCmd)
	return cmd
}

func runSegmentsAddCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "domain", &segDomain, fileCfg.Axis.Domain)
	domain := strings.ToLower(strings.TrimSpace(segDomain))

	r, err := newRunner(domain)
	if err != nil {
		return fmt.Errorf("--domain: %w", err)
	}
	if err := r.checkRange(segBegin, segEnd); err != nil {
		return err
	}
	rec := model.SegmentRecord{
		Domain:  domain,
		Begin:   strings.TrimSpace(segBegin),
		End:     strings.TrimSpace(segEnd),
		Color:   segColor,
		Tooltip: segTooltip,
	}
	if cmd.Flags().Changed("band-from") || cmd.Flags().Changed("band-to") {
		if err := validateBand(segBandFrom, segBandTo); err != nil {
			return err
		}
		from, to := segBandFrom, segBandTo
		rec.BandFrom, rec.BandTo = &from, &to
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertSegment(cmd.Context(), rec)
	if err != nil {
		return fmt.Errorf("failed to save segment: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runSegmentsListCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	recs, err := st.ListSegments(cmd.Context(), strings.ToLower(strings.TrimSpace(segDomain)))
	if err != nil {
		return fmt.Errorf("failed to list segments: %w", err)
	}
	if len(recs) == 0 {
		logErrln("no segments; add one with: axisview segments add --begin <v> --end <v>")
		return nil
	}
	for _, line := range segmentTable(recs) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runSegmentsRmCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid segment id %q", args[0])
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	ok, err := st.DeleteSegment(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to remove segment: %w", err)
	}
	if !ok {
		return fmt.Errorf("segment %d not found", id)
	}
	return nil
}

func segmentTable(recs []model.SegmentRecord) []string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		band := ""
		if rec.BandFrom != nil && rec.BandTo != nil {
			band = fmt.Sprintf("%.2f-%.2f", *rec.BandFrom, *rec.BandTo)
		}
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Domain,
			rec.Begin,
			rec.End,
			rec.Color,
			band,
			rec.Tooltip,
		})
	}
	return ruler.FormatTable([]string{"ID", "Domain", "Begin", "End", "Color", "Band", "Tooltip"}, rows, map[int]bool{0: true})
}

func validateBand(from, to float64) error {
	if from < 0 || from > 1 {
		return fmt.Errorf("--band-from must be between 0 and 1")
	}
	if to < 0 || to > 1 {
		return fmt.Errorf("--band-to must be between 0 and 1")
	}
	if from >= to {
		return fmt.Errorf("--band-from must be < --band-to")
	}
	return nil
}
