// Command tabsel is an interactive picker over tabular data: it reads a
// CSV or JSON table from stdin, lets the user filter and navigate it in
// the terminal, and prints the selected row, column, or cell to stdout.
// Exit status is 0 on confirmation and 1 on abort or when nothing is
// selectable.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jask/tabsel/internal/config"
	"github.com/jask/tabsel/internal/history"
	"github.com/jask/tabsel/internal/output"
	"github.com/jask/tabsel/internal/selection"
	"github.com/jask/tabsel/internal/table"
	"github.com/jask/tabsel/internal/tui"
)

// errAborted marks a user cancellation: exit 1, no error message.
var errAborted = errors.New("selection aborted")

var log = logrus.New()

type options struct {
	configPath string
	format     string
	out        string
	noHeader   bool
	modes      []string
	noFilter   bool
	hide       []string
	historyOn  bool
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stderr, "tabsel:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "tabsel",
		Short:         "Pick a row, column, or cell from tabular data on stdin",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "path to an alternate config file")
	f.StringVarP(&opts.format, "format", "f", "", "input format: csv or json")
	f.StringVarP(&opts.out, "output", "o", "", "output encoding: plain, csv, or json")
	f.BoolVar(&opts.noHeader, "no-header", false, "treat the first CSV record as data, not headers")
	f.StringSliceVar(&opts.modes, "modes", nil, "selection modes to cycle through: row, column, cell")
	f.BoolVar(&opts.noFilter, "no-filter", false, "disable the filter bar")
	f.StringSliceVar(&opts.hide, "hide", nil, "columns to hide, by header name or index")
	f.BoolVar(&opts.historyOn, "history", false, "record the confirmed selection to the history database")
	f.BoolVar(&opts.debug, "debug", false, "write debug logs to a file")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.configPath != "" {
		os.Setenv("TABSEL_CONFIG", opts.configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)
	setupLogging(opts.debug)

	inFormat, err := parseInputFormat(cfg.Input.Format)
	if err != nil {
		return err
	}
	outFormat, err := parseOutputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	modes, err := parseModes(cfg.UI.Modes)
	if err != nil {
		return err
	}

	data, err := readStdin()
	if err != nil {
		return err
	}
	tbl, err := table.Parse(data, inFormat, cfg.Input.HasHeader)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"rows":    len(tbl.Rows),
		"columns": tbl.ColumnCount(),
		"format":  inFormat,
	}).Debug("parsed input")

	visibleCols, err := resolveVisibleColumns(tbl, opts.hide)
	if err != nil {
		return err
	}

	st := selection.NewState(tbl, selection.Options{
		Modes:          modes,
		VisibleColumns: visibleCols,
	})

	final, err := tui.Run(tui.New(tbl, st, cfg, outFormat))
	if err != nil {
		return err
	}
	switch {
	case final.Aborted():
		return errAborted
	case final.ConfirmError() != nil:
		return final.ConfirmError()
	case !final.Confirmed():
		return errAborted
	}

	res, rendered := final.Result()
	fmt.Println(rendered)

	if cfg.History.Enabled {
		recordHistory(cfg.History.Path, res, outFormat, rendered)
	}
	return nil
}

// applyFlags overlays explicitly-set flags onto the loaded config.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	if opts.format != "" {
		cfg.Input.Format = opts.format
	}
	if opts.out != "" {
		cfg.Output.Format = opts.out
	}
	if opts.noHeader {
		cfg.Input.HasHeader = false
	}
	if len(opts.modes) > 0 {
		cfg.UI.Modes = opts.modes
	}
	if opts.noFilter {
		cfg.UI.Filter = false
	}
	if cmd.Flags().Changed("history") {
		cfg.History.Enabled = opts.historyOn
	}
}

func setupLogging(debug bool) {
	log.SetOutput(io.Discard)
	if !debug {
		return
	}
	// Stdout carries the result and stderr carries the UI, so debug logs
	// go to a file.
	dir, err := os.UserCacheDir()
	if err != nil {
		return
	}
	path := filepath.Join(dir, "tabsel", "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
}

func readStdin() ([]byte, error) {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat stdin: %w", err)
	}
	if fi.Mode()&os.ModeCharDevice != 0 {
		return nil, errors.New("no input provided; pipe data into tabsel or redirect from a file")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func parseInputFormat(s string) (table.Format, error) {
	switch table.Format(s) {
	case table.FormatCSV, table.FormatJSON:
		return table.Format(s), nil
	}
	return "", badValueError("input format", s, []string{"csv", "json"})
}

func parseOutputFormat(s string) (output.Format, error) {
	switch output.Format(s) {
	case output.FormatPlain, output.FormatCSV, output.FormatJSON:
		return output.Format(s), nil
	}
	return "", badValueError("output format", s, []string{"plain", "csv", "json"})
}

func parseModes(names []string) ([]selection.Mode, error) {
	valid := make([]string, 0, 3)
	for _, m := range selection.AllModes() {
		valid = append(valid, string(m))
	}
	modes := make([]selection.Mode, 0, len(names))
	for _, name := range names {
		m, ok := selection.ParseMode(strings.TrimSpace(name))
		if !ok {
			return nil, badValueError("selection mode", name, valid)
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// resolveVisibleColumns turns --hide entries (header names or numeric
// indices) into the visible-position mapping. Nil means all visible.
func resolveVisibleColumns(t *table.Model, hide []string) ([]int, error) {
	if len(hide) == 0 {
		return nil, nil
	}
	hidden := make(map[int]bool)
	for _, raw := range hide {
		name := strings.TrimSpace(raw)
		if idx, err := strconv.Atoi(name); err == nil {
			if idx < 0 || idx >= t.ColumnCount() {
				return nil, fmt.Errorf("column index %d out of range (table has %d columns)", idx, t.ColumnCount())
			}
			hidden[idx] = true
			continue
		}
		idx := -1
		for i, h := range t.Headers {
			if strings.EqualFold(h, name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, badValueError("column", name, t.Headers)
		}
		hidden[idx] = true
	}

	visible := make([]int, 0, t.ColumnCount())
	for i := 0; i < t.ColumnCount(); i++ {
		if !hidden[i] {
			visible = append(visible, i)
		}
	}
	return visible, nil
}

// badValueError builds an unknown-value error, with a "did you mean"
// suggestion when a candidate is close enough.
func badValueError(what, got string, candidates []string) error {
	if s := nearest(got, candidates); s != "" {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", what, got, s)
	}
	return fmt.Errorf("unknown %s %q (valid: %s)", what, got, strings.Join(candidates, ", "))
}

func nearest(got string, candidates []string) string {
	const maxDistance = 2
	best := ""
	bestDist := maxDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(got), strings.ToLower(c))
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}

// recordHistory persists the confirmed selection. History is advisory:
// failures are logged and never alter the emitted result or exit status.
func recordHistory(path string, res selection.Result, format output.Format, value string) {
	store, err := history.Open(path)
	if err != nil {
		log.WithError(err).Warn("history unavailable")
		return
	}
	defer store.Close()

	err = store.Record(history.Entry{
		Mode:   string(res.Mode),
		Row:    res.Row,
		Col:    res.Col,
		Format: string(format),
		Value:  value,
	})
	if err != nil {
		log.WithError(err).Warn("history write failed")
	}
}
