// Package main provides the CLI entrypoint for lottopick.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lottopick/internal/combo"
	"github.com/verte-zerg/lottopick/internal/config"
	"github.com/verte-zerg/lottopick/internal/engine"
	"github.com/verte-zerg/lottopick/internal/frequency"
	"github.com/verte-zerg/lottopick/internal/model"
	"github.com/verte-zerg/lottopick/internal/report"
	"github.com/verte-zerg/lottopick/internal/scrape"
	"github.com/verte-zerg/lottopick/internal/viewer"
)

const defaultDirection = "least"

var (
	pickFile        string
	pickURL         string
	pickPool        int
	pickSelect      int
	pickDirection   string
	pickMost        bool
	pickLeast       bool
	pickRejectDups  bool
	pickMaxGames    int
	pickWidth       int
	pickInteractive bool
	pickShowTable   bool

	fetchURL string
	fetchOut string
)

func main() {
	rootCmd := newRootCmd()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lottopick",
		Short:         "Rank lottery numbers by draw frequency and list every game",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPickCmd,
	}

	rootCmd.Flags().StringVar(&pickFile, "file", "", "CSV file of number,frequency rows ('-' for stdin)")
	rootCmd.Flags().StringVar(&pickURL, "url", "", "page to scrape number/frequency rows from")
	rootCmd.Flags().IntVar(&pickPool, "pool", model.DefaultPoolSize, "number of ranked numbers to draw games from")
	rootCmd.Flags().IntVar(&pickSelect, "select", model.DefaultSelectSize, "numbers per game")
	rootCmd.Flags().StringVar(&pickDirection, "direction", defaultDirection, "rank by most or least frequent")
	rootCmd.Flags().BoolVar(&pickMost, "most", false, "shorthand for --direction most")
	rootCmd.Flags().BoolVar(&pickLeast, "least", false, "shorthand for --direction least")
	rootCmd.Flags().BoolVar(&pickRejectDups, "reject-duplicates", false, "fail when a number appears twice instead of keeping the last row")
	rootCmd.Flags().IntVar(&pickMaxGames, "max-games", int(combo.MaxGames), "refuse requests that would produce more games (0 = hard ceiling only)")
	rootCmd.Flags().IntVar(&pickWidth, "width", 0, "pad numbers to this width (0 = widest number)")
	rootCmd.Flags().BoolVar(&pickInteractive, "interactive", false, "browse games in a scrollable view")
	rootCmd.Flags().BoolVar(&pickShowTable, "table", false, "print the parsed frequency table first")
	rootCmd.MarkFlagsMutuallyExclusive("most", "least")
	rootCmd.MarkFlagsMutuallyExclusive("file", "url")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFetchCmd())

	return rootCmd
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "pool", &pickPool, fileCfg.Pick.Pool)
	applyIntConfig(cmd, "select", &pickSelect, fileCfg.Pick.Select)
	applyStringConfig(cmd, "direction", &pickDirection, fileCfg.Pick.Direction)
	applyIntConfig(cmd, "max-games", &pickMaxGames, fileCfg.Pick.MaxGames)
	applyIntConfig(cmd, "width", &pickWidth, fileCfg.Pick.Width)
	if !cmd.Flags().Changed("file") {
		applyStringConfig(cmd, "url", &pickURL, fileCfg.Pick.URL)
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	if pickMaxGames < 0 {
		return fmt.Errorf("--max-games must be >= 0")
	}
	if pickWidth < 0 {
		return fmt.Errorf("--width must be >= 0")
	}

	rows, err := loadRows(cmd.Context(), fileCfg.Fetch)
	if err != nil {
		return err
	}

	eng := engine.New()
	eng.MaxGames = uint64(pickMaxGames)
	if pickRejectDups {
		eng.Policy = model.Reject
	}
	table, err := frequency.ParseWithPolicy(rows, eng.Policy)
	if err != nil {
		return fmt.Errorf("invalid frequency table: %w", err)
	}
	res, err := eng.GenerateTable(table, opts)
	if err != nil {
		return describeGenerateError(err, table.Len(), opts)
	}
	if res.Truncated() {
		logErrf("warning: table has %d numbers, pool of %d requested\n", len(res.Pool), res.Requested)
	}

	reportOpts := report.Options{
		Direction:  opts.Direction,
		SelectSize: opts.SelectSize,
		Width:      pickWidth,
	}
	if pickInteractive {
		program := tea.NewProgram(viewer.NewModel(res, reportOpts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run viewer: %w", err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	reportOpts.Color = report.ShouldUseColor(out)
	if pickShowTable {
		for _, line := range report.FormatFrequencies(table) {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return report.Render(out, res, reportOpts)
}

// buildOptions resolves flags into validated options. --most and --least map
// onto the single direction value.
func buildOptions(cmd *cobra.Command) (model.Options, error) {
	direction, err := model.ParseDirection(pickDirection)
	if err != nil {
		return model.Options{}, fmt.Errorf("--direction: %w", err)
	}
	switch {
	case pickMost:
		direction = model.Most
	case pickLeast:
		direction = model.Least
	}
	if (pickMost || pickLeast) && cmd.Flags().Changed("direction") {
		return model.Options{}, fmt.Errorf("--direction cannot be combined with --most or --least")
	}

	opts := model.Options{
		PoolSize:   pickPool,
		SelectSize: pickSelect,
		Direction:  direction,
	}
	if err := engine.Validate(opts); err != nil {
		return model.Options{}, describeOptionsError(err, opts)
	}
	return opts, nil
}

func describeOptionsError(err error, opts model.Options) error {
	switch {
	case opts.PoolSize <= 0:
		return fmt.Errorf("--pool must be > 0: %w", err)
	case opts.SelectSize <= 0:
		return fmt.Errorf("--select must be > 0: %w", err)
	case opts.SelectSize > opts.PoolSize:
		return fmt.Errorf("--select %d exceeds --pool %d: %w", opts.SelectSize, opts.PoolSize, err)
	default:
		return err
	}
}

func describeGenerateError(err error, tableLen int, opts model.Options) error {
	if opts.SelectSize > tableLen {
		return fmt.Errorf("table has only %d numbers, cannot choose %d: %w", tableLen, opts.SelectSize, err)
	}
	return err
}

func loadRows(ctx context.Context, fetchCfg config.FetchConfig) ([][]string, error) {
	switch {
	case pickFile != "":
		rows, err := frequency.LoadFile(pickFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", pickFile, err)
		}
		return rows, nil
	case pickURL != "":
		client := scrape.New(scrapeOptions(fetchCfg))
		logErrf("Fetching %s...\n", pickURL)
		rows, err := client.FetchRows(ctx, pickURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", pickURL, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("one of --file or --url is required")
	}
}

func scrapeOptions(cfg config.FetchConfig) scrape.Options {
	opts := scrape.DefaultOptions()
	if cfg.Timeout != nil && cfg.Timeout.Duration > 0 {
		opts.Timeout = cfg.Timeout.Duration
	}
	if cfg.UserAgent != nil && *cfg.UserAgent != "" {
		opts.UserAgent = *cfg.UserAgent
	}
	return opts
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Scrape a frequency page into CSV",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchURL, "url", "", "page to scrape (default: pick.url from config)")
	cmd.Flags().StringVar(&fetchOut, "out", "", "output CSV path (default: stdout)")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "url", &fetchURL, fileCfg.Pick.URL)
	if fetchURL == "" {
		return fmt.Errorf("--url is required")
	}

	client := scrape.New(scrapeOptions(fileCfg.Fetch))
	logErrf("Fetching %s...\n", fetchURL)
	rows, err := client.FetchRows(cmd.Context(), fetchURL)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", fetchURL, err)
	}
	if _, err := frequency.Parse(rows); err != nil {
		return fmt.Errorf("scraped rows are not a valid table: %w", err)
	}

	if fetchOut == "" {
		return scrape.WriteCSV(cmd.OutOrStdout(), rows)
	}
	var buf bytes.Buffer
	if err := scrape.WriteCSV(&buf, rows); err != nil {
		return err
	}
	if err := writeFileAtomic(fetchOut, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchOut, err)
	}
	logErrf("Wrote %d rows to %s\n", len(rows), fetchOut)
	return nil
}

func writeFileAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "lottopick-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
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
	if err := ensureConfigFile(path); err != nil {
		return err
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

func ensureConfigFile(path string) error {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lottopick configuration
# Uncomment a value to enable it. CLI flags override config values.

[pick]
# pool = %d                # Ranked numbers to draw games from
# select = %d              # Numbers per game
# direction = %q      # "most" or "least" frequent
# url = ""                # Page to scrape when --file is not given
# max-games = %d     # Refuse larger requests (0 = hard ceiling only)
# width = 0               # Pad numbers to this width (0 = widest number)

[fetch]
# timeout = %q           # Request timeout
# user-agent = %q
`,
		model.DefaultPoolSize,
		model.DefaultSelectSize,
		defaultDirection,
		combo.MaxGames,
		scrape.DefaultTimeout.String(),
		scrape.DefaultUserAgent,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
