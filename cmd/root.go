package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/gridx/internal/config"
	"github.com/oakwood-commons/gridx/internal/export"
	"github.com/oakwood-commons/gridx/internal/expr"
	"github.com/oakwood-commons/gridx/internal/formatter"
	"github.com/oakwood-commons/gridx/internal/ui"
	"github.com/oakwood-commons/gridx/pkg/grid"
	"github.com/oakwood-commons/gridx/pkg/loader"
	"github.com/oakwood-commons/gridx/pkg/logger"
	"github.com/oakwood-commons/gridx/pkg/settings"
)

// errShowHelp is returned by loadInput when no input is provided and help
// should be shown instead of an error.
var errShowHelp = errors.New("no input provided")

const defaultFallbackTermWidth = 120

var (
	output      string // auto, table, csv, json
	configFile  string
	searchTerm  string
	sortSpec    string // column or column:asc|desc
	filterSpecs []string
	expression  string
	pageSize    int
	startPage   int
	noColor     bool
	debug       bool
	outWidth    int
	outHeight   int
)

var (
	stdinIsPiped  = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsPiped = func() bool { stat, _ := os.Stdout.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: settings.CliBinaryName + " - tabular data browser",
	Long: settings.CliBinaryName + ` reads a collection of records (JSON, NDJSON, YAML, TOML, or CSV)
and presents it as a sortable, filterable, paginated table. Interactive by
default on a terminal; pipe stdout or pass --output to get a one-shot render
or a CSV/JSON export of the filtered rows.`,
	Example: "\n  gridx people.json\n  gridx people.csv --sort salary:desc --filter 'dept = eng'\n  cat people.ndjson | gridx --search smith -o csv > matches.csv\n  gridx people.yaml -e '_.salary > \"50000\"' -o json\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.AppKey, settings.CliBinaryName, "command", cmd.Name())

		params := settings.NewCliParams()
		params.MinLogLevel = level
		params.NoColor = noColor

		rootCtx = logger.WithLogger(context.Background(), lgr)
		rootCtx = settings.IntoContext(rootCtx, params)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func run(cmd *cobra.Command, args []string) error {
	lgr := logger.FromContext(rootCtx)

	col, fromStdin, err := loadInput(args)
	if err != nil {
		return err
	}
	lgr.V(1).Info("input loaded", "records", len(col.Records), "fields", len(col.Fields), "from_stdin", fromStdin)

	vc, err := resolveViewConfig(col.Fields)
	if err != nil {
		return err
	}

	session := grid.NewSession(col.Records, vc.GridColumns(), vc.Options())
	if err := applyViewFlags(cmd, session); err != nil {
		return err
	}

	mode := output
	if mode == "" || mode == "auto" {
		if stdoutIsPiped() {
			mode = "csv"
		} else {
			mode = "interactive"
		}
	}

	switch mode {
	case "interactive":
		return runInteractive(session, fromStdin)
	case "table":
		uiCfg := ui.Config{AppName: settings.CliBinaryName, NoColor: noColor, Width: resolveWidth(), Height: outHeight}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSnapshot(session, uiCfg))
		return nil
	case "csv":
		return export.SessionCSV(cmd.OutOrStdout(), session)
	case "json":
		return writeJSON(cmd.OutOrStdout(), session)
	default:
		return fmt.Errorf("invalid output %q (use auto|table|csv|json)", output)
	}
}

// loadInput reads records from the file argument or piped stdin.
func loadInput(args []string) (*loader.Collection, bool, error) {
	if len(args) > 0 {
		col, err := loader.LoadFile(args[0])
		if err != nil {
			return nil, false, fmt.Errorf("failed to load %s: %w", args[0], err)
		}
		return col, false, nil
	}
	if !stdinIsPiped() {
		return nil, false, errShowHelp
	}
	col, err := loader.LoadReader(os.Stdin)
	if err != nil {
		return nil, true, fmt.Errorf("failed to load stdin: %w", err)
	}
	return col, true, nil
}

// resolveViewConfig loads the column layout from --config-file when given,
// otherwise derives text columns from the field names found in the input.
func resolveViewConfig(fields []string) (*config.ViewConfig, error) {
	if configFile == "" {
		return config.FromFields(fields), nil
	}
	vc, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load view config %s: %w", configFile, err)
	}
	return vc, nil
}

// applyViewFlags seeds the session from the search, sort, filter, expression,
// and paging flags before the first render.
func applyViewFlags(cmd *cobra.Command, session *grid.Session) error {
	if searchTerm != "" {
		session.SetSearchTerm(searchTerm)
	}

	for _, spec := range filterSpecs {
		key, cond, err := ui.ParseCondition(spec, session.Columns())
		if err != nil {
			return fmt.Errorf("invalid --filter %q: %w", spec, err)
		}
		session.AddCondition(key, cond)
	}

	if sortSpec != "" {
		state, err := parseSortSpec(sortSpec, session.Columns())
		if err != nil {
			return err
		}
		session.SetSort(state)
	}

	if expression != "" {
		p, err := expr.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid --expression: %w", err)
		}
		session.SetPredicate(p.Func())
	}

	if cmd.Flags().Changed("page-size") {
		if pageSize < 1 {
			return fmt.Errorf("invalid --page-size %d", pageSize)
		}
		session.SetPageSize(pageSize)
	}
	if cmd.Flags().Changed("page") {
		session.SetPage(startPage)
	}
	return nil
}

// parseSortSpec parses "column" or "column:asc|desc" against known columns.
func parseSortSpec(spec string, columns []grid.Column) (grid.SortState, error) {
	key := spec
	dir := grid.DirAscending
	if i := strings.LastIndex(spec, ":"); i >= 0 {
		key = spec[:i]
		switch strings.ToLower(spec[i+1:]) {
		case "asc", "ascending":
			dir = grid.DirAscending
		case "desc", "descending":
			dir = grid.DirDescending
		default:
			return grid.SortState{}, fmt.Errorf("invalid sort direction in %q (use asc or desc)", spec)
		}
	}
	for _, col := range columns {
		if col.Key == key {
			if !col.Sortable {
				return grid.SortState{}, fmt.Errorf("column %q is not sortable", key)
			}
			return grid.SortState{Key: key, Dir: dir}, nil
		}
	}
	return grid.SortState{}, fmt.Errorf("unknown sort column %q", key)
}

// runInteractive starts the TUI. When the records came through stdin the
// terminal is reopened so key input still works.
func runInteractive(session *grid.Session, fromStdin bool) error {
	width, height := detectTerminalSize()
	if outWidth > 0 {
		width = outWidth
	}
	if outHeight > 0 {
		height = outHeight
	}
	uiCfg := ui.Config{
		AppName: settings.CliBinaryName,
		NoColor: noColor,
		Width:   width,
		Height:  height,
	}

	var opts []tea.ProgramOption
	if fromStdin {
		tty, err := openTerminalInput()
		if err != nil {
			return fmt.Errorf("cannot open terminal for input: %w", err)
		}
		defer tty.Close()
		opts = ui.WithIO(tty, os.Stdout)
	}
	return ui.Run(session, uiCfg, opts...)
}

// writeJSON emits the filtered rows as a JSON array, one object per row with
// the visible columns only, values formatted for display.
func writeJSON(w io.Writer, session *grid.Session) error {
	cols := session.VisibleColumns()
	rows := session.FilteredRows()

	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(cols))
		for _, col := range cols {
			obj[col.Key] = formatter.Cell(row.FieldString(col.Key), col.Format)
		}
		out = append(out, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// openTerminalInput reopens the controlling terminal so the TUI can read
// keys after stdin was consumed by piped input.
func openTerminalInput() (*os.File, error) {
	return os.OpenFile(terminalDeviceName(runtime.GOOS), os.O_RDWR, 0)
}

func terminalDeviceName(goos string) string {
	if goos == "windows" {
		return "CONIN$"
	}
	return "/dev/tty"
}

func resolveWidth() int {
	if outWidth > 0 {
		return outWidth
	}
	w, _ := detectTerminalSize()
	return w
}

// detectTerminalSize returns the best-effort terminal width/height by probing
// stdout, stderr, and stdin, then falling back to $COLUMNS.
func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.Flags().StringVarP(&output, "output", "o", "auto", "output mode: auto|table|csv|json (auto: interactive on a terminal, csv when piped)")
	rootCmd.Flags().StringVar(&configFile, "config-file", "", "path to a YAML view config (columns, formats, page sizes)")
	rootCmd.Flags().StringVar(&searchTerm, "search", "", "initial search term across searchable columns")
	rootCmd.Flags().StringVar(&sortSpec, "sort", "", "initial sort: column or column:asc|desc")
	rootCmd.Flags().StringArrayVar(&filterSpecs, "filter", nil, "column filter 'column operator value' (repeatable); operators: contains, equals, starts-with, ends-with, >, <")
	rootCmd.Flags().StringVarP(&expression, "expression", "e", "", "CEL row predicate using '_' as the record, e.g. '_.dept == \"eng\"'")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (must be positive)")
	rootCmd.Flags().IntVar(&startPage, "page", 1, "1-based page to show (clamped to the last page)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().IntVar(&outWidth, "width", 0, "output width in columns")
	rootCmd.Flags().IntVar(&outHeight, "height", 0, "output height in rows")

	rootCmd.Version = cliVersionString()
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
