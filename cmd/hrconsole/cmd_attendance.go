package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrconsole/cmd/hrconsole/ui"
	"hrconsole/internal/attendance"
	"hrconsole/internal/export"
	"hrconsole/internal/report"
	"hrconsole/internal/searches"
	"hrconsole/internal/store"
)

// Query flags shared by import, export and browse.
var (
	searchTerm   string
	statusFlags  []string
	employeeFlag string
	dateFrom     string
	dateTo       string
	savedName    string
	strictParse  bool
)

var (
	outputFormat string
	exportDir    string
	exportJSON   bool
	saveAs       string
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Import, filter, summarise and export punch logs",
}

var attendanceImportCmd = &cobra.Command{
	Use:   "import <file.dat>...",
	Short: "Parse punch logs and print daily attendance",
	Long: `Parses one or more .dat punch logs into per-employee daily records.

Files are processed together: if any file is rejected or fails to read,
nothing is imported. Records from different files are listed one after
another and never merged.

Example:
  hrconsole attendance import gate-1.dat gate-2.dat --status Partial`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAttendanceImport,
}

var attendanceExportCmd = &cobra.Command{
	Use:   "export <file.dat>...",
	Short: "Write attendance-<date>.csv for the imported records",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAttendanceExport,
}

var attendanceSummaryCmd = &cobra.Command{
	Use:   "summary <file.dat>...",
	Short: "Render a status and hours summary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAttendanceSummary,
}

var attendanceBrowseCmd = &cobra.Command{
	Use:   "browse <file.dat>...",
	Short: "Browse imported records interactively",
	Long: `Opens an interactive table over the imported records.

Keys:
  /          edit the name/ID filter (applied as you type)
  tab        cycle status: All, Absent, Partial, Present, Overtime, Unknown
  q, ctrl+c  quit

With --save-as the filter in effect on exit is stored as a saved search.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAttendanceBrowse,
}

func init() {
	for _, c := range []*cobra.Command{attendanceImportCmd, attendanceExportCmd, attendanceSummaryCmd, attendanceBrowseCmd} {
		c.Flags().BoolVar(&strictParse, "strict", false, "Fail on the first malformed line instead of skipping it")
	}
	for _, c := range []*cobra.Command{attendanceImportCmd, attendanceExportCmd, attendanceBrowseCmd} {
		c.Flags().StringVarP(&searchTerm, "search", "s", "", "Match employee ID or name (case-insensitive)")
		c.Flags().StringSliceVar(&statusFlags, "status", nil, "Only these statuses (Absent, Partial, Present, Overtime, Unknown)")
		c.Flags().StringVar(&employeeFlag, "employee", "", "Only this employee ID")
		c.Flags().StringVar(&dateFrom, "from", "", "Earliest date (YYYY-MM-DD)")
		c.Flags().StringVar(&dateTo, "to", "", "Latest date (YYYY-MM-DD)")
		c.Flags().StringVar(&savedName, "saved", "", "Start from a saved search")
	}

	attendanceImportCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format: table, json or csv")
	attendanceExportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Export directory (default: export.directory)")
	attendanceExportCmd.Flags().BoolVar(&exportJSON, "json", false, "Also write the records as JSON")
	attendanceBrowseCmd.Flags().StringVar(&saveAs, "save-as", "", "Save the final filter under this name")

	attendanceCmd.AddCommand(attendanceImportCmd)
	attendanceCmd.AddCommand(attendanceExportCmd)
	attendanceCmd.AddCommand(attendanceSummaryCmd)
	attendanceCmd.AddCommand(attendanceBrowseCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadBatch imports files with the configured options. It prints the
// processing notice and the outcome message the console shows.
func loadBatch(ctx context.Context, files []string) (*attendance.Batch, error) {
	opts := currentConfig().BatchOptions()
	if strictParse {
		opts.Mode = attendance.ModeStrict
	}

	sources := make([]attendance.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, attendance.FileSource(f))
	}

	fmt.Fprintf(os.Stderr, "Processing %d file(s)...\n", len(files))
	batch, err := attendance.LoadBatch(ctx, sources, opts)
	if err != nil {
		logger.Error("import failed", zap.Strings("files", files), zap.Error(err))
		return nil, fmt.Errorf("failed to process files: %w", err)
	}
	logger.Info("import complete",
		zap.String("batch", batch.ID),
		zap.Int("records", len(batch.Records)),
		zap.Int("skipped", batch.SkippedLines()))
	return batch, nil
}

// openStore opens the workspace key-value store.
func openStore() (*store.SQLiteKV, error) {
	return store.NewSQLiteKV(workspacePath(currentConfig().Store.DatabasePath))
}

// buildQuery combines an optional saved search with the query flags.
// Flags that are set replace the saved values.
func buildQuery(ctx context.Context) (attendance.Query, error) {
	var q attendance.Query
	if savedName != "" {
		kv, err := openStore()
		if err != nil {
			return q, err
		}
		defer kv.Close()
		s, err := searches.NewManager(kv).Get(ctx, savedName)
		if err != nil {
			return q, err
		}
		q = s.Query()
	}

	if searchTerm != "" {
		q.SearchTerm = searchTerm
	}
	if len(statusFlags) > 0 {
		statuses, err := parseStatuses(statusFlags)
		if err != nil {
			return q, err
		}
		q.Filters.Status = statuses
	}
	if employeeFlag != "" {
		q.Filters.EmployeeID = employeeFlag
	}
	if dateFrom != "" {
		q.Filters.DateFrom = dateFrom
	}
	if dateTo != "" {
		q.Filters.DateTo = dateTo
	}
	return q, nil
}

func parseStatuses(values []string) ([]attendance.Status, error) {
	out := make([]attendance.Status, 0, len(values))
	for _, v := range values {
		s, ok := attendance.ParseStatus(v)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", v)
		}
		out = append(out, s)
	}
	return out, nil
}

func runAttendanceImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	q, err := buildQuery(ctx)
	if err != nil {
		return err
	}
	batch, err := loadBatch(ctx, args)
	if err != nil {
		return err
	}
	records := q.Apply(batch.Records)

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		return export.WriteJSON(out, records)
	case "csv":
		return export.WriteCSV(out, records)
	case "table":
		styles := ui.NewStyles(ui.DetectTheme(currentConfig().UI.Theme))
		fmt.Fprintln(out, ui.RenderRecords(styles, records))
		fmt.Fprintln(out, ui.RenderCounts(styles, attendance.Summarize(records)))
		if !q.IsZero() {
			fmt.Fprintf(out, "Showing %d of %d records\n", len(records), len(batch.Records))
		}
		fmt.Fprintln(out, styles.Success.Render(batch.Message()))
		if n := batch.SkippedLines(); n > 0 {
			fmt.Fprintln(out, styles.Warning.Render(fmt.Sprintf("Skipped %d malformed line(s)", n)))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: table, json, csv)", outputFormat)
	}
}

func runAttendanceExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	q, err := buildQuery(ctx)
	if err != nil {
		return err
	}
	batch, err := loadBatch(ctx, args)
	if err != nil {
		return err
	}
	records := q.Apply(batch.Records)

	dir := exportDir
	if dir == "" {
		dir = workspacePath(currentConfig().Export.Directory)
	}
	now := time.Now()
	path, err := export.WriteFile(dir, now, records)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), batch.Message())
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), path)

	if exportJSON {
		jsonPath := path[:len(path)-len(".csv")] + ".json"
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", jsonPath, err)
		}
		if err := export.WriteJSON(f, records); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), jsonPath)
	}
	return nil
}

func runAttendanceSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	batch, err := loadBatch(ctx, args)
	if err != nil {
		return err
	}
	out, err := report.Render(report.Build(batch), ui.DetectTheme(currentConfig().UI.Theme).GlamourStyle(), 100)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runAttendanceBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	q, err := buildQuery(ctx)
	if err != nil {
		return err
	}
	batch, err := loadBatch(ctx, args)
	if err != nil {
		return err
	}

	styles := ui.NewStyles(ui.DetectTheme(currentConfig().UI.Theme))
	final, err := tea.NewProgram(ui.NewBrowser(styles, batch.Records, q), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), batch.Message())

	if saveAs == "" {
		return nil
	}
	browser, ok := final.(ui.Browser)
	if !ok {
		return nil
	}
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()
	saved, err := searches.NewManager(kv).Save(ctx, saveAs, browser.Page().Query())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved search %q\n", saved.Name)
	return nil
}
