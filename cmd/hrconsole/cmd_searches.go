package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"hrconsole/cmd/hrconsole/ui"
	"hrconsole/internal/attendance"
	"hrconsole/internal/searches"
)

var searchesCmd = &cobra.Command{
	Use:   "searches",
	Short: "Manage saved attendance searches",
	RunE:  runSearchesList,
}

var searchesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a search term and filters under a name",
	Long: `Saves a named search. Saving an existing name replaces it.

Example:
  hrconsole searches save "late shift" --status Partial --from 2025-07-01`,
	Args: cobra.ExactArgs(1),
	RunE: runSearchesSave,
}

var searchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches, most recent first",
	RunE:  runSearchesList,
}

var searchesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchesShow,
}

var searchesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchesDelete,
}

func init() {
	searchesSaveCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Match employee ID or name (case-insensitive)")
	searchesSaveCmd.Flags().StringSliceVar(&statusFlags, "status", nil, "Only these statuses")
	searchesSaveCmd.Flags().StringVar(&employeeFlag, "employee", "", "Only this employee ID")
	searchesSaveCmd.Flags().StringVar(&dateFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	searchesSaveCmd.Flags().StringVar(&dateTo, "to", "", "Latest date (YYYY-MM-DD)")

	searchesCmd.AddCommand(searchesSaveCmd)
	searchesCmd.AddCommand(searchesListCmd)
	searchesCmd.AddCommand(searchesShowCmd)
	searchesCmd.AddCommand(searchesDeleteCmd)
}

func withSearches(fn func(m *searches.Manager) error) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(searches.NewManager(kv))
}

func runSearchesSave(cmd *cobra.Command, args []string) error {
	q := attendance.Query{
		SearchTerm: searchTerm,
		Filters: attendance.Filters{
			EmployeeID: employeeFlag,
			DateFrom:   dateFrom,
			DateTo:     dateTo,
		},
	}
	if len(statusFlags) > 0 {
		statuses, err := parseStatuses(statusFlags)
		if err != nil {
			return err
		}
		q.Filters.Status = statuses
	}

	return withSearches(func(m *searches.Manager) error {
		s, err := m.Save(cmdContext(cmd), args[0], q)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved search %q\n", s.Name)
		return nil
	})
}

func runSearchesList(cmd *cobra.Command, args []string) error {
	return withSearches(func(m *searches.Manager) error {
		list, err := m.List(cmdContext(cmd))
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved searches.")
			return nil
		}

		styles := ui.NewStyles(ui.DetectTheme(currentConfig().UI.Theme))
		rows := make([][]string, 0, len(list))
		for _, s := range list {
			rows = append(rows, []string{s.Name, s.SearchTerm, describeFilters(s.Filters), s.Timestamp.Local().Format("2006-01-02 15:04")})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.Theme.Border)).
			Headers("Name", "Search", "Filters", "Saved").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return styles.Bold.Padding(0, 1)
				}
				return styles.Body.Padding(0, 1)
			})
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	})
}

func runSearchesShow(cmd *cobra.Command, args []string) error {
	return withSearches(func(m *searches.Manager) error {
		s, err := m.Get(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		styles := ui.NewStyles(ui.DetectTheme(currentConfig().UI.Theme))
		fmt.Fprintln(out, styles.Title.Render("Saved search"))
		fmt.Fprintf(out, "Name:    %s\n", s.Name)
		fmt.Fprintf(out, "Search:  %s\n", s.SearchTerm)
		fmt.Fprintf(out, "Filters: %s\n", describeFilters(s.Filters))
		fmt.Fprintf(out, "Saved:   %s\n", s.Timestamp.Local().Format("2006-01-02 15:04:05"))
		return nil
	})
}

func runSearchesDelete(cmd *cobra.Command, args []string) error {
	return withSearches(func(m *searches.Manager) error {
		if err := m.Delete(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted search %q\n", args[0])
		return nil
	})
}

// describeFilters renders filters as a short human-readable string.
func describeFilters(f attendance.Filters) string {
	var parts []string
	if len(f.Status) > 0 {
		names := make([]string, len(f.Status))
		for i, s := range f.Status {
			names[i] = string(s)
		}
		parts = append(parts, "status="+strings.Join(names, ","))
	}
	if f.EmployeeID != "" {
		parts = append(parts, "employee="+f.EmployeeID)
	}
	if f.DateFrom != "" || f.DateTo != "" {
		parts = append(parts, fmt.Sprintf("dates=%s..%s", f.DateFrom, f.DateTo))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
