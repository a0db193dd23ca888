package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrconsole/internal/employee"
)

var (
	ratingFlag     string
	terminatedFlag string
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Employee directory helpers",
}

var employeeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Derive an employee's standing from rating and termination date",
	Long: `Prints the standing shown on an employee card.

A termination date always wins. Otherwise a 1-5 rating maps to
Excellent (5), Good (4), Average (3) or Needs Improvement (1-2).
With neither, the employee is Active.

Example:
  hrconsole employee status --rating 4`,
	RunE: runEmployeeStatus,
}

func init() {
	employeeStatusCmd.Flags().StringVar(&ratingFlag, "rating", "", "Performance rating 1-5")
	employeeStatusCmd.Flags().StringVar(&terminatedFlag, "terminated", "", "Termination date (YYYY-MM-DD)")
	employeeCmd.AddCommand(employeeStatusCmd)
}

func runEmployeeStatus(cmd *cobra.Command, args []string) error {
	rating, err := employee.ParseRating(ratingFlag)
	if err != nil {
		return err
	}
	if err := employee.ValidateDate(terminatedFlag); err != nil {
		return err
	}

	standing := employee.Derive(rating, terminatedFlag)
	switch s := standing.(type) {
	case employee.Terminated:
		fmt.Fprintf(cmd.OutOrStdout(), "%s (since %s)\n", s.Label(), s.Date)
	case employee.Rated:
		fmt.Fprintf(cmd.OutOrStdout(), "%s (rating %d)\n", s.Label(), s.Level)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), standing.Label())
	}
	return nil
}
