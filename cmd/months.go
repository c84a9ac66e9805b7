package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/internal/cli"
)

var monthsCmd = &cobra.Command{
	Use:   "months CSV [CSV...]",
	Short: "Monthly summary with data-quality flags",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMonths,
}

func init() {
	rootCmd.AddCommand(monthsCmd)
}

func runMonths(_ *cobra.Command, args []string) error {
	art, cfg, err := runPipeline(args)
	if err != nil {
		return err
	}

	summaries := art.Quality.Summaries
	if len(summaries) == 0 {
		fmt.Println("\n  No monthly data.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			cli.FormatMonth(s.Month),
			cli.FormatNumber(int64(s.TotalTransactions)),
			cli.FormatMoney(cfg.Currency, s.ExpenseSum),
			cli.FormatMoney(cfg.Currency, s.IncomeSum),
			cli.FormatMoney(cfg.Currency, s.NetCashflow),
			cli.FormatScore(s.QualityScore),
			cli.FormatFlag(s.QualityFlag),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly summary",
		Headers: []string{"Month", "Txns", "Expenses", "Income", "Net", "Quality", ""},
		Rows:    rows,
	}))

	flagged := 0
	for _, s := range summaries {
		if s.QualityFlag {
			flagged++
		}
	}
	if flagged > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d month(s) flagged for data-quality review", flagged)))
	}
	return nil
}
