package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/internal/cli"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze CSV [CSV...]",
	Short: "Full analysis report with highlights",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	art, cfg, err := runPipeline(args)
	if err != nil {
		return err
	}
	insights := art.Insights

	fmt.Println()
	fmt.Println(cli.RenderTitle(insights.Headline))
	fmt.Println()

	for _, h := range insights.Highlights {
		fmt.Println(cli.RenderHighlight(h))
	}
	fmt.Println()

	if len(insights.CategoryBreakdown) > 0 {
		rows := make([][]string, 0, 5)
		for i, ct := range insights.CategoryBreakdown {
			if i == 5 {
				break
			}
			rows = append(rows, []string{
				ct.Category,
				cli.FormatNumber(int64(ct.Transactions)),
				cli.FormatMoney(cfg.Currency, ct.Total),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top categories",
			Headers: []string{"Category", "Txns", "Total"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(insights.RecurringMerchants) > 0 {
		rows := make([][]string, 0, 5)
		for i, mt := range insights.RecurringMerchants {
			if i == 5 {
				break
			}
			rows = append(rows, []string{
				mt.Merchant,
				cli.FormatNumber(int64(mt.Transactions)),
				cli.FormatMoney(cfg.Currency, mt.Total),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recurring merchants",
			Headers: []string{"Merchant", "Txns", "Total"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(insights.Anomalies) > 0 {
		rows := make([][]string, 0, 10)
		for i, t := range insights.Anomalies {
			if i == 10 {
				break
			}
			rows = append(rows, []string{
				t.Timestamp.Format("2006-01-02"),
				t.Merchant,
				t.Category,
				cli.FormatMoney(cfg.Currency, t.Amount),
				cli.FormatScore(t.AnomalyScore),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Unusual transactions",
			Headers: []string{"Date", "Merchant", "Category", "Amount", "Score"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	return nil
}
