package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/internal/cli"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast CSV [CSV...]",
	Short: "Monthly expense history and projection",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, args []string) error {
	art, cfg, err := runPipeline(args)
	if err != nil {
		return err
	}
	series := art.Forecast

	fmt.Println()
	if len(series.History) > 0 {
		values := make([]float64, len(series.History))
		for i, mv := range series.History {
			values[i] = mv.Value
		}
		fmt.Printf("  History %s .. %s  %s\n",
			cli.FormatMonth(series.History[0].Month),
			cli.FormatMonth(series.History[len(series.History)-1].Month),
			cli.RenderSparkline(values))
		fmt.Println()
	}

	rows := make([][]string, 0, len(series.Forecast))
	for _, mv := range series.Forecast {
		rows = append(rows, []string{
			cli.FormatMonth(mv.Month),
			cli.FormatMoney(cfg.Currency, mv.Value),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projected expenses",
		Headers: []string{"Month", "Amount"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Model: %s\n", series.ModelSummary)
	return nil
}
