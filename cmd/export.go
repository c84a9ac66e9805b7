package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/internal/store"
)

var flagOut string

var exportCmd = &cobra.Command{
	Use:   "export CSV [CSV...]",
	Short: "Run the analysis and save the processed dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "finsight.db", "Destination database file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	art, _, err := runPipeline(args)
	if err != nil {
		return err
	}

	st, err := store.Open(flagOut)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveRun(art.RunID, art.Scored, art.Quality.Summaries); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	fmt.Printf("Saved run %s (%d transactions, %d months) to %s\n",
		art.RunID, len(art.Scored), len(art.Quality.Summaries), st.Path())
	return nil
}
