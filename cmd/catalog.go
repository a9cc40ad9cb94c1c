package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the curated ticker and facility catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := assets.Load()
		if err != nil {
			return err
		}
		formatCatalog(os.Stdout, catalog)
		return nil
	},
}

func formatCatalog(w io.Writer, catalog *assets.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKER\tNAME\tSECTOR\tFACTORY\tLOGISTICS")
	for _, ticker := range catalog.Tickers() {
		profile, _ := catalog.Profile(ticker)
		factory := "-"
		if rec, ok := catalog.Asset(ticker, model.LayerFactory); ok {
			factory = rec.Name
		}
		logistics := "-"
		if rec, ok := catalog.Asset(ticker, model.LayerLogistics); ok {
			logistics = rec.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ticker, profile.Name, profile.Sector, factory, logistics)
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
