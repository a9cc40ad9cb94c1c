package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/internal/pipeline"
)

var (
	analyzeTicker string
	analyzeLayer  string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze physical climate risk for a single ticker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		layer, err := model.ParseLayer(analyzeLayer)
		if err != nil {
			return err
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.Run(ctx, model.Request{
			Ticker: pipeline.NormalizeTicker(analyzeTicker),
			Layer:  layer,
		})
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("analysis complete",
			zap.String("ticker", result.Request.Ticker),
			zap.String("tier", string(result.Tier)),
			zap.String("risk_level", string(result.RiskLevel)),
		)

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Fprintln(os.Stdout, result.Report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTicker, "ticker", "", "stock ticker symbol (required)")
	analyzeCmd.Flags().StringVar(&analyzeLayer, "layer", "hq", "asset layer: hq, factory, or logistics")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
	_ = analyzeCmd.MarkFlagRequired("ticker")
	rootCmd.AddCommand(analyzeCmd)
}
