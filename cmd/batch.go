package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/internal/watchlist"
)

var (
	batchFile        string
	batchLayer       string
	batchLimit       int
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every ticker on a watchlist file",
	Long:  "Reads tickers from a CSV or XLSX watchlist and runs the analysis pipeline for each, with bounded concurrency.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		layer, err := model.ParseLayer(batchLayer)
		if err != nil {
			return err
		}

		tickers, err := watchlist.Load(batchFile)
		if err != nil {
			return err
		}
		if batchLimit > 0 && len(tickers) > batchLimit {
			tickers = tickers[:batchLimit]
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrentTickers
		}

		return processBatch(ctx, env, tickers, layer, concurrency)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "watchlist file, .csv or .xlsx (required)")
	batchCmd.Flags().StringVar(&batchLayer, "layer", "hq", "asset layer to analyze for every ticker")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of tickers to process (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max tickers in flight (0 = config default)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// processBatch runs the pipeline for each ticker with bounded concurrency.
// Individual failures are logged and counted, never fatal for the batch.
func processBatch(ctx context.Context, env *pipelineEnv, tickers []string, layer model.AssetLayer, concurrency int) error {
	if concurrency <= 0 {
		concurrency = 4
	}

	var completed, failed atomic.Int64
	start := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			result, err := env.Pipeline.Run(gCtx, model.Request{Ticker: ticker, Layer: layer})
			if err != nil {
				failed.Add(1)
				zap.L().Error("batch: analysis failed",
					zap.String("ticker", ticker),
					zap.Error(err),
				)
				return nil
			}

			completed.Add(1)
			zap.L().Info("batch: analysis complete",
				zap.String("ticker", ticker),
				zap.String("tier", string(result.Tier)),
				zap.String("risk_level", string(result.RiskLevel)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !eris.Is(err, context.Canceled) {
		return eris.Wrap(err, "batch")
	}

	fmt.Fprintf(os.Stdout, "Processed %d tickers in %s: %d completed, %d failed\n",
		len(tickers), time.Since(start).Round(time.Second), completed.Load(), failed.Load())
	return nil
}
