package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"finsight/internal/config"
	"finsight/internal/model"
)

// ErrNoTransactions is returned when a run is started with no input data.
// It is the only fatal condition: every other shortfall degrades to a
// documented fallback inside its stage.
var ErrNoTransactions = errors.New("no transactions to analyze")

// Artifacts bundles every output of one pipeline run. Each stage output is
// an independent snapshot; later stages never mutate earlier ones.
type Artifacts struct {
	RunID     string
	Processed []model.Transaction // classified
	Features  []model.Transaction // classified + engineered features
	Scored    []model.Transaction // features + anomaly scores
	Quality   QualityResult
	Forecast  model.ForecastSeries
	Insights  model.InsightReport
}

// Run executes the full analysis. Classification, feature engineering,
// anomaly scoring, and quality assessment form a strict chain; the
// forecaster only needs the classified snapshot and runs concurrently
// with the rest.
func Run(ctx context.Context, log zerolog.Logger, cfg config.Config, raw []model.Transaction) (*Artifacts, error) {
	if len(raw) == 0 {
		return nil, ErrNoTransactions
	}

	art := &Artifacts{RunID: uuid.NewString()}
	start := time.Now()
	log.Debug().Str("run_id", art.RunID).Int("transactions", len(raw)).Msg("starting analysis")

	art.Processed = Classify(raw, cfg)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		art.Forecast = ForecastExpenses(art.Processed, cfg)
		return nil
	})

	art.Features = EngineerFeatures(art.Processed, cfg)
	art.Scored = ScoreAnomalies(art.Features, cfg)
	art.Quality = AssessQuality(art.Scored, cfg)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if art.Forecast.Fallback {
		log.Warn().Str("run_id", art.RunID).Str("reason", art.Forecast.ModelSummary).
			Msg("forecast fell back to historical mean")
	}

	art.Insights = ComposeInsights(art.Scored, art.Forecast, art.Quality, cfg)

	log.Debug().
		Str("run_id", art.RunID).
		Int("anomalies", len(art.Insights.Anomalies)).
		Int("months", len(art.Quality.Summaries)).
		Str("forecast_model", art.Forecast.ModelSummary).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return art, nil
}
