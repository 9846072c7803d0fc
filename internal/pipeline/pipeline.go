// =============================================================================
// Graduate Roster - Pipeline
// =============================================================================
//
// This module orchestrates one run of the roster pipeline, from the feed
// download to the grouped, display-ready roster.
//
// PIPELINE:
//   1. Fetch the feed text
//   2. Tokenize it into a table (sources that read a table directly skip this)
//   3. Map columns and normalize records (transliteration, date parsing)
//   4. Resolve image references for display
//   5. Group dated records by month and order them
//
// STATE:
//   The pipeline keeps no state between runs. Every run downloads and parses
//   the feed from scratch; caching belongs to the caller.
//
// =============================================================================

package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/graduate-roster/internal/csvparser"
	"github.com/ginjaninja78/graduate-roster/internal/feed"
	"github.com/ginjaninja78/graduate-roster/internal/imageurl"
	"github.com/ginjaninja78/graduate-roster/internal/metrics"
	"github.com/ginjaninja78/graduate-roster/internal/roster"
	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Graduates are all normalized records in feed order, dated or not.
	Graduates []types.Graduate

	// Groups are the dated records bucketed by month, newest first.
	Groups []types.Group

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about a run.
type Stats struct {
	// RowsRead is the number of data rows in the feed (header excluded).
	RowsRead int

	// Records is the number of normalized records.
	Records int

	// Dropped is the number of rows skipped for a blank name.
	Dropped int

	// Undated is the number of records whose date could not be parsed.
	Undated int

	// Groups is the number of month groups.
	Groups int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Source supplies the raw feed text. *feed.Fetcher implements it.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// TableSource is implemented by sources that produce a table directly, such
// as feed.FileSource for workbooks. The pipeline prefers it over Fetch.
type TableSource interface {
	FetchTable(ctx context.Context) (types.Table, error)
}

// Pipeline runs the roster pipeline against a Source.
type Pipeline struct {
	source     Source
	normalizer *roster.Normalizer
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics sets the metrics sink. The default records nothing.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *roster.Normalizer) Option {
	return func(p *Pipeline) { p.normalizer = n }
}

// New creates a Pipeline reading from source.
func New(source Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:     source,
		normalizer: roster.NewNormalizer(roster.DefaultColumns(), nil),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline once.
//
// PARAMETERS:
//   - ctx: Bounds the feed download.
//   - titles: Formats group titles for the active locale. May be nil.
//
// RETURNS:
//   - The run result.
//   - A fatal error (configuration, transport or schema). No partial result
//     is returned alongside an error.
func (p *Pipeline) Run(ctx context.Context, titles roster.TitleFormatter) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := p.logger.With(zap.String("run_id", runID))

	result, err := p.run(ctx, log, titles)
	elapsed := time.Since(start)
	p.metrics.ObserveRun(outcome(err), elapsed)

	if err != nil {
		log.Error("Pipeline run failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}

	result.RunID = runID
	result.Stats.Duration = elapsed
	p.metrics.AddRecords(result.Stats.Records, result.Stats.Dropped, result.Stats.Undated)
	p.metrics.SetGroups(result.Stats.Groups)

	log.Info("Pipeline run complete",
		zap.Int("rows", result.Stats.RowsRead),
		zap.Int("records", result.Stats.Records),
		zap.Int("dropped", result.Stats.Dropped),
		zap.Int("undated", result.Stats.Undated),
		zap.Int("groups", result.Stats.Groups),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, log *zap.Logger, titles roster.TitleFormatter) (*Result, error) {
	// =========================================================================
	// STEPS 1-2: FETCH AND TOKENIZE
	// =========================================================================

	table, err := p.fetchTable(ctx, log)
	if err != nil {
		return nil, err
	}

	rowsRead := 0
	if len(table) > 1 {
		rowsRead = len(table) - 1
	}

	// =========================================================================
	// STEP 3: NORMALIZE
	// =========================================================================

	graduates, err := p.normalizer.Normalize(table)
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 4: PRESENTATION
	// =========================================================================

	undated := 0
	for i := range graduates {
		graduates[i].ImageReference = imageurl.DirectDriveURL(graduates[i].ImageRaw)
		if !graduates[i].HasDate() {
			undated++
			log.Debug("Record has no usable date",
				zap.String("name", graduates[i].FullNameSource),
				zap.String("raw", graduates[i].CertificationDateRaw))
		}
	}

	// =========================================================================
	// STEP 5: GROUP
	// =========================================================================

	groups := roster.GroupByMonth(graduates, titles)

	return &Result{
		Graduates: graduates,
		Groups:    groups,
		Stats: Stats{
			RowsRead: rowsRead,
			Records:  len(graduates),
			Dropped:  rowsRead - len(graduates),
			Undated:  undated,
			Groups:   len(groups),
		},
	}, nil
}

// fetchTable runs the fetch and tokenize steps.
func (p *Pipeline) fetchTable(ctx context.Context, log *zap.Logger) (types.Table, error) {
	if ts, ok := p.source.(TableSource); ok {
		table, err := ts.FetchTable(ctx)
		if err != nil {
			return nil, err
		}
		log.Debug("Read feed table", zap.Int("rows", len(table)))
		return table, nil
	}

	text, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("Fetched feed", zap.Int("bytes", len(text)))

	table := csvparser.Tokenize(text)
	log.Debug("Tokenized feed", zap.Int("rows", len(table)))
	return table, nil
}

// outcome classifies an error for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, feed.ErrConfiguration):
		return "configuration"
	case errors.Is(err, feed.ErrTransport):
		return "transport"
	case errors.Is(err, roster.ErrSchema):
		return "schema"
	default:
		return "error"
	}
}
