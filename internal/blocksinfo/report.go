// Package blocksinfo builds block reports: it resolves block ranges and
// columns, fetches the required daemon data and aggregates statistics.
package blocksinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
	"go.uber.org/zap"
)

// Options select what a Reporter shows.
type Options struct {
	Fields    string
	Stats     string
	MinerInfo bool
	RawMiner  bool
	// Summary suppresses the per-block rows.
	Summary bool
	Network model.Network
	Params  *chaincfg.Params
}

type ReporterOption func(*Reporter)

// WithRowSink forwards every processed row to sink.
func WithRowSink(sink RowSink) ReporterOption {
	return func(r *Reporter) {
		r.sink = sink
	}
}

func WithMetrics(metrics ReportMetrics) ReporterOption {
	return func(r *Reporter) {
		r.metrics = metrics
	}
}

// Reporter runs one block report.
type Reporter struct {
	daemon   Daemon
	renderer Renderer
	opts     Options
	fields   []Field
	stats    []Stat
	layout   *Layout
	sink     RowSink
	metrics  ReportMetrics
	logger   *zap.Logger
}

// NewReporter validates the field and stat selections. It performs no daemon calls.
func NewReporter(daemon Daemon, renderer Renderer, opts Options, logger *zap.Logger, options ...ReporterOption) (*Reporter, error) {
	fields, err := SelectFields(opts.Fields, opts.MinerInfo || opts.RawMiner)
	if err != nil {
		return nil, err
	}
	stats, err := SelectStats(opts.Stats)
	if err != nil {
		return nil, err
	}
	if opts.Params == nil {
		opts.Params = &chaincfg.MainNetParams
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reporter{
		daemon:   daemon,
		renderer: renderer,
		opts:     opts,
		fields:   fields,
		stats:    stats,
		layout:   NewLayout(fields),
		logger:   logger,
	}
	for _, o := range options {
		o(r)
	}
	return r, nil
}

func (r *Reporter) Fields() []Field {
	return r.fields
}

func (r *Reporter) Stats() []Stat {
	return r.stats
}

func (r *Reporter) Layout() *Layout {
	return r.layout
}

// Run reports on the blocks selected by args.
func (r *Reporter) Run(ctx context.Context, args []string) error {
	tip, err := r.daemon.Tip(ctx)
	if err != nil {
		return fmt.Errorf("get chain tip: %w", err)
	}
	sel, err := ResolveArgs(args, tip)
	if err != nil {
		return err
	}
	heights := sel.All()
	if len(heights) == 0 {
		return ErrEmptySelection
	}
	r.logger.Debug("resolved block selection",
		zap.Uint64("tip", tip),
		zap.Int("blocks", len(heights)),
		zap.Bool("contiguous", sel.Contiguous()),
	)

	hashes, err := r.daemon.BlockHashes(ctx, heights)
	if err != nil {
		return fmt.Errorf("get block hashes: %w", err)
	}
	hdrs, err := r.daemon.Headers(ctx, hashes)
	if err != nil {
		return fmt.Errorf("get block headers: %w", err)
	}
	if len(hashes) != len(heights) || len(hdrs) != len(heights) {
		return fmt.Errorf("daemon returned %d hashes and %d headers for %d heights", len(hashes), len(hdrs), len(heights))
	}

	prevTimes, err := r.previousTimes(ctx, sel, heights, hdrs)
	if err != nil {
		return err
	}

	engine := NewStatsEngine(r.fields, r.opts.Params)
	baseline := heights[0]
	if baseline > 0 {
		baseline--
	}
	engine.SetBaseline(baseline, prevTimes[0])

	if err := r.renderer.Begin(r.layout, !r.opts.Summary); err != nil {
		return err
	}

	builder := newRowBuilder(r.daemon, r.fields, r.opts.RawMiner)
	prev := prevTimes[0]
	for i, h := range heights {
		if !sel.Contiguous() {
			prev = prevTimes[i]
		}
		row, err := r.processHeight(ctx, builder, h, hashes[i], hdrs[i], prev)
		if err != nil {
			return err
		}
		prev = row.Time

		engine.Add(row)
		if r.sink != nil {
			if err := r.sink.Add(ctx, r.report(row)); err != nil {
				return fmt.Errorf("export block %d: %w", h, err)
			}
		}
		if !r.opts.Summary {
			if err := r.renderer.Row(row); err != nil {
				return err
			}
		}
	}

	for _, s := range r.stats {
		block, ok, err := r.statBlock(ctx, engine, s, sel, tip)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := r.renderer.Stats(block); err != nil {
			return err
		}
	}
	return r.renderer.End()
}

func (r *Reporter) processHeight(ctx context.Context, builder *rowBuilder, height uint64, hash string, hdr model.Blob, prevTime int64) (row *BlockRow, err error) {
	started := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.ObserveProcessHeight(err, height, started)
		}
	}()

	t, err := headerTime(hdr)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", height, err)
	}
	return builder.build(ctx, height, hash, hdr, t-prevTime)
}

// previousTimes returns the time of the block preceding each visited height.
// A contiguous range needs only the first; the genesis block is its own predecessor.
func (r *Reporter) previousTimes(ctx context.Context, sel Selection, heights []uint64, hdrs []model.Blob) ([]int64, error) {
	n := len(heights)
	if sel.Contiguous() {
		n = 1
	}
	out := make([]int64, n)

	var fetch []uint64
	var fetchIdx []int
	for i := 0; i < n; i++ {
		if heights[i] == 0 {
			t, err := headerTime(hdrs[i])
			if err != nil {
				return nil, fmt.Errorf("block 0: %w", err)
			}
			out[i] = t
			continue
		}
		fetch = append(fetch, heights[i]-1)
		fetchIdx = append(fetchIdx, i)
	}
	if len(fetch) == 0 {
		return out, nil
	}

	prevHdrs, err := headersAt(ctx, r.daemon, fetch)
	if err != nil {
		return nil, fmt.Errorf("get previous headers: %w", err)
	}
	for j, hdr := range prevHdrs {
		t, err := headerTime(hdr)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", fetch[j], err)
		}
		out[fetchIdx[j]] = t
	}
	return out, nil
}

func (r *Reporter) statBlock(ctx context.Context, engine *StatsEngine, s Stat, sel Selection, tip uint64) (StatBlock, bool, error) {
	switch s {
	case StatRange:
		return engine.RangeStats(), true, nil
	case StatDiff:
		if !sel.EndsAt(tip) {
			return StatBlock{}, false, nil
		}
		block, ok, err := engine.DiffStats(ctx, r.daemon, tip)
		if err != nil {
			return StatBlock{}, false, fmt.Errorf("difficulty stats: %w", err)
		}
		return block, ok, nil
	case StatAvg:
		return engine.AvgStats(), true, nil
	case StatTotal:
		return engine.TotalStats(), true, nil
	case StatColAvg:
		return engine.ColumnAvgStats(), true, nil
	default:
		return StatBlock{}, false, nil
	}
}

func (r *Reporter) report(row *BlockRow) model.BlockReport {
	fields, err := json.Marshal(row.RawValues())
	if err != nil {
		r.logger.Warn("encode row fields", zap.Uint64("height", row.Height), zap.Error(err))
		fields = []byte("{}")
	}
	return model.BlockReport{
		Network:   r.opts.Network,
		Height:    row.Height,
		Hash:      row.Hash,
		Timestamp: time.Unix(row.Time, 0).UTC(),
		Interval:  row.Interval,
		Miner:     row.Miner,
		Fields:    string(fields),
	}
}
