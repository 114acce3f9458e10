package blocksinfo

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
)

// bdiWindow is the trailing window, roughly three days, used to average block intervals.
const bdiWindow = 432

// RunningTotals accumulates per-block figures over one run.
type RunningTotals struct {
	Bytes     int64
	Weight    int64
	SolveTime int64
	Blocks    int
}

// FieldTotals is the running sum of one numeric column.
type FieldTotals struct {
	Sum   float64
	Count int
}

func (t FieldTotals) Mean() float64 {
	if t.Count == 0 {
		return 0
	}
	return t.Sum / float64(t.Count)
}

// StatLine is one labelled figure of a statistics block.
type StatLine struct {
	Key      string
	Label    string
	Template string
	Values   []any
	// Raw is the machine-readable form of the figure.
	Raw any
}

// Value renders the figure without its label.
func (l StatLine) Value() string {
	return fmt.Sprintf(l.Template, l.Values...)
}

// StatBlock is a rendered statistics section. Cells is set for blocks shown
// as an extra row aligned under the report columns.
type StatBlock struct {
	Kind       Stat
	Label      string
	LabelWidth int
	Lines      []StatLine
	Cells      map[Field]string
}

type blockMark struct {
	height int64
	time   int64
}

// StatsEngine aggregates rows of one run.
type StatsEngine struct {
	fields     []Field
	params     *chaincfg.Params
	withStats  bool
	withReward bool

	totals      RunningTotals
	fieldTotals [numFields]FieldTotals
	reward      FieldTotals

	baseline   blockMark
	first      blockMark
	last       blockMark
	lastHeader model.Blob
}

// NewStatsEngine returns an engine aggregating the given columns.
func NewStatsEngine(fields []Field, params *chaincfg.Params) *StatsEngine {
	e := &StatsEngine{
		fields: fields,
		params: params,
	}
	var subsidy, fee bool
	for _, f := range fields {
		if catalog[f].Source == SourceStats {
			e.withStats = true
		}
		subsidy = subsidy || f == FieldSubsidy
		fee = fee || f == FieldTotalFee
	}
	e.withReward = subsidy && fee
	return e
}

// SetBaseline records the block preceding the first row; range figures are measured from it.
func (e *StatsEngine) SetBaseline(height uint64, t int64) {
	e.baseline = blockMark{height: int64(height), time: t}
}

// Totals returns the running totals.
func (e *StatsEngine) Totals() RunningTotals {
	return e.totals
}

// FieldTotals returns the running sum of field f.
func (e *StatsEngine) FieldTotals(f Field) FieldTotals {
	return e.fieldTotals[f]
}

// Add accumulates one row.
func (e *StatsEngine) Add(row *BlockRow) {
	mark := blockMark{height: int64(row.Height), time: row.Time}
	if e.totals.Blocks == 0 {
		e.first = mark
	}
	e.last = mark
	e.lastHeader = row.Header

	e.totals.Blocks++
	e.totals.SolveTime += row.Interval
	if row.Stats != nil {
		if n, ok := row.Stats.Int64("total_size"); ok {
			e.totals.Bytes += n
		}
		if n, ok := row.Stats.Int64("total_weight"); ok {
			e.totals.Weight += n
		}
	}

	values := make(map[Field]float64, len(row.Fields))
	for i, f := range row.Fields {
		d := catalog[f]
		if !(d.Avg || d.Sum) || row.Cells[i].Missing {
			continue
		}
		v, err := model.ToFloat64(row.Cells[i].Raw)
		if err != nil {
			continue
		}
		values[f] = v
		e.fieldTotals[f].Sum += v
		e.fieldTotals[f].Count++
	}

	if e.withReward {
		sub, okSub := values[FieldSubsidy]
		fee, okFee := values[FieldTotalFee]
		if okSub && okFee {
			e.reward.Sum += sub + fee
			e.reward.Count++
		}
	}
}

// RangeStats summarizes the processed range. Elapsed time and block count are
// measured from the baseline, so the genesis block adds no elapsed time.
func (e *StatsEngine) RangeStats() StatBlock {
	elapsed := e.last.time - e.baseline.time
	nblocks := e.last.height - e.baseline.height
	count := e.last.height - e.first.height + 1

	b := StatBlock{Kind: StatRange, Label: "Range", LabelWidth: 11}
	b.Lines = append(b.Lines, StatLine{
		Key:      "range",
		Label:    "Range",
		Template: "%d-%d (%d blocks [%s])",
		Values:   []any{e.first.height, e.last.height, count, formatDuration(float64(elapsed))},
		Raw: map[string]any{
			"first":   e.first.height,
			"last":    e.last.height,
			"blocks":  count,
			"elapsed": elapsed,
		},
	})

	if elapsed == 0 {
		return b
	}
	if e.withStats && e.totals.Blocks > 0 {
		avgSize := e.totals.Bytes / int64(e.totals.Blocks)
		avgWeight := e.totals.Weight / int64(e.totals.Blocks)
		b.Lines = append(b.Lines,
			StatLine{Key: "avg_size", Label: "Avg size", Template: "%d bytes", Values: []any{avgSize}, Raw: avgSize},
			StatLine{Key: "avg_weight", Label: "Avg weight", Template: "%d bytes", Values: []any{avgWeight}, Raw: avgWeight},
		)
		if e.totals.SolveTime != 0 {
			rate := (float64(e.totals.Bytes) / 10000) / (float64(e.totals.SolveTime) / 36)
			b.Lines = append(b.Lines, StatLine{Key: "mb_per_hr", Label: "MB/hr", Template: "%0.4f", Values: []any{rate}, Raw: rate})
		}
	}
	if nblocks != 0 {
		avgBDI := elapsed / nblocks
		b.Lines = append(b.Lines, StatLine{
			Key:      "avg_bdi",
			Label:    "Avg BDI",
			Template: "%.2f min",
			Values:   []any{float64(avgBDI) / 60},
			Raw:      avgBDI,
		})
	}
	return b
}

// BDIInput holds the figures the retarget estimate is derived from.
type BDIInput struct {
	// Rel is the number of blocks since the last retarget boundary.
	Rel uint64
	// Window is the length of the trailing averaging window.
	Window uint64
	// RelElapsed is the time in seconds spent on the Rel blocks.
	RelElapsed int64
	// WindowAvg is the average interval over the trailing window.
	WindowAvg float64
	// DifficultyRatio is tip difficulty over the difficulty at the window start.
	DifficultyRatio float64
}

// EstimateBDI estimates the block discovery interval of the current retarget
// period. Once the period is longer than the window its own average is used;
// before that the window average is blended with its difficulty-scaled value.
func EstimateBDI(in BDIInput) float64 {
	if in.Rel > in.Window {
		return float64(in.RelElapsed) / float64(in.Rel)
	}
	w := float64(in.Window)
	rel := float64(in.Rel)
	return in.WindowAvg * (in.DifficultyRatio*(w-rel) + rel) / w
}

// DiffStats estimates the next difficulty adjustment. ok is false when the
// chain is too short to have a trailing window.
func (e *StatsEngine) DiffStats(ctx context.Context, daemon Daemon, tip uint64) (StatBlock, bool, error) {
	interval := uint64(e.params.TargetTimespan / e.params.TargetTimePerBlock)
	target := e.params.TargetTimePerBlock.Seconds()
	rel := tip % interval
	window := min(uint64(bdiWindow), tip)
	if window == 0 {
		return StatBlock{}, false, nil
	}

	heights := []uint64{tip - window}
	if rel > window {
		heights = append(heights, tip-rel)
	}
	tipHdr := e.lastHeader
	fetchTip := tipHdr == nil || e.last.height != int64(tip)
	if fetchTip {
		heights = append(heights, tip)
	}
	hdrs, err := headersAt(ctx, daemon, heights)
	if err != nil {
		return StatBlock{}, false, err
	}
	windowHdr := hdrs[0]
	if fetchTip {
		tipHdr = hdrs[len(hdrs)-1]
	}

	tipTime, err := headerTime(tipHdr)
	if err != nil {
		return StatBlock{}, false, fmt.Errorf("tip header: %w", err)
	}
	windowTime, err := headerTime(windowHdr)
	if err != nil {
		return StatBlock{}, false, fmt.Errorf("header at %d: %w", tip-window, err)
	}
	tipDiff, _ := tipHdr.Float64("difficulty")
	windowDiff, _ := windowHdr.Float64("difficulty")

	in := BDIInput{
		Rel:             rel,
		Window:          window,
		WindowAvg:       float64(tipTime-windowTime) / float64(window),
		DifficultyRatio: 1,
	}
	if windowDiff != 0 {
		in.DifficultyRatio = tipDiff / windowDiff
	}
	if rel > window {
		relTime, err := headerTime(hdrs[1])
		if err != nil {
			return StatBlock{}, false, fmt.Errorf("header at %d: %w", tip-rel, err)
		}
		in.RelElapsed = tipTime - relTime
	}
	bdi := EstimateBDI(in)

	rem := interval - rel
	remTime := float64(rem) * in.WindowAvg
	adjust := ((target / bdi) - 1) * 100
	suffix := "s"
	if rem == 1 {
		suffix = ""
	}

	return StatBlock{
		Kind:       StatDiff,
		Label:      "Difficulty",
		LabelWidth: 18,
		Lines: []StatLine{
			{Key: "height", Label: "Current height", Template: "%d", Values: []any{tip}, Raw: tip},
			{
				Key:      "next_adjust",
				Label:    "Next diff adjust",
				Template: "%d (in %d block%s [%s])",
				Values:   []any{tip + rem, rem, suffix, formatDuration(remTime)},
				Raw: map[string]any{
					"height":  tip + rem,
					"blocks":  rem,
					"seconds": remTime,
				},
			},
			{Key: "bdi", Label: "BDI (cur period)", Template: "%.2f min", Values: []any{bdi / 60}, Raw: bdi},
			{Key: "difficulty", Label: "Cur difficulty", Template: "%.2e", Values: []any{tipDiff}, Raw: tipDiff},
			{Key: "est_adjust", Label: "Est. diff adjust", Template: "%+.2f%%", Values: []any{adjust}, Raw: adjust},
		},
	}, true, nil
}

func headersAt(ctx context.Context, daemon Daemon, heights []uint64) ([]model.Blob, error) {
	hashes, err := daemon.BlockHashes(ctx, heights)
	if err != nil {
		return nil, err
	}
	hdrs, err := daemon.Headers(ctx, hashes)
	if err != nil {
		return nil, err
	}
	if len(hdrs) != len(heights) {
		return nil, fmt.Errorf("got %d headers for %d heights", len(hdrs), len(heights))
	}
	return hdrs, nil
}

// AvgStats returns the mean of every averaged column.
func (e *StatsEngine) AvgStats() StatBlock {
	return e.aggregate(StatAvg, "Averages", func(d FieldDescriptor) bool { return d.Avg }, FieldTotals.Mean)
}

// TotalStats returns the sum of every summed column.
func (e *StatsEngine) TotalStats() StatBlock {
	return e.aggregate(StatTotal, "Totals", func(d FieldDescriptor) bool { return d.Sum }, func(t FieldTotals) float64 { return t.Sum })
}

func (e *StatsEngine) aggregate(kind Stat, label string, include func(FieldDescriptor) bool, value func(FieldTotals) float64) StatBlock {
	b := StatBlock{Kind: kind, Label: label}
	add := func(name string, format FormatFn, t FieldTotals) {
		line := StatLine{Key: name, Label: name, Template: "%s", Values: []any{missingText}}
		if t.Count > 0 {
			v := value(t)
			line.Values = []any{formatAggregate(format, v, 2)}
			line.Raw = v
		}
		b.Lines = append(b.Lines, line)
		b.LabelWidth = max(b.LabelWidth, len(name)+1)
	}
	for _, f := range e.fields {
		d := catalog[f]
		if include(d) {
			add(d.Name, d.Format, e.fieldTotals[f])
		}
	}
	if e.withReward {
		add("reward", FormatCoin, e.reward)
	}
	return b
}

// ColumnAvgStats returns column averages aligned as an extra report row;
// non-numeric columns are left out of Cells.
func (e *StatsEngine) ColumnAvgStats() StatBlock {
	cells := make(map[Field]string)
	for _, f := range e.fields {
		d := catalog[f]
		t := e.fieldTotals[f]
		if !d.Avg || t.Count == 0 {
			continue
		}
		cells[f] = formatAggregate(d.Format, t.Mean(), 0)
	}
	return StatBlock{Kind: StatColAvg, Label: "Column averages", Cells: cells}
}
