package blocksinfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
)

const missingText = "-"

// Cell is one rendered column of a row.
type Cell struct {
	Raw     any
	Text    string
	Missing bool
}

// BlockRow is the projection of one block onto the active fields.
type BlockRow struct {
	Height   uint64
	Hash     string
	Time     int64
	Interval int64
	Miner    string
	Header   model.Blob
	// Stats is nil unless an active field reads block statistics.
	Stats  model.Blob
	Local  model.Blob
	Fields []Field
	Cells  []Cell
}

// Cell returns the cell of field f, if f is active.
func (r *BlockRow) Cell(f Field) (Cell, bool) {
	for i, af := range r.Fields {
		if af == f {
			return r.Cells[i], true
		}
	}
	return Cell{}, false
}

// Texts returns the display values in column order.
func (r *BlockRow) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// RawValues returns the raw values keyed by field name; missing values are nil.
func (r *BlockRow) RawValues() map[string]any {
	out := make(map[string]any, len(r.Fields))
	for i, f := range r.Fields {
		out[f.String()] = r.Cells[i].Raw
	}
	return out
}

type rowBuilder struct {
	daemon    Daemon
	fields    []Field
	statsKeys []string
	withStats bool
	withMiner bool
	rawMiner  bool
}

func newRowBuilder(daemon Daemon, fields []Field, rawMiner bool) *rowBuilder {
	b := &rowBuilder{
		daemon:   daemon,
		fields:   fields,
		rawMiner: rawMiner,
	}
	for _, f := range fields {
		d := catalog[f]
		if d.Source == SourceStats {
			b.withStats = true
			b.statsKeys = appendUnique(b.statsKeys, d.KeyPath.Key)
		}
		if f == FieldMiner {
			b.withMiner = true
		}
	}
	if b.withStats {
		b.statsKeys = appendUnique(b.statsKeys, "total_size")
		b.statsKeys = appendUnique(b.statsKeys, "total_weight")
	}
	return b
}

func appendUnique(keys []string, k string) []string {
	for _, existing := range keys {
		if existing == k {
			return keys
		}
	}
	return append(keys, k)
}

func (b *rowBuilder) build(ctx context.Context, height uint64, hash string, hdr model.Blob, interval int64) (*BlockRow, error) {
	t, err := headerTime(hdr)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", height, err)
	}

	row := &BlockRow{
		Height:   height,
		Hash:     hash,
		Time:     t,
		Interval: interval,
		Header:   hdr,
		Fields:   b.fields,
		Local: model.Blob{
			"height":   height,
			"hash":     hash,
			"time":     t,
			"interval": interval,
		},
	}

	if b.withStats {
		if height == 0 {
			row.Stats = genesisStats()
		} else {
			stats, err := b.daemon.BlockStats(ctx, hash, b.statsKeys)
			if err != nil {
				return nil, fmt.Errorf("get block stats for %s: %w", hash, err)
			}
			row.Stats = stats
		}
	}

	if b.withMiner {
		miner, err := b.miner(ctx, height, hash)
		if err != nil {
			return nil, err
		}
		row.Miner = miner
		row.Local["miner"] = miner
	}

	row.Cells = make([]Cell, len(b.fields))
	for i, f := range b.fields {
		row.Cells[i] = projectCell(catalog[f], row.source(catalog[f].Source))
	}
	return row, nil
}

func (r *BlockRow) source(s Source) model.Blob {
	switch s {
	case SourceHeader:
		return r.Header
	case SourceStats:
		return r.Stats
	default:
		return r.Local
	}
}

func (b *rowBuilder) miner(ctx context.Context, height uint64, hash string) (string, error) {
	if height == 0 {
		return genesisMiner, nil
	}
	script, err := b.daemon.Coinbase(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrMalformedBlock) {
			return malformedMiner, nil
		}
		return "", fmt.Errorf("get coinbase for %s: %w", hash, err)
	}
	if b.rawMiner {
		return RawMiner(script), nil
	}
	return ExtractMiner(script), nil
}

func projectCell(d FieldDescriptor, src model.Blob) Cell {
	v, ok := src.Lookup(d.KeyPath.Key, d.KeyPath.Index)
	if !ok {
		return Cell{Text: missingText, Missing: true}
	}
	text, err := formatValue(d.Format, v)
	if err != nil {
		return Cell{Raw: v, Text: missingText, Missing: true}
	}
	return Cell{Raw: v, Text: text}
}

func headerTime(hdr model.Blob) (int64, error) {
	t, ok := hdr.Int64("time")
	if !ok {
		return 0, errors.New("block header has no time")
	}
	return t, nil
}

// genesisStats stands in for getblockstats, which the daemon rejects for the genesis block.
func genesisStats() model.Blob {
	zero := int64(0)
	return model.Blob{
		"avgfee":              zero,
		"avgfeerate":          zero,
		"avgtxsize":           zero,
		"feerate_percentiles": []any{zero, zero, zero, zero, zero},
		"height":              zero,
		"ins":                 zero,
		"maxfee":              zero,
		"maxfeerate":          zero,
		"maxtxsize":           zero,
		"medianfee":           zero,
		"mediantxsize":        zero,
		"minfee":              zero,
		"minfeerate":          zero,
		"mintxsize":           zero,
		"outs":                int64(1),
		"subsidy":             int64(50 * btcutil.SatoshiPerBitcoin),
		"swtotal_size":        zero,
		"swtotal_weight":      zero,
		"swtxs":               zero,
		"total_out":           zero,
		"total_size":          zero,
		"total_weight":        zero,
		"totalfee":            zero,
		"txs":                 int64(1),
		"utxo_increase":       int64(1),
		"utxo_size_inc":       int64(117),
	}
}
