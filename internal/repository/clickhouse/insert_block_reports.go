package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
)

const insertBlockReportsQuery = `
INSERT INTO block_reports (
	network,
	height,
	hash,
	timestamp,
	block_interval,
	miner,
	fields
) VALUES`

// InsertBlockReports stores report rows in ClickHouse.
func (r *Repository) InsertBlockReports(ctx context.Context, reports []model.BlockReport) error {
	start := time.Now()
	network := firstNetwork(reports)
	var err error
	defer func() {
		r.metrics.Observe("insert_block_reports", network, err, start)
		if err == nil && len(reports) > 0 {
			r.metrics.ObserveRows(network, len(reports))
		}
	}()

	if len(reports) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlockReportsQuery)
	if err != nil {
		return fmt.Errorf("prepare block reports batch: %w", err)
	}

	for _, report := range reports {
		if err = batch.Append(
			string(report.Network),
			report.Height,
			report.Hash,
			report.Timestamp,
			report.Interval,
			report.Miner,
			report.Fields,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block report %d: %w", report.Height, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block reports: %w", err)
	}
	return nil
}

func firstNetwork(reports []model.BlockReport) model.Network {
	if len(reports) == 0 {
		return ""
	}
	return reports[0].Network
}
