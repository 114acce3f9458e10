package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/blocksinfo"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/pkg/batcher"
	"go.uber.org/zap"
)

var _ blocksinfo.RowSink = (*Sink)(nil)

// Inserter writes one batch of report rows.
type Inserter interface {
	InsertBlockReports(ctx context.Context, reports []model.BlockReport) error
}

// Sink buffers report rows and writes them in batches from a background
// goroutine.
type Sink struct {
	batcher *batcher.Batcher[model.BlockReport]
}

func NewSink(inserter Inserter, cfg batcher.Config, logger *zap.Logger) *Sink {
	return &Sink{
		batcher: batcher.New(logger.Named("clickhouse_sink"), inserter.InsertBlockReports, cfg),
	}
}

// Start launches the flush loop; it stops when ctx is done or Stop is called.
func (s *Sink) Start(ctx context.Context) {
	s.batcher.Start(ctx)
}

func (s *Sink) Add(ctx context.Context, report model.BlockReport) error {
	return s.batcher.Add(ctx, report)
}

// Stop flushes buffered rows and returns any insert errors.
func (s *Sink) Stop() error {
	return s.batcher.Stop()
}
