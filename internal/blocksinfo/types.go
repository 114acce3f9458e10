package blocksinfo

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Daemon is the node RPC surface the report engine reads from.
	Daemon interface {
		Tip(ctx context.Context) (uint64, error)
		BlockHashes(ctx context.Context, heights []uint64) ([]string, error)
		Headers(ctx context.Context, hashes []string) ([]model.Blob, error)
		BlockStats(ctx context.Context, hash string, keys []string) (model.Blob, error)
		Coinbase(ctx context.Context, hash string) ([]byte, error)
	}
	// Renderer receives the report as it is produced.
	Renderer interface {
		Begin(layout *Layout, rows bool) error
		Row(row *BlockRow) error
		Stats(block StatBlock) error
		End() error
	}
	// RowSink receives every processed row for export.
	RowSink interface {
		Add(ctx context.Context, report model.BlockReport) error
	}
	ReportMetrics interface {
		ObserveProcessHeight(err error, height uint64, started time.Time)
	}
)
