// Package bitcoin implements the report engine's daemon on top of a bitcoind JSON-RPC client.
package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/blocksinfo"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/pkg/safe"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/pkg/workerpool"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const defaultWorkers = 8

var _ blocksinfo.Daemon = (*Daemon)(nil)

// Config tunes how independent calls are dispatched.
type Config struct {
	// Workers bounds concurrent RPC calls within one batch.
	Workers int
	// RPS limits RPC calls per second; zero or less means unlimited.
	RPS int
}

// Daemon fetches block data from a node. Calls whose inputs are known up front
// are fanned out over a bounded worker pool.
type Daemon struct {
	rpc     RPCClient
	workers int
	rl      ratelimit.Limiter
	logger  *zap.Logger
}

// NewDaemon constructs a Daemon.
func NewDaemon(rpc RPCClient, cfg Config, logger *zap.Logger) *Daemon {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	rl := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		rl = ratelimit.New(cfg.RPS)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Daemon{
		rpc:     rpc,
		workers: workers,
		rl:      rl,
		logger:  logger,
	}
}

// Tip returns the height of the best chain tip.
func (d *Daemon) Tip(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d.rl.Take()
	count, err := d.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockHashes resolves heights to block hashes, preserving order.
func (d *Daemon) BlockHashes(ctx context.Context, heights []uint64) ([]string, error) {
	d.logger.Debug("fetching block hashes", zap.Int("count", len(heights)))
	return workerpool.Map(ctx, d.workers, heights, func(ctx context.Context, height uint64) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		h, err := safe.Int64(height)
		if err != nil {
			return "", fmt.Errorf("block height %d exceeds rpc limit: %w", height, err)
		}
		d.rl.Take()
		hash, err := d.rpc.GetBlockHash(h)
		if err != nil {
			return "", fmt.Errorf("get block hash at height %d: %w", height, err)
		}
		return hash.String(), nil
	})
}

// Headers fetches verbose block headers, preserving order.
func (d *Daemon) Headers(ctx context.Context, hashes []string) ([]model.Blob, error) {
	d.logger.Debug("fetching block headers", zap.Int("count", len(hashes)))
	return workerpool.Map(ctx, d.workers, hashes, func(ctx context.Context, hash string) (model.Blob, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blob, err := d.blob("getblockheader", hash, true)
		if err != nil {
			return nil, fmt.Errorf("get block header %s: %w", hash, err)
		}
		return blob, nil
	})
}

// BlockStats fetches the requested getblockstats keys of one block.
func (d *Daemon) BlockStats(ctx context.Context, hash string, keys []string) (model.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.blob("getblockstats", hash, keys)
}

// Coinbase returns the signature script of the block's coinbase input.
// Undecodable blocks yield blocksinfo.ErrMalformedBlock.
func (d *Daemon) Coinbase(ctx context.Context, hash string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := d.call("getblock", hash, 0)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("block %s: %w: %v", hash, blocksinfo.ErrMalformedBlock, err)
	}
	serialized, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w: %v", hash, blocksinfo.ErrMalformedBlock, err)
	}
	var block wire.MsgBlock
	if err := block.Deserialize(bytes.NewReader(serialized)); err != nil {
		return nil, fmt.Errorf("block %s: %w: %v", hash, blocksinfo.ErrMalformedBlock, err)
	}
	if len(block.Transactions) == 0 || len(block.Transactions[0].TxIn) == 0 {
		return nil, fmt.Errorf("block %s: %w: no coinbase input", hash, blocksinfo.ErrMalformedBlock)
	}
	return block.Transactions[0].TxIn[0].SignatureScript, nil
}

func (d *Daemon) blob(method, hash string, extra any) (model.Blob, error) {
	raw, err := d.call(method, hash, extra)
	if err != nil {
		return nil, err
	}
	return model.DecodeBlob(raw)
}

func (d *Daemon) call(method, hash string, extra any) (json.RawMessage, error) {
	if _, err := chainhash.NewHashFromStr(hash); err != nil {
		return nil, fmt.Errorf("invalid block hash %q: %w", hash, err)
	}
	params := make([]json.RawMessage, 0, 2)
	for _, p := range []any{hash, extra} {
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode %s params: %w", method, err)
		}
		params = append(params, encoded)
	}
	d.rl.Take()
	return d.rpc.RawRequest(method, params)
}
