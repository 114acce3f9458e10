package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/blocksinfo"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/output"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-nodetools/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/pkg/batcher"
)

type config struct {
	RPCURL      string        `long:"rpc-url" env:"BLOCKS_INFO_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"BLOCKS_INFO_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"BLOCKS_INFO_RPC_PASSWORD" description:"Bitcoin RPC password"`
	Network     model.Network `long:"network" env:"BLOCKS_INFO_NETWORK" description:"network name" default:"mainnet" choice:"mainnet" choice:"testnet" choice:"regtest" choice:"signet"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"BLOCKS_INFO_HTTP_TIMEOUT" description:"deadline for all RPC traffic of one report (0 disables)" default:"5m"`
	Workers     int           `long:"workers" env:"BLOCKS_INFO_WORKERS" description:"concurrent RPC calls per batch" default:"8"`
	RPCRPS      int           `long:"rpc-rps" env:"BLOCKS_INFO_RPC_RPS" description:"RPC calls per second (0 is unlimited)" default:"0"`

	Fields       string `short:"f" long:"fields" env:"BLOCKS_INFO_FIELDS" description:"fields to display: a list, +list to add, -list to remove, 'all' or 'none'"`
	Stats        string `short:"s" long:"stats" env:"BLOCKS_INFO_STATS" description:"statistics to display: range,diff,avg,total,col_avg, 'all' or 'none'"`
	MinerInfo    bool   `short:"m" long:"miner-info" description:"display miner info from the coinbase"`
	RawMinerInfo bool   `short:"M" long:"raw-miner-info" description:"display the raw coinbase script instead of a miner tag"`
	Summary      bool   `short:"S" long:"summary" description:"print statistics only"`
	JSON         bool   `short:"j" long:"json" description:"produce JSON output"`
	RawJSON      bool   `short:"r" long:"raw-json" description:"produce JSON output with native values"`
	NoColor      bool   `long:"no-color" env:"BLOCKS_INFO_NO_COLOR" description:"disable colored text output"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"BLOCKS_INFO_CLICKHOUSE_DSN" description:"export rows to ClickHouse"`
	ExportBatch   int    `long:"export-batch" env:"BLOCKS_INFO_EXPORT_BATCH" description:"rows per ClickHouse insert" default:"500"`
	MetricsFile   string `long:"metrics-file" env:"BLOCKS_INFO_METRICS_FILE" description:"write metrics in Prometheus text format to this file"`
	MetricsAddr   string `long:"metrics-addr" env:"BLOCKS_INFO_METRICS_ADDR" description:"serve metrics on this address while running"`
	Debug         bool   `long:"debug" env:"BLOCKS_INFO_DEBUG" description:"enable debug logging"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[OPTIONS] [RANGE | HEIGHT...]"
	args, err := parser.ParseArgs(splitArgs(os.Args[1:]))
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, args, os.Stdout, logger); err != nil {
		logger.Fatal("blocks-info failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zcfg.Build()
}

func run(ctx context.Context, cfg config, args []string, stdout io.Writer, logger *zap.Logger) (err error) {
	params, err := bitcoin.Params(cfg.Network)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}
	reportMetrics := metrics.NewReport(cfg.Network)
	started := time.Now()
	defer func() {
		reportMetrics.ObserveRun(err, started)
		if cfg.MetricsFile != "" {
			err = errors.Join(err, metrics.WriteTextfile(cfg.MetricsFile))
		}
	}()

	client, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	rpc := rpcclient2.NewObservedClient(client, metrics.NewRPCClient(cfg.Network))
	defer rpc.Shutdown()

	daemon := bitcoin.NewDaemon(rpc, bitcoin.Config{Workers: cfg.Workers, RPS: cfg.RPCRPS}, logger)
	options := []blocksinfo.ReporterOption{blocksinfo.WithMetrics(reportMetrics)}

	if cfg.ClickhouseDSN != "" {
		repo, repoErr := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if repoErr != nil {
			return fmt.Errorf("init repository: %w", repoErr)
		}
		defer func() {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("close clickhouse connection", zap.Error(closeErr))
			}
		}()

		sink := clickhouse.NewSink(repo, batcher.Config{FlushSize: cfg.ExportBatch, FlushInterval: time.Second}, logger)
		sink.Start(ctx)
		defer func() {
			if stopErr := sink.Stop(); stopErr != nil {
				err = errors.Join(err, fmt.Errorf("export rows: %w", stopErr))
			}
		}()
		options = append(options, blocksinfo.WithRowSink(sink))
	}

	reporter, err := blocksinfo.NewReporter(daemon, newRenderer(cfg, stdout), blocksinfo.Options{
		Fields:    cfg.Fields,
		Stats:     cfg.Stats,
		MinerInfo: cfg.MinerInfo,
		RawMiner:  cfg.RawMinerInfo,
		Summary:   cfg.Summary,
		Network:   cfg.Network,
		Params:    params,
	}, logger, options...)
	if err != nil {
		return err
	}

	if cfg.HTTPTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.HTTPTimeout)
		defer cancel()
	}
	if err := reporter.Run(ctx, args); err != nil {
		return err
	}
	logger.Debug("report finished", zap.Int("blocks", reportMetrics.Blocks()), zap.Duration("elapsed", time.Since(started)))
	return nil
}

func newRenderer(cfg config, stdout io.Writer) blocksinfo.Renderer {
	if cfg.JSON || cfg.RawJSON {
		return output.NewJSON(stdout, cfg.RawJSON)
	}
	return output.NewText(stdout, !cfg.NoColor && !color.NoColor)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Debug("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
