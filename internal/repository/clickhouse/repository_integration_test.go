//go:build integration

package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	tcClickhouse "github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/pkg/batcher"
)

const (
	clickhouseImage = "clickhouse/clickhouse-server:25.11"
)

type RepositorySuite struct {
	suite.Suite
	ctx        context.Context
	cancel     context.CancelFunc
	container  *tcClickhouse.ClickHouseContainer
	dsn        string
	repo       *Repository
	metrics    *MockMetrics
	metricsCtl *gomock.Controller
	testCtx    context.Context
	testCancel context.CancelFunc
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)

	container, err := tcClickhouse.Run(s.ctx,
		clickhouseImage,
		tcClickhouse.WithUsername("default"),
		tcClickhouse.WithDatabase("default"),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)
	s.dsn = dsn
}

func (s *RepositorySuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *RepositorySuite) SetupTest() {
	s.testCtx, s.testCancel = context.WithTimeout(context.Background(), time.Minute)
	s.metricsCtl = gomock.NewController(s.T())
	s.metrics = NewMockMetrics(s.metricsCtl)
	s.metrics.EXPECT().Observe(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().ObserveRows(gomock.Any(), gomock.Any()).AnyTimes()

	s.Require().NoError(applyMigrationsUp(s.dsn))

	repo, err := NewRepository(s.dsn, s.metrics)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepositorySuite) TearDownTest() {
	if s.repo != nil {
		s.Require().NoError(s.repo.Close())
	}
	if s.testCancel != nil {
		s.testCancel()
	}
	s.Require().NoError(applyMigrationsDown(s.dsn))
	if s.metricsCtl != nil {
		s.metricsCtl.Finish()
	}
}

func newReport(network model.Network, height uint64) model.BlockReport {
	return model.BlockReport{
		Network:   network,
		Height:    height,
		Hash:      fmt.Sprintf("%064x", height),
		Timestamp: time.Unix(1700000000+int64(height)*600, 0).UTC(),
		Interval:  600,
		Miner:     "Foundry USA",
		Fields:    fmt.Sprintf(`{"block":%d}`, height),
	}
}

func (s *RepositorySuite) countRows(network model.Network) uint64 {
	conn := s.repo.conn.(driverConn).conn
	rows, err := conn.Query(s.testCtx, "SELECT count() FROM block_reports FINAL WHERE network = ?", string(network))
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var count uint64
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&count))
	return count
}

func (s *RepositorySuite) TestInsertBlockReports() {
	reports := []model.BlockReport{
		newReport(model.Mainnet, 100),
		newReport(model.Mainnet, 101),
		newReport(model.Mainnet, 102),
	}
	s.Require().NoError(s.repo.InsertBlockReports(s.testCtx, reports))
	s.Require().Equal(uint64(3), s.countRows(model.Mainnet))
	s.Require().Equal(uint64(0), s.countRows(model.Testnet))

	// Re-reporting the same blocks replaces rather than duplicates them.
	s.Require().NoError(s.repo.InsertBlockReports(s.testCtx, reports[:2]))
	s.Require().Equal(uint64(3), s.countRows(model.Mainnet))
}

func (s *RepositorySuite) TestSinkExport() {
	sink := NewSink(s.repo, batcher.Config{FlushSize: 4, FlushInterval: 50 * time.Millisecond}, zap.NewNop())
	sink.Start(s.testCtx)

	for h := uint64(0); h < 10; h++ {
		s.Require().NoError(sink.Add(s.testCtx, newReport(model.Signet, h)))
	}
	s.Require().NoError(sink.Stop())
	s.Require().Equal(uint64(10), s.countRows(model.Signet))
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}

	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("go.mod not found from %s", dir)
		}
		dir = next
	}
}

func applyMigrationsUp(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func applyMigrationsDown(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	root, err := moduleRoot()
	if err != nil {
		return nil, err
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.Join(root, "migrations", "clickhouse"))
	m, err := migrate.New(sourceURL, withMultiStatement(dsn))
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

func withMultiStatement(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}
