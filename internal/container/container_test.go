package container

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
	"github.com/garyjia/expense-companion/pkg/utils"
)

var testNow = time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

func testConfig(t *testing.T, backend string) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Store.Backend = backend
	cfg.Export.BaseDir = t.TempDir()
	if backend == BackendSQLite {
		name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
		cfg.Database.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	}
	return cfg
}

func startContainer(t *testing.T, cfg *Config) *Container {
	t.Helper()
	c, err := NewContainer(cfg, zap.NewNop(), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() {
		if !c.closed.Load() {
			_ = c.Close()
		}
	})
	return c
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(DefaultConfig(), nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Store.Backend = "postgres"
	_, err = NewContainer(cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Messaging.Enabled = true
	cfg.Messaging.URL = ""
	_, err = NewContainer(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestContainer_Lifecycle(t *testing.T) {
	for _, backend := range []string{BackendMemory, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			c := startContainer(t, testConfig(t, backend))

			assert.True(t, c.Ready())
			health := c.Health()
			assert.True(t, health.Overall)
			assert.Equal(t, backend, health.Components["store"].Message)

			expenses, err := c.Services().Expenses.List(ctx, derive.Criteria{})
			require.NoError(t, err)
			assert.Len(t, expenses, len(seed.Default().Expenses))

			assert.Error(t, c.Start(ctx), "second start")

			require.NoError(t, c.Close())
			assert.False(t, c.Ready())
			assert.Error(t, c.Close(), "second close")
		})
	}
}

func TestContainer_DraftToExportedReport(t *testing.T) {
	ctx := context.Background()
	c := startContainer(t, testConfig(t, BackendSQLite))
	services := c.Services()

	d, err := c.Drafts().Get(entity.SourceCreditCards)
	require.NoError(t, err)
	_, err = d.Toggle("1")
	require.NoError(t, err)
	_, err = d.Toggle("3")
	require.NoError(t, err)
	require.NoError(t, d.Open(ctx))
	require.NoError(t, d.UpdateForm(draft.Form{Name: "Card spend", BusinessPurpose: "Conference travel"}))

	payload, err := d.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", payload.Date, "date defaults to today")

	report, err := services.Reports.CreateFromDraft(ctx, payload, c.Config().App.User)
	require.NoError(t, err)
	assert.InDelta(t, 33500, report.TotalAmount, 1e-9)

	path, err := services.Export.ExportReport(ctx, report.ID)
	require.NoError(t, err)
	assert.True(t, c.Files().Exists(ctx, path))
}

func TestContainer_LinkedExpensesNotSelectable(t *testing.T) {
	c := startContainer(t, testConfig(t, BackendMemory))

	d, err := c.Drafts().Get(entity.SourceExpenses)
	require.NoError(t, err)

	_, err = d.Toggle("101")
	assert.ErrorIs(t, err, draft.ErrUnknownItem)

	selected, err := d.Toggle("2")
	require.NoError(t, err)
	assert.True(t, selected)
}

func TestContainer_Reset(t *testing.T) {
	ctx := context.Background()
	c := startContainer(t, testConfig(t, BackendSQLite))

	_, err := c.Services().Approvals.Approve(ctx, "2", "Mike Davis", "")
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx))

	report, err := c.Services().Reports.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "pending", report.Status.String())
}

func TestContainer_UnseededMemoryStore(t *testing.T) {
	cfg := testConfig(t, BackendMemory)
	cfg.Store.Seed = false
	c := startContainer(t, cfg)

	reports, err := c.Services().Reports.List(context.Background(), derive.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

type blockingPublisher struct {
	release   chan struct{}
	published chan string
}

func (p *blockingPublisher) Publish(ctx context.Context, evt *event.Event) error {
	<-p.release
	p.published <- evt.AggregateID
	return nil
}

func TestProvideDispatcher_PublishesOffTheCommandPath(t *testing.T) {
	pub := &blockingPublisher{release: make(chan struct{}), published: make(chan string, 1)}
	disp, err := ProvideDispatcher(utils.NewKVLogger(zap.NewNop()), pub)
	require.NoError(t, err)

	returned := make(chan error, 1)
	go func() {
		returned <- disp.Dispatch(context.Background(), event.NewEvent(event.TypeReportCreated, "r-1", "Alex", nil))
	}()
	select {
	case err := <-returned:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatch waited for the broker")
	}

	close(pub.release)
	require.NoError(t, disp.Close())
	assert.Equal(t, "r-1", <-pub.published)
}
