package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/loyalty-keeper/models"
)

// spySyncService считает вызовы Sync; mockgen не нужен.
type spySyncService struct {
	calls atomic.Int64

	mu        sync.Mutex
	lastAcct  string
	failEvery bool
}

func (s *spySyncService) Sync(_ context.Context, accountID string) models.SyncResult {
	s.calls.Add(1)
	s.mu.Lock()
	s.lastAcct = accountID
	s.mu.Unlock()

	if s.failEvery {
		return models.SyncResult{Direction: models.SyncDirectionNone, Errors: []string{"boom"}}
	}
	return models.SyncResult{Direction: models.SyncDirectionNone, Success: true}
}

func (s *spySyncService) FirstLoginDownload(_ context.Context, _ string) models.SyncResult {
	return models.SyncResult{Direction: models.SyncDirectionPull, Success: true}
}

func (s *spySyncService) lastAccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAcct
}

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	require.NotNil(t, job)

	// проверяем что возвращённый объект реализует ClientSyncJob
	var _ ClientSyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_CallsSync(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx := context.Background()

	// Интервал 10ms — за 55ms должно быть ~5 тиков
	job.Start(ctx, testAccountID, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Sync должен быть вызван несколько раз, вызвано: %d", got)
	assert.Equal(t, testAccountID, spy.lastAccountID())
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, testAccountID, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := spy.calls.Load()

	assert.Equal(t, callsAfterStop, callsLater, "после Stop новых вызовов быть не должно")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)

	// Stop без Start не должен паниковать
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, testAccountID, 10*time.Millisecond)
	job.Stop()

	// Повторный Stop не должен паниковать
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_Start_DefaultInterval(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 → дефолт 5 минут, за 20ms вызовов быть не должно
	job.Start(ctx, testAccountID, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load(), "при дефолтном интервале 5min за 20ms вызовов нет")
}

func TestClientSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, testAccountID, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// Start повторно на том же job — внутри вызовет Stop()
	job.Start(ctx, testAccountID, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	totalCalls := spy.calls.Load()
	assert.Greater(t, totalCalls, callsBefore, "второй Start должен продолжить генерировать вызовы")
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, testAccountID, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel() // отменяем родительский контекст

	// Stop должен вернуться без зависания
	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(1 * time.Second):
		t.Fatal("Stop завис после отмены контекста")
	}
}

func TestClientSyncJob_SyncFailure_DoesNotStopJob(t *testing.T) {
	spy := &spySyncService{failEvery: true}
	job := NewClientSyncJob(spy)
	ctx := context.Background()

	// Sync возвращает неуспешный результат, но джоб продолжает тикать
	job.Start(ctx, testAccountID, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "несмотря на ошибки, Sync продолжает вызываться: %d", got)
}
