package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shaiso/loanpipe/internal/domain"
	"github.com/shaiso/loanpipe/internal/pipeline"
)

// fakeLocker имитирует межпроцессный лок прогонов.
type fakeLocker struct {
	held     bool // лок уже держит «другой процесс»
	acquires int
	releases int
}

func (l *fakeLocker) acquire(_ context.Context) (func(), bool, error) {
	l.acquires++
	if l.held {
		return nil, false, nil
	}
	return func() { l.releases++ }, true, nil
}

// fakeStore накапливает добавленные строки в памяти.
type fakeStore struct {
	ensureCalls int
	appended    []*domain.RunSummary
}

func (s *fakeStore) EnsureSchema(_ context.Context) error {
	s.ensureCalls++
	return nil
}

func (s *fakeStore) Append(_ context.Context, summary *domain.RunSummary) error {
	s.appended = append(s.appended, summary)
	return nil
}

func newTestScheduler(t *testing.T, locker runLocker, store *fakeStore) *Scheduler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "loan_data_small.csv")
	csv := "id,grade,loan_amount\n1,A,1000\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(Config{
		Pipeline: pipeline.New(pipeline.Config{DatasetPath: path, Store: store}),
		CronExpr: "@daily",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.locker = locker
	return s
}

func TestRunOnce_ReleasesLock(t *testing.T) {
	locker := &fakeLocker{}
	store := &fakeStore{}
	s := newTestScheduler(t, locker, store)

	s.runOnce(context.Background())

	if len(store.appended) != 1 {
		t.Fatalf("expected 1 appended row, got %d", len(store.appended))
	}
	// Лок берётся и отпускается парно, на одном handle
	if locker.acquires != 1 {
		t.Errorf("expected 1 acquire, got %d", locker.acquires)
	}
	if locker.releases != 1 {
		t.Errorf("lock must be released after the run, got %d releases", locker.releases)
	}

	// Следующий тик не должен упереться в неотпущенный лок
	s.runOnce(context.Background())
	if len(store.appended) != 2 {
		t.Errorf("expected 2 appended rows after second tick, got %d", len(store.appended))
	}
	if locker.releases != 2 {
		t.Errorf("expected 2 releases, got %d", locker.releases)
	}
}

func TestRunOnce_LockHeldElsewhere(t *testing.T) {
	locker := &fakeLocker{held: true}
	store := &fakeStore{}
	s := newTestScheduler(t, locker, store)

	s.runOnce(context.Background())

	// Тик пропускается целиком: ни прогона, ни release
	if len(store.appended) != 0 || store.ensureCalls != 0 {
		t.Error("run must not execute while another process holds the lock")
	}
	if locker.releases != 0 {
		t.Errorf("nothing to release when lock was not acquired, got %d", locker.releases)
	}
}

func TestRunOnce_SkipsWhileRunning(t *testing.T) {
	locker := &fakeLocker{}
	store := &fakeStore{}
	s := newTestScheduler(t, locker, store)

	// Имитируем ещё идущий прогон
	s.running.Store(true)
	s.runOnce(context.Background())

	if locker.acquires != 0 {
		t.Errorf("in-process guard must skip before locking, got %d acquires", locker.acquires)
	}
	if len(store.appended) != 0 {
		t.Error("run must not execute concurrently")
	}
}
