package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

// remoteCommitTimeout bounds one background remote write.
const remoteCommitTimeout = 15 * time.Second

// syncedLogRepo applies every append to the local store synchronously and
// commits it to the remote store in the background. Reads come from local,
// which is authoritative for the lifetime of the process; a failed remote
// commit is reported through the Commit and never rolls the local row back.
type syncedLogRepo struct {
	local  LogRepository
	remote LogRepository
	logger *zap.Logger
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]map[*Commit]struct{} // in-flight remote appends per category
}

// NewSyncedRepository pairs a local store with a remote one. Logs are
// two-phase; roster and setting go straight to the remote store.
func NewSyncedRepository(local *LocalStore, remote *Repository, logger *zap.Logger) *Repository {
	logs := &syncedLogRepo{
		local:   &localLogRepo{s: local},
		remote:  remote.Log,
		logger:  logger,
		pending: make(map[string]map[*Commit]struct{}),
	}
	return &Repository{
		Employee: remote.Employee,
		Log:      logs,
		Setting:  remote.Setting,
		drainers: []func(){logs.wg.Wait},
	}
}

// HydrateLocal copies the newest limit rows of each category from remote
// into local so the process starts from the durable state.
func HydrateLocal(ctx context.Context, local *LocalStore, remote LogRepository, categories []string, limit int) error {
	for _, cat := range categories {
		logs, err := remote.ListByCategory(ctx, cat, limit)
		if err != nil {
			return fmt.Errorf("hydrate category %s: %w", cat, err)
		}
		local.LoadLogs(cat, logs)
	}
	return nil
}

func (r *syncedLogRepo) Append(ctx context.Context, log *model.AttendanceLog) (*Commit, error) {
	// the local apply is in memory; its own commit carries no information here
	if _, err := r.local.Append(ctx, log); err != nil {
		return nil, err
	}

	commit := newCommit()
	stored := *log
	r.track(stored.Category, commit)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), remoteCommitTimeout)
		defer cancel()

		rc, err := r.remote.Append(cctx, &stored)
		if err == nil {
			err = rc.Wait(cctx)
		}
		if err != nil {
			r.logger.Warn("remote log commit failed",
				zap.String("log_id", stored.ID),
				zap.String("category", stored.Category),
				zap.Error(err),
			)
		}
		commit.resolve(err)
		r.untrack(stored.Category, commit)
	}()

	return commit, nil
}

func (r *syncedLogRepo) ListByCategory(ctx context.Context, category string, limit int) ([]model.AttendanceLog, error) {
	return r.local.ListByCategory(ctx, category, limit)
}

// ClearByCategory deletes remotely first and only then locally, so a failed
// remote delete leaves both sides intact. Remote appends of the category still
// in flight are awaited first; otherwise one could land after the delete and
// come back on the next hydration.
func (r *syncedLogRepo) ClearByCategory(ctx context.Context, category string) (int64, error) {
	if err := r.awaitPending(ctx, category); err != nil {
		return 0, wrapWrite(fmt.Errorf("pending commits: %w", err))
	}
	n, err := r.remote.ClearByCategory(ctx, category)
	if err != nil {
		return 0, err
	}
	if _, err := r.local.ClearByCategory(ctx, category); err != nil {
		return n, err
	}
	return n, nil
}

func (r *syncedLogRepo) track(category string, c *Commit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending[category] == nil {
		r.pending[category] = make(map[*Commit]struct{})
	}
	r.pending[category][c] = struct{}{}
}

func (r *syncedLogRepo) untrack(category string, c *Commit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending[category], c)
	if len(r.pending[category]) == 0 {
		delete(r.pending, category)
	}
}

// awaitPending blocks until every remote append of category started so far
// has resolved, successfully or not.
func (r *syncedLogRepo) awaitPending(ctx context.Context, category string) error {
	r.mu.Lock()
	commits := make([]*Commit, 0, len(r.pending[category]))
	for c := range r.pending[category] {
		commits = append(commits, c)
	}
	r.mu.Unlock()

	for _, c := range commits {
		select {
		case <-c.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
