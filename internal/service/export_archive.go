package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/acadsync/timetable-api/pkg/errors"
	"github.com/acadsync/timetable-api/pkg/jobs"
	"github.com/acadsync/timetable-api/pkg/storage"
)

const archiveSweepInterval = time.Hour

// ExportArchive keeps a copy of every rendered export on disk. Writes happen
// off the request path through a task runner; retrieval goes through signed
// tokens so archived files can be fetched without a bearer token.
type ExportArchive struct {
	store  *storage.Archive
	signer *storage.TokenSigner
	runner *jobs.Runner
	logger *zap.Logger

	retention time.Duration
	cancel    context.CancelFunc
}

type archivePayload struct {
	RelPath string
	Data    []byte
}

// NewExportArchive constructs the archive. Files older than the retention
// window are swept periodically once Start is called.
func NewExportArchive(store *storage.Archive, signer *storage.TokenSigner, retention time.Duration, logger *zap.Logger) *ExportArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	a := &ExportArchive{store: store, signer: signer, retention: retention, logger: logger}
	a.runner = jobs.NewRunner("export-archive", a.persist, jobs.Options{Workers: 1}, logger)
	return a
}

// Start launches the archive worker and the retention sweeper. Must be
// called before Keep.
func (a *ExportArchive) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	a.runner.Start(ctx)
	go a.sweep(ctx)
}

// Stop drains the worker and halts the sweeper.
func (a *ExportArchive) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.runner.Stop()
}

// Keep schedules an asynchronous write of a rendered export and returns a
// signed token the caller can later exchange for the archived copy.
func (a *ExportArchive) Keep(filename string, data []byte) (string, error) {
	id := uuid.NewString()
	relPath := path.Join(time.Now().UTC().Format("2006-01-02"), id+"-"+filename)

	// The caller may reuse its buffer after we return.
	payload := make([]byte, len(data))
	copy(payload, data)

	err := a.runner.Submit(jobs.Task{
		ID:      id,
		Kind:    "archive",
		Payload: archivePayload{RelPath: relPath, Data: payload},
	})
	if err != nil {
		return "", err
	}

	token, _, err := a.signer.Mint(relPath)
	return token, err
}

// Fetch validates a download token and returns the archived bytes plus the
// stored filename.
func (a *ExportArchive) Fetch(token string) ([]byte, string, error) {
	relPath, err := a.signer.Check(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	data, err := a.store.Read(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "archived export not found")
	}
	return data, path.Base(relPath), nil
}

func (a *ExportArchive) persist(_ context.Context, task jobs.Task) error {
	payload, ok := task.Payload.(archivePayload)
	if !ok {
		return fmt.Errorf("unexpected payload for task %s", task.ID)
	}
	if err := a.store.Write(payload.RelPath, payload.Data); err != nil {
		return err
	}
	a.logger.Debug("export archived", zap.String("path", payload.RelPath))
	return nil
}

func (a *ExportArchive) sweep(ctx context.Context) {
	ticker := time.NewTicker(archiveSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.store.Sweep(a.retention)
			if err != nil {
				a.logger.Warn("archive sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				a.logger.Info("archive swept", zap.Int("removed", removed))
			}
		}
	}
}
