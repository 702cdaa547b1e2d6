package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tillbook/tillbook/internal/catalog"
)

// CatalogBackupJob writes timestamped CSV snapshots of the catalog.
type CatalogBackupJob struct {
	service *catalog.Service
	dir     string
	logger  *slog.Logger
}

// NewCatalogBackupJob constructs the job. dir is the fallback when the
// task payload does not name one.
func NewCatalogBackupJob(service *catalog.Service, dir string, logger *slog.Logger) *CatalogBackupJob {
	return &CatalogBackupJob{service: service, dir: dir, logger: logger}
}

// Handle processes TaskCatalogBackup tasks.
func (j *CatalogBackupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload CatalogBackupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	dir := payload.Dir
	if dir == "" {
		dir = j.dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("catalog-%s.csv", time.Now().UTC().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := j.service.ExportCSV(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	j.logger.Info("catalog backup written", "path", path)
	return nil
}
