// Package jobs runs background maintenance tasks over Asynq.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogBackup exports the product catalog to a CSV snapshot.
	TaskCatalogBackup = "catalog:backup"
	// TaskReportsWarmup precomputes daily sales totals into the cache.
	TaskReportsWarmup = "reports:warmup"
)

// CatalogBackupPayload configures a catalog backup run.
type CatalogBackupPayload struct {
	Dir string `json:"dir"`
}

// ReportsWarmupPayload configures which trailing days to warm.
type ReportsWarmupPayload struct {
	Days int `json:"days"`
}

// NewCatalogBackupTask constructs a catalog backup task.
func NewCatalogBackupTask(payload CatalogBackupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogBackup, data), nil
}

// NewReportsWarmupTask constructs a report warmup task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}
