package database

import (
	"fmt"
	"log/slog"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
)

type indexDef struct {
	model   any
	table   string
	name    string
	columns string
}

// Composite indexes for the listing queries that AutoMigrate's tags do not cover.
var extraIndexes = []indexDef{
	{&models.Task{}, "tasks", "idx_tasks_board", "classified, is_draft, created_at"},
	{&models.Task{}, "tasks", "idx_tasks_status_updated", "status, updated_at"},
	{&models.Leave{}, "leaves", "idx_leaves_user_created", "user_id, created_at"},
	{&models.Expense{}, "expenses", "idx_expenses_user_created", "user_id, created_at"},
	{&models.Kudos{}, "kudos", "idx_kudos_to_user_created", "to_user_id, created_at"},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	migrator := db.Migrator()
	for _, idx := range extraIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
