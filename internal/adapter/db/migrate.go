package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const tasksSchema = `
CREATE TABLE IF NOT EXISTS tasks (
  id              CHAR(36)     NOT NULL,
  text            VARCHAR(255) NOT NULL,
  description     TEXT         NOT NULL,
  notes           TEXT         NOT NULL,
  priority        VARCHAR(16)  NOT NULL,
  category        VARCHAR(16)  NOT NULL,
  tags            JSON         NOT NULL,
  due_date        DATETIME(6)  NULL,
  estimated_time  INT          NULL,
  actual_time     INT          NULL,
  recurring       VARCHAR(16)  NOT NULL,
  completed       TINYINT(1)   NOT NULL DEFAULT 0,
  completed_at    DATETIME(6)  NULL,
  progress        TINYINT      NOT NULL DEFAULT 0,
  is_daily        TINYINT(1)   NOT NULL DEFAULT 0,
  daily_reset     TINYINT(1)   NOT NULL DEFAULT 0,
  completed_dates JSON         NOT NULL,
  subtasks        JSON         NOT NULL,
  attachments     JSON         NOT NULL,
  created_at      DATETIME(6)  NOT NULL,
  updated_at      DATETIME(6)  NOT NULL,
  PRIMARY KEY (id),
  KEY idx_tasks_category (category),
  KEY idx_tasks_completed (completed),
  KEY idx_tasks_is_daily (is_daily),
  KEY idx_tasks_due_date (due_date),
  KEY idx_tasks_created_at (created_at)
);
`

// EnsureSchema creates the tasks table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, tasksSchema)
	return err
}
