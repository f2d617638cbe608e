package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
)

// PostgresTaskRepository implements task persistence against a PostgreSQL
// database. Every query filters by both task id and owning account id, so a
// task id alone never grants access to another account's row.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the
// provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// ListByAccount fetches all tasks owned by the given account, ordered by id
// so the listing is deterministic (insertion order).
func (r *PostgresTaskRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, account_id, title, priority, due_date, status FROM tasks
		WHERE account_id = $1 ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("ListByAccount: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.AccountID, &task.Title, &task.Priority, &task.DueDate, &task.Status); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a new task row and returns the task with its
// storage-assigned id filled in.
func (r *PostgresTaskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (account_id, title, priority, due_date, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, task.AccountID, task.Title, task.Priority, task.DueDate, task.Status).Scan(&task.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// ToggleStatus flips the status of the task identified by (taskID, accountID)
// between Pending and Completed in a single atomic statement. When no row
// matches (nonexistent id or different owner) the update affects zero rows
// and the call silently succeeds; that fail-silent boundary is part of the
// contract.
func (r *PostgresTaskRepository) ToggleStatus(ctx context.Context, accountID, taskID int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE tasks SET status = CASE WHEN status = $1 THEN $2 ELSE $1 END
		WHERE id = $3 AND account_id = $4
	`, models.StatusPending, models.StatusCompleted, taskID, accountID)
	if err != nil {
		return fmt.Errorf("toggle status: %w", err)
	}
	return nil
}

// DeleteTask removes the task identified by (taskID, accountID). Deleting a
// nonexistent or non-owned id is silently a no-op.
func (r *PostgresTaskRepository) DeleteTask(ctx context.Context, accountID, taskID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND account_id = $2`,
		taskID, accountID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
