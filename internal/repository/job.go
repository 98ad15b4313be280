package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"jobtrack/constants"
	"jobtrack/internal/common"
	"jobtrack/internal/entity"
)

const (
	timeFormat = time.RFC3339Nano
	dateFormat = "2006-01-02"
)

type JobRepository interface {
	CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error)
	ListJobs(ctx context.Context) ([]*entity.Job, error)
	GetJob(ctx context.Context, id int64) (*entity.Job, error)
	UpdateStatus(ctx context.Context, id int64, status constants.JobStatus) error
	DeleteJob(ctx context.Context, id int64) error
}

type jobRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewJobRepository(store *Store, logger *slog.Logger) JobRepository {
	return &jobRepository{
		store:  store,
		logger: logger,
	}
}

// CreateJob inserts a new job and returns it with the assigned id. The id
// comes from the AUTOINCREMENT column and is never reused.
func (r *jobRepository) CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	var deadline sql.NullString
	if job.Deadline != nil {
		deadline = sql.NullString{String: job.Deadline.Format(dateFormat), Valid: true}
	}

	res, err := r.store.db.ExecContext(ctx, `
		INSERT INTO jobs (title, company, link, status, deadline, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Title,
		job.Company,
		job.Link,
		string(job.Status),
		deadline,
		job.Notes,
		now.Format(timeFormat),
		now.Format(timeFormat),
	)
	if err != nil {
		r.logger.Error("failed to insert job", "title", job.Title, "error", err)
		return nil, common.WrapError(err, "insert job")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, common.WrapError(err, "last insert id")
	}
	job.ID = id
	return job, nil
}

// ListJobs returns every job in primary-key order.
func (r *jobRepository) ListJobs(ctx context.Context) ([]*entity.Job, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, title, company, link, status, deadline, notes, created_at, updated_at
		FROM jobs`)
	if err != nil {
		r.logger.Error("failed to list jobs", "error", err)
		return nil, common.WrapError(err, "list jobs")
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "scan jobs")
	}
	return result, nil
}

func (r *jobRepository) GetJob(ctx context.Context, id int64) (*entity.Job, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, title, company, link, status, deadline, notes, created_at, updated_at
		FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, common.NotFoundErrorf("job %d", id)
	}
	if err != nil {
		r.logger.Error("failed to get job", "id", id, "error", err)
		return nil, common.WrapError(err, "get job")
	}
	return job, nil
}

// UpdateStatus sets the status of one job inside a single transaction,
// touching nothing but status and updated_at.
func (r *jobRepository) UpdateStatus(ctx context.Context, id int64, status constants.JobStatus) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin tx")
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existingID int64
	row := tx.QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = ?`, id)
	if err := row.Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			return common.NotFoundErrorf("job %d", id)
		}
		return common.WrapError(err, "lookup job")
	}

	_, err = tx.ExecContext(ctx, `UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		r.logger.Error("failed to update job status", "id", id, "status", status, "error", err)
		return common.WrapError(err, "update job status")
	}

	committed = true
	return tx.Commit()
}

// DeleteJob removes one job inside a single transaction. The id is not
// reassigned afterwards.
func (r *jobRepository) DeleteJob(ctx context.Context, id int64) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin tx")
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existingID int64
	row := tx.QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = ?`, id)
	if err := row.Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			return common.NotFoundErrorf("job %d", id)
		}
		return common.WrapError(err, "lookup job")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete job", "id", id, "error", err)
		return common.WrapError(err, "delete job")
	}

	committed = true
	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*entity.Job, error) {
	var (
		job       entity.Job
		status    string
		deadline  sql.NullString
		createdAt string
		updatedAt string
	)
	err := s.Scan(&job.ID, &job.Title, &job.Company, &job.Link, &status, &deadline, &job.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	job.Status = constants.JobStatus(status)
	if deadline.Valid && deadline.String != "" {
		d, err := time.ParseInLocation(dateFormat, deadline.String, time.UTC)
		if err != nil {
			return nil, common.WrapError(err, "parse deadline")
		}
		job.Deadline = &d
	}
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		job.CreatedAt = t
	}
	if t, err := time.Parse(timeFormat, updatedAt); err == nil {
		job.UpdatedAt = t
	}
	return &job, nil
}
