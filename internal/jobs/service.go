package jobs

import (
	"context"
	"log/slog"
	"strings"

	"jobtrack/constants"
	"jobtrack/internal/common"
	"jobtrack/internal/entity"
	"jobtrack/internal/repository"
	"jobtrack/internal/utils"
)

// Service handles job-application business logic.
type Service struct {
	jobRepo repository.JobRepository
	logger  *slog.Logger
}

// NewService creates a new job service.
func NewService(jobRepo repository.JobRepository, logger *slog.Logger) *Service {
	return &Service{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// AddJobRequest represents job creation parameters. Link, Deadline, Notes
// and Status are optional; a blank Status defaults to interested.
type AddJobRequest struct {
	Title    string
	Company  string
	Link     string
	Deadline string
	Notes    string
	Status   string
}

// Add validates the request and inserts a new job.
func (s *Service) Add(ctx context.Context, req AddJobRequest) (*entity.Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, common.InvalidInputErrorf("title is required")
	}
	if strings.TrimSpace(req.Company) == "" {
		return nil, common.InvalidInputErrorf("company is required")
	}

	status := constants.StatusInterested
	if req.Status != "" {
		var err error
		status, err = constants.ParseJobStatus(req.Status)
		if err != nil {
			s.logger.Error("invalid status for add", "status", req.Status, "error", err)
			return nil, common.InvalidInputErrorf("status %q not one of %v", req.Status, constants.AllStatuses)
		}
	}

	job := &entity.Job{
		Title:   req.Title,
		Company: req.Company,
		Link:    req.Link,
		Status:  status,
		Notes:   req.Notes,
	}
	if req.Deadline != "" {
		d, err := utils.ParseYMD(req.Deadline)
		if err != nil {
			s.logger.Error("invalid deadline format", "deadline", req.Deadline, "error", err)
			return nil, common.InvalidInputErrorf("deadline %q invalid (YYYY-MM-DD)", req.Deadline)
		}
		job.Deadline = &d
	}

	created, err := s.jobRepo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	s.logger.Info("job added", "id", created.ID, "title", created.Title, "company", created.Company)
	return created, nil
}

// List returns all jobs, filtered in memory by exact status match when a
// filter is given. An unknown filter value simply matches nothing.
func (s *Service) List(ctx context.Context, statusFilter string) ([]*entity.Job, error) {
	all, err := s.jobRepo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	if statusFilter == "" {
		return all, nil
	}

	var filtered []*entity.Job
	for _, job := range all {
		if string(job.Status) == statusFilter {
			filtered = append(filtered, job)
		}
	}
	return filtered, nil
}

// Detail returns one job by id.
func (s *Service) Detail(ctx context.Context, id int64) (*entity.Job, error) {
	return s.jobRepo.GetJob(ctx, id)
}

// UpdateStatus validates the status against the closed enum before any
// write, so an invalid value leaves the stored record untouched.
func (s *Service) UpdateStatus(ctx context.Context, id int64, rawStatus string) error {
	status, err := constants.ParseJobStatus(rawStatus)
	if err != nil {
		s.logger.Error("invalid status for update", "id", id, "status", rawStatus, "error", err)
		return common.InvalidInputErrorf("status %q not one of %v", rawStatus, constants.AllStatuses)
	}
	if err := s.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("job status updated", "id", id, "status", status)
	return nil
}

// Remove deletes one job by id.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.jobRepo.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.logger.Info("job removed", "id", id)
	return nil
}

// Search returns jobs whose title, company, or notes contain the keyword,
// case-insensitively. Absent fields compare as empty strings.
func (s *Service) Search(ctx context.Context, keyword string) ([]*entity.Job, error) {
	all, err := s.jobRepo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	kw := strings.ToLower(keyword)
	var matches []*entity.Job
	for _, job := range all {
		if strings.Contains(strings.ToLower(job.Title), kw) ||
			strings.Contains(strings.ToLower(job.Company), kw) ||
			strings.Contains(strings.ToLower(job.Notes), kw) {
			matches = append(matches, job)
		}
	}
	return matches, nil
}
