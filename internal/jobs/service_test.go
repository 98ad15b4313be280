package jobs

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"jobtrack/constants"
	"jobtrack/internal/common"
	"jobtrack/internal/repository"
)

func testService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.db")
	store, err := repository.Open(context.Background(), repository.Config{Path: path}, slog.Default())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return NewService(repository.NewJobRepository(store, slog.Default()), slog.Default())
}

func TestAddDefaultsToInterested(t *testing.T) {
	svc := testService(t)
	job, err := svc.Add(context.Background(), AddJobRequest{Title: "Backend Engineer", Company: "Acme"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if job.Status != constants.StatusInterested {
		t.Errorf("status = %q, want %q", job.Status, constants.StatusInterested)
	}
}

func TestAddRequiresTitleAndCompany(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddJobRequest{Title: "", Company: "Acme"}); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("missing title: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Add(ctx, AddJobRequest{Title: "Backend Engineer", Company: "  "}); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("blank company: got %v, want ErrInvalidInput", err)
	}
}

func TestAddRejectsUnknownStatus(t *testing.T) {
	svc := testService(t)
	_, err := svc.Add(context.Background(), AddJobRequest{Title: "SRE", Company: "Acme", Status: "ghosted"})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestAddRejectsMalformedDeadline(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, AddJobRequest{Title: "SRE", Company: "Acme", Deadline: "next friday"})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	// Nothing was inserted.
	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d jobs after rejected add, want 0", len(all))
	}
}

func TestAddParsesDeadline(t *testing.T) {
	svc := testService(t)
	job, err := svc.Add(context.Background(), AddJobRequest{Title: "SRE", Company: "Acme", Deadline: "2026-09-30"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if job.DeadlineString() != "2026-09-30" {
		t.Errorf("deadline = %q, want %q", job.DeadlineString(), "2026-09-30")
	}
}

func TestAddDetailRoundTrip(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, AddJobRequest{
		Title:    "Backend Engineer",
		Company:  "Acme",
		Link:     "https://example.com/jobs/1",
		Deadline: "2026-10-15",
		Notes:    "ask about relocation",
		Status:   "applied",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.Detail(ctx, created.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if got.Title != "Backend Engineer" || got.Company != "Acme" ||
		got.Link != "https://example.com/jobs/1" || got.Notes != "ask about relocation" {
		t.Errorf("detail returned different fields: %+v", got)
	}
	if got.Status != constants.StatusApplied {
		t.Errorf("status = %q, want applied", got.Status)
	}
	if got.DeadlineString() != "2026-10-15" {
		t.Errorf("deadline = %q, want 2026-10-15", got.DeadlineString())
	}
}

func TestListStatusFilter(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	seed := []AddJobRequest{
		{Title: "A", Company: "X", Status: "applied"},
		{Title: "B", Company: "Y", Status: "interview"},
		{Title: "C", Company: "Z", Status: "applied"},
	}
	for _, req := range seed {
		if _, err := svc.Add(ctx, req); err != nil {
			t.Fatalf("add %q: %v", req.Title, err)
		}
	}

	applied, err := svc.List(ctx, "applied")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("got %d applied jobs, want 2", len(applied))
	}
	for _, job := range applied {
		if job.Status != constants.StatusApplied {
			t.Errorf("filter leaked job with status %q", job.Status)
		}
	}

	none, err := svc.List(ctx, "offer")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d offer jobs, want 0", len(none))
	}
}

func TestUpdateStatusInvalidLeavesRecordUnchanged(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, AddJobRequest{Title: "SRE", Company: "Acme", Status: "applied"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = svc.UpdateStatus(ctx, created.ID, "hired")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	got, err := svc.Detail(ctx, created.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if got.Status != constants.StatusApplied {
		t.Errorf("status = %q after invalid update, want applied", got.Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := testService(t)
	err := svc.UpdateStatus(context.Background(), 404, "offer")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRemoveThenDetailNotFound(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, AddJobRequest{Title: "SRE", Company: "Acme"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Detail(ctx, created.ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("detail after remove: got %v, want ErrNotFound", err)
	}
	if err := svc.Remove(ctx, created.ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("remove again: got %v, want ErrNotFound", err)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddJobRequest{Title: "Backend Engineer", Company: "Acme"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, AddJobRequest{Title: "Designer", Company: "Globex", Notes: "Figma heavy"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, kw := range []string{"backend", "ACME", "engine"} {
		got, err := svc.Search(ctx, kw)
		if err != nil {
			t.Fatalf("search %q: %v", kw, err)
		}
		if len(got) != 1 || got[0].Title != "Backend Engineer" {
			t.Errorf("search(%q) = %d results, want the backend job", kw, len(got))
		}
	}

	// Notes participate in matching.
	got, err := svc.Search(ctx, "figma")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Designer" {
		t.Errorf("search(\"figma\") = %d results, want the designer job", len(got))
	}

	got, err = svc.Search(ctx, "frontend")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("search(\"frontend\") = %d results, want 0", len(got))
	}
}
