package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workx.com/workx/internal/constants"
	apperrors "workx.com/workx/internal/errors"
	model "workx.com/workx/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Task{},
		&model.Attachment{},
		&model.User{},
		&model.Writer{},
		&model.Admin{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func pendingTask(taskID, ownerID string, created time.Time) *model.Task {
	return &model.Task{
		TaskID:         taskID,
		WorkType:       "Blue Book",
		Status:         constants.StatusPending,
		Deadline:       "2024-03-20 18:00",
		MaterialOption: constants.MaterialProvide,
		UserID:         ownerID,
		CreatedAt:      created,
	}
}

func TestCreateWithAttachmentsAndFindByTaskID(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := pendingTask("WXAAAA01", "user-1", time.Now().UTC())
	atts := []model.Attachment{
		{Kind: model.KindSource, Position: 0, Filename: "a.pdf", ContentType: "application/pdf", Payload: []byte("aa"), Size: 2},
		{Kind: model.KindSource, Position: 1, Filename: "b.txt", ContentType: "text/plain", Payload: []byte("bbb"), Size: 3},
	}

	if err := repo.CreateWithAttachments(ctx, task, atts); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByTaskID(ctx, "WXAAAA01")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(found.Attachments) != 2 {
		t.Fatalf("expected 2 hydrated attachments, got %d", len(found.Attachments))
	}
	if found.Attachments[0].Filename != "a.pdf" || found.Attachments[1].Filename != "b.txt" {
		t.Error("attachments out of order")
	}

	if _, err := repo.FindByTaskID(ctx, "WXMISSING"); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected task not found, got %v", err)
	}
}

func TestClaimTransitionsAndStamps(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := pendingTask("WXCLAIM1", "user-1", time.Now().UTC())
	if err := repo.CreateWithAttachments(ctx, task, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now().UTC()
	if err := repo.Claim(ctx, "WXCLAIM1", "writer-1", "alice", now); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	got, _ := repo.FindByTaskID(ctx, "WXCLAIM1")
	if got.Status != constants.StatusInProgress {
		t.Errorf("expected In Progress, got %s", got.Status)
	}
	if got.WriterID == nil || *got.WriterID != "writer-1" {
		t.Error("writer_id not set")
	}
	if got.WriterUsername == nil || *got.WriterUsername != "alice" {
		t.Error("writer_username not set")
	}
	if got.ClaimedAt == nil {
		t.Error("claimed_at not stamped")
	}
}

func TestClaimConflicts(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	if err := repo.CreateWithAttachments(ctx, pendingTask("WXCONFL1", "user-1", now), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Claim(ctx, "WXCONFL1", "writer-1", "alice", now); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	if err := repo.Claim(ctx, "WXCONFL1", "writer-1", "alice", now); !errors.Is(err, apperrors.ErrAlreadyClaimedBySelf) {
		t.Errorf("expected self-claim conflict, got %v", err)
	}
	if err := repo.Claim(ctx, "WXCONFL1", "writer-2", "bob", now); !errors.Is(err, apperrors.ErrAlreadyClaimedByOther) {
		t.Errorf("expected other-claim conflict, got %v", err)
	}
	if err := repo.Claim(ctx, "WXNOPE", "writer-1", "alice", now); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected task not found, got %v", err)
	}
}

func TestClaimRejectsNonPendingStatus(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	task := pendingTask("WXFORCED", "user-1", now)
	task.Status = constants.StatusCompleted
	if err := repo.CreateWithAttachments(ctx, task, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Claim(ctx, "WXFORCED", "writer-1", "alice", now); !errors.Is(err, apperrors.ErrTaskNotClaimable) {
		t.Errorf("expected not-claimable conflict, got %v", err)
	}
}

func TestConcurrentClaimExactlyOneWins(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	if err := repo.CreateWithAttachments(ctx, pendingTask("WXRACE01", "user-1", now), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const writers = 10
	var wg sync.WaitGroup
	wg.Add(writers)
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		go func(idx int) {
			defer wg.Done()
			id := string(rune('a' + idx))
			errs <- repo.Claim(ctx, "WXRACE01", "writer-"+id, "w"+id, now)
		}(i)
	}

	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		if !errors.Is(err, apperrors.ErrAlreadyClaimedByOther) {
			t.Errorf("loser got unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", wins)
	}

	got, _ := repo.FindByTaskID(ctx, "WXRACE01")
	if got.Status != constants.StatusInProgress || got.WriterID == nil {
		t.Error("task not transitioned after the winning claim")
	}
}

func TestCompleteWithPurge(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	task := pendingTask("WXDONE01", "user-1", now)
	atts := []model.Attachment{
		{Kind: model.KindSource, Position: 0, Filename: "a.pdf", ContentType: "application/pdf", Payload: []byte("aa"), Size: 2},
		{Kind: model.KindSource, Position: 1, Filename: "b.txt", ContentType: "text/plain", Payload: []byte("bbb"), Size: 3},
	}
	if err := repo.CreateWithAttachments(ctx, task, atts); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Claim(ctx, "WXDONE01", "writer-1", "alice", now); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if err := repo.CompleteWithPurge(ctx, "WXDONE01", "writer-1", now); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	got, _ := repo.FindByTaskID(ctx, "WXDONE01")
	if got.Status != constants.StatusCompleted || got.CompletedAt == nil {
		t.Error("task not completed")
	}
	if len(got.Attachments) != 2 {
		t.Fatalf("purge must not drop attachment records, got %d", len(got.Attachments))
	}
	for _, att := range got.Attachments {
		if !att.Purged || len(att.Payload) != 0 {
			t.Errorf("%s: payload survived the purge", att.Filename)
		}
		if att.Filename == "" || att.ContentType == "" {
			t.Error("purge must keep filename and content type")
		}
	}
}

func TestCompleteGuards(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	if err := repo.CreateWithAttachments(ctx, pendingTask("WXGUARD1", "user-1", now), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Claim(ctx, "WXGUARD1", "writer-1", "alice", now); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if err := repo.CompleteWithPurge(ctx, "WXGUARD1", "writer-2", now); !errors.Is(err, apperrors.ErrNotAssigned) {
		t.Errorf("expected not-assigned error, got %v", err)
	}
	got, _ := repo.FindByTaskID(ctx, "WXGUARD1")
	if got.Status != constants.StatusInProgress {
		t.Error("failed completion must not change status")
	}

	if err := repo.CompleteWithPurge(ctx, "WXGUARD1", "writer-1", now); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := repo.CompleteWithPurge(ctx, "WXGUARD1", "writer-1", now); !errors.Is(err, apperrors.ErrAlreadyComplete) {
		t.Errorf("expected already-complete error, got %v", err)
	}
	if err := repo.CompleteWithPurge(ctx, "WXNOPE", "writer-1", now); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected task not found, got %v", err)
	}
}

func TestFinders(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"WXLIST01", "WXLIST02", "WXLIST03"} {
		task := pendingTask(id, "user-1", base.Add(time.Duration(i)*time.Second))
		if err := repo.CreateWithAttachments(ctx, task, nil); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if err := repo.Claim(ctx, "WXLIST02", "writer-1", "alice", base); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	unclaimed, err := repo.FindUnclaimedPending(ctx)
	if err != nil {
		t.Fatalf("unclaimed query failed: %v", err)
	}
	if len(unclaimed) != 2 {
		t.Errorf("expected 2 unclaimed pending tasks, got %d", len(unclaimed))
	}

	mine, err := repo.FindByWriter(ctx, "writer-1")
	if err != nil {
		t.Fatalf("writer query failed: %v", err)
	}
	if len(mine) != 1 || mine[0].TaskID != "WXLIST02" {
		t.Error("writer listing wrong")
	}

	owned, err := repo.FindByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("owner query failed: %v", err)
	}
	if len(owned) != 3 {
		t.Errorf("expected 3 owned tasks, got %d", len(owned))
	}

	all, err := repo.ListAllSortedByCreationDescending(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 || all[0].TaskID != "WXLIST03" {
		t.Error("listing not sorted by creation descending")
	}
}

func TestUpsertByTaskID(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := pendingTask("WXUPST01", "user-1", time.Now().UTC())
	if err := repo.UpsertByTaskID(ctx, task); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	pages := 12
	task.Pages = &pages
	task.Status = constants.StatusDelivered
	if err := repo.UpsertByTaskID(ctx, task); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, _ := repo.FindByTaskID(ctx, "WXUPST01")
	if got.Pages == nil || *got.Pages != 12 || got.Status != constants.StatusDelivered {
		t.Error("upsert did not persist the update")
	}

	all, _ := repo.ListAllSortedByCreationDescending(ctx)
	if len(all) != 1 {
		t.Errorf("upsert created a duplicate row: %d", len(all))
	}
}
