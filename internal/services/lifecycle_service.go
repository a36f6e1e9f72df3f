package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"workx.com/workx/internal/attachments"
	"workx.com/workx/internal/constants"
	dto "workx.com/workx/internal/data_models"
	apperrors "workx.com/workx/internal/errors"
	model "workx.com/workx/internal/models"
	"workx.com/workx/internal/pricing"
	repository "workx.com/workx/internal/repositories"
	"workx.com/workx/internal/sessions"
)

const (
	anonymousWriterID   = "ANONYMOUS"
	anonymousWriterName = "Anonymous Writer"
)

// LifecycleService owns the guarded task transitions. Every operation
// takes the acting principal explicitly; nothing here reads session
// state.
type LifecycleService struct {
	tasks    *repository.TaskRepository
	accounts *repository.AccountRepository
	store    *attachments.Store
	clock    func() time.Time
}

func NewLifecycleService(
	tasks *repository.TaskRepository,
	accounts *repository.AccountRepository,
	store *attachments.Store,
) *LifecycleService {
	return &LifecycleService{
		tasks:    tasks,
		accounts: accounts,
		store:    store,
		clock:    time.Now,
	}
}

type CreateTaskInput struct {
	WorkType       string
	DeadlineDate   string
	DeadlineTime   string
	Notes          string
	MaterialOption constants.MaterialOption
	Uploads        []attachments.Upload
}

// Create runs the Pending entry transition: validate, ingest files,
// derive the financial fields, persist.
func (s *LifecycleService) Create(ctx context.Context, p sessions.Principal, in CreateTaskInput) (*model.Task, error) {
	if p.Role != constants.RoleUser {
		return nil, apperrors.ErrWrongRole
	}
	if in.WorkType == "" || in.DeadlineDate == "" || in.DeadlineTime == "" {
		return nil, apperrors.Validation("work type, deadline date and time required")
	}
	if !pricing.ValidWorkType(in.WorkType) {
		return nil, apperrors.Validation("unknown work type")
	}
	if in.MaterialOption == "" {
		in.MaterialOption = constants.MaterialProvide
	}
	if !in.MaterialOption.Valid() {
		return nil, apperrors.Validation("material option must be provide or buy")
	}

	atts, err := s.store.Ingest(in.Uploads)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	isSameDay, surcharge := pricing.SameDay(in.DeadlineDate, now)

	task := &model.Task{
		TaskID:           newTaskID(),
		WorkType:         in.WorkType,
		Status:           constants.StatusPending,
		Deadline:         fmt.Sprintf("%s %s", in.DeadlineDate, in.DeadlineTime),
		Notes:            in.Notes,
		MaterialOption:   in.MaterialOption,
		MaterialCost:     pricing.MaterialCost(in.WorkType, in.MaterialOption),
		IsSameDay:        isSameDay,
		SameDaySurcharge: surcharge,
		UserID:           p.ID,
		UserContact:      p.Email,
		CreatedAt:        now.UTC(),
	}

	if err := s.tasks.CreateWithAttachments(ctx, task, atts); err != nil {
		return nil, err
	}
	return task, nil
}

// Claim moves an unclaimed Pending task to In Progress. First claim
// wins; the repository decides atomically.
func (s *LifecycleService) Claim(ctx context.Context, p sessions.Principal, taskID string) error {
	if p.Role != constants.RoleWriter {
		return apperrors.ErrWrongRole
	}
	if taskID == "" {
		return apperrors.ErrTaskIDRequired
	}
	return s.tasks.Claim(ctx, taskID, p.ID, p.Username, s.clock().UTC())
}

// MarkComplete finishes the writer-side workflow: status Completed,
// completed_at stamped, source payloads purged.
func (s *LifecycleService) MarkComplete(ctx context.Context, p sessions.Principal, taskID string) error {
	if p.Role != constants.RoleWriter {
		return apperrors.ErrWrongRole
	}
	if taskID == "" {
		return apperrors.ErrTaskIDRequired
	}
	return s.tasks.CompleteWithPurge(ctx, taskID, p.ID, s.clock().UTC())
}

// AdminUpdateInput carries the admin-settable subset. Nil means leave
// the field alone.
type AdminUpdateInput struct {
	Status          *constants.TaskStatus
	WriterID        *string
	Pages           *int
	BasePrice       *float64
	PlatformFee     *float64
	FinalPrice      *float64
	WorkerPayout    *float64
	PaymentReceived *bool
	WriterPaid      *bool
	Result          *attachments.Upload
}

// AdminUpdate is the administrative override: it writes any subset of
// the admin-controlled fields without the workflow guards. Uploading a
// result forces status to Completed.
func (s *LifecycleService) AdminUpdate(ctx context.Context, p sessions.Principal, taskID string, in AdminUpdateInput) (*model.Task, error) {
	if p.Role != constants.RoleAdmin {
		return nil, apperrors.ErrWrongRole
	}
	if taskID == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.tasks.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	writerPaidBefore := task.WriterPaid

	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.WriterID != nil && *in.WriterID != "" {
		task.WriterID = in.WriterID
	}
	if in.Pages != nil {
		task.Pages = in.Pages
	}
	if in.BasePrice != nil {
		task.BasePrice = in.BasePrice
	}
	if in.PlatformFee != nil {
		task.PlatformFee = in.PlatformFee
	}
	if in.FinalPrice != nil {
		task.FinalPrice = in.FinalPrice
	}
	if in.WorkerPayout != nil {
		task.WorkerPayout = in.WorkerPayout
	}
	if in.PaymentReceived != nil {
		task.PaymentReceived = *in.PaymentReceived
	}
	if in.WriterPaid != nil {
		task.WriterPaid = *in.WriterPaid
	}

	if in.Result != nil {
		if !s.store.Allowed(in.Result.Filename) {
			return nil, apperrors.Validation("result file type is not allowed")
		}
		name := fmt.Sprintf("%s_%s", taskID, attachments.SanitizeFilename(in.Result.Filename))
		att := model.Attachment{
			Filename:    name,
			ContentType: in.Result.ContentType,
			Size:        int64(len(in.Result.Data)),
			Payload:     in.Result.Data,
		}
		if err := s.tasks.SaveResult(ctx, taskID, att); err != nil {
			return nil, err
		}
		task.AdminResult = &name
		task.Status = constants.StatusCompleted
	}

	if err := s.tasks.UpsertByTaskID(ctx, task); err != nil {
		return nil, err
	}

	if in.WriterPaid != nil && *in.WriterPaid && !writerPaidBefore && task.WriterID != nil {
		payout := 0.0
		if task.WorkerPayout != nil {
			payout = *task.WorkerPayout
		}
		if err := s.accounts.RecordPayout(ctx, *task.WriterID, payout); err != nil {
			return nil, err
		}
	}

	return s.tasks.FindByTaskID(ctx, taskID)
}

// ListAllForAdmin joins each task with owner and writer summaries.
// Lookups are best effort; a missing account just leaves the summary
// empty.
func (s *LifecycleService) ListAllForAdmin(ctx context.Context, p sessions.Principal) ([]dto.AdminTaskView, error) {
	if p.Role != constants.RoleAdmin {
		return nil, apperrors.ErrWrongRole
	}

	tasks, err := s.tasks.ListAllSortedByCreationDescending(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.AdminTaskView, 0, len(tasks))
	for _, task := range tasks {
		view := dto.AdminTaskView{Task: task}

		if user, err := s.accounts.FindUserByID(ctx, task.UserID); err == nil && user != nil {
			view.UserDetails = &dto.ProfileSummary{
				Username: user.Username,
				Email:    user.Email,
				Phone:    user.Phone,
			}
		}
		if task.WriterID != nil {
			if writer, err := s.accounts.FindWriterByID(ctx, *task.WriterID); err == nil && writer != nil {
				view.WriterDetails = &dto.WriterSummary{
					Username:       writer.Username,
					Email:          writer.Email,
					Phone:          writer.Phone,
					CompletedTasks: writer.CompletedTasks,
					Earnings:       writer.Earnings,
				}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ListOrdersForOwner redacts any assigned writer's identity. The
// redaction happens on copies; persisted writer fields are untouched.
func (s *LifecycleService) ListOrdersForOwner(ctx context.Context, p sessions.Principal) ([]model.Task, error) {
	if p.Role != constants.RoleUser {
		return nil, apperrors.ErrWrongRole
	}

	tasks, err := s.tasks.FindByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].WriterID != nil {
			anonID := anonymousWriterID
			anonName := anonymousWriterName
			tasks[i].WriterID = &anonID
			tasks[i].WriterUsername = &anonName
		}
	}
	return tasks, nil
}

func (s *LifecycleService) ListAvailable(ctx context.Context, p sessions.Principal) ([]model.Task, error) {
	if p.Role != constants.RoleWriter {
		return nil, apperrors.ErrWrongRole
	}
	return s.tasks.FindUnclaimedPending(ctx)
}

func (s *LifecycleService) ListMine(ctx context.Context, p sessions.Principal) ([]model.Task, error) {
	if p.Role != constants.RoleWriter {
		return nil, apperrors.ErrWrongRole
	}
	return s.tasks.FindByWriter(ctx, p.ID)
}

// PublicView is the unauthenticated task projection.
func (s *LifecycleService) PublicView(ctx context.Context, taskID string) (*dto.TaskSummary, error) {
	task, err := s.tasks.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &dto.TaskSummary{
		TaskID:     task.TaskID,
		WorkType:   task.WorkType,
		Pages:      task.Pages,
		FinalPrice: task.FinalPrice,
		Status:     string(task.Status),
		Deadline:   task.Deadline,
		HasResult:  task.AdminResult != nil,
		ResultFile: task.AdminResult,
	}, nil
}

// DownloadSource serves an owner-uploaded file. A purged payload is a
// Gone condition, distinct from a file that never existed.
func (s *LifecycleService) DownloadSource(ctx context.Context, taskID string, index int) (*model.Attachment, []byte, error) {
	if _, err := s.tasks.FindByTaskID(ctx, taskID); err != nil {
		return nil, nil, err
	}
	att, err := s.tasks.SourceAttachment(ctx, taskID, index)
	if err != nil {
		return nil, nil, err
	}
	payload, err := attachments.Payload(*att)
	if err != nil {
		return nil, nil, err
	}
	return att, payload, nil
}

func (s *LifecycleService) DownloadResult(ctx context.Context, taskID string) (*model.Attachment, []byte, error) {
	task, err := s.tasks.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if task.AdminResult == nil {
		return nil, nil, apperrors.ErrFileNotFound
	}
	att, err := s.tasks.ResultAttachment(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	payload, err := attachments.Payload(*att)
	if err != nil {
		return nil, nil, err
	}
	return att, payload, nil
}

// newTaskID yields the human-readable public id, e.g. WX3F9A1C.
func newTaskID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "WX" + strings.ToUpper(hex[:6])
}
