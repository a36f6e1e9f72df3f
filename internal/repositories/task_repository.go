package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"workx.com/workx/internal/constants"
	apperrors "workx.com/workx/internal/errors"
	model "workx.com/workx/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateWithAttachments persists a new task and its source files as
// one transaction.
func (r *TaskRepository) CreateWithAttachments(ctx context.Context, task *model.Task, atts []model.Attachment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		for i := range atts {
			atts[i].TaskID = task.TaskID
			if err := tx.Create(&atts[i]).Error; err != nil {
				return err
			}
		}
		task.Attachments = atts
		return nil
	})
}

// UpsertByTaskID writes the task row keyed by its public task_id.
func (r *TaskRepository) UpsertByTaskID(ctx context.Context, task *model.Task) error {
	var existing model.Task
	err := r.db.WithContext(ctx).First(&existing, "task_id = ?", task.TaskID).Error
	switch {
	case err == nil:
		task.ID = existing.ID
		return r.db.WithContext(ctx).Save(task).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(task).Error
	default:
		return err
	}
}

func (r *TaskRepository) FindByTaskID(ctx context.Context, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "task_id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if err := r.hydrateAttachments(ctx, []*model.Task{&task}); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindByWriter(ctx context.Context, writerID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("writer_id = ?", writerID).
		Order("created_at desc").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, r.hydrateSlice(ctx, tasks)
}

func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, r.hydrateSlice(ctx, tasks)
}

func (r *TaskRepository) FindUnclaimedPending(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("writer_id IS NULL AND status = ?", constants.StatusPending).
		Order("created_at desc").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, r.hydrateSlice(ctx, tasks)
}

func (r *TaskRepository) ListAllSortedByCreationDescending(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, r.hydrateSlice(ctx, tasks)
}

// Claim assigns the task to a writer with a single conditional update
// so two concurrent claims cannot both win. When no row matches, the
// current state decides which conflict the caller sees.
func (r *TaskRepository) Claim(ctx context.Context, taskID, writerID, writerUsername string, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("task_id = ? AND status = ? AND writer_id IS NULL", taskID, constants.StatusPending).
		Updates(map[string]interface{}{
			"writer_id":       writerID,
			"writer_username": writerUsername,
			"status":          constants.StatusInProgress,
			"claimed_at":      now,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "task_id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}

	switch {
	case task.WriterID != nil && *task.WriterID == writerID:
		return apperrors.ErrAlreadyClaimedBySelf
	case task.WriterID != nil:
		return apperrors.ErrAlreadyClaimedByOther
	default:
		return apperrors.ErrTaskNotClaimable
	}
}

// CompleteWithPurge marks the task completed and clears the source
// payloads in one transaction. The guard re-checks assignment and
// status inside the update so the transition never half-applies.
func (r *TaskRepository) CompleteWithPurge(ctx context.Context, taskID, writerID string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("task_id = ? AND writer_id = ? AND status NOT IN ?", taskID, writerID, constants.TerminalStatuses()).
			Updates(map[string]interface{}{
				"status":       constants.StatusCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var task model.Task
			err := tx.First(&task, "task_id = ?", taskID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrTaskNotFound
				}
				return err
			}
			if task.WriterID == nil || *task.WriterID != writerID {
				return apperrors.ErrNotAssigned
			}
			if task.Status.Terminal() {
				return apperrors.ErrAlreadyComplete
			}
			return apperrors.ErrNotAssigned
		}

		return tx.Model(&model.Attachment{}).
			Where("task_id = ? AND kind = ?", taskID, model.KindSource).
			Updates(map[string]interface{}{
				"payload": nil,
				"purged":  true,
			}).Error
	})
}

// SourceAttachment returns the owner-uploaded file at the given
// position, payload included when it has not been purged.
func (r *TaskRepository) SourceAttachment(ctx context.Context, taskID string, index int) (*model.Attachment, error) {
	var att model.Attachment
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND kind = ? AND position = ?", taskID, model.KindSource, index).
		First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, err
	}
	return &att, nil
}

func (r *TaskRepository) ResultAttachment(ctx context.Context, taskID string) (*model.Attachment, error) {
	var att model.Attachment
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND kind = ?", taskID, model.KindResult).
		First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, err
	}
	return &att, nil
}

// SaveResult stores or replaces the admin-uploaded result file.
func (r *TaskRepository) SaveResult(ctx context.Context, taskID string, att model.Attachment) error {
	att.TaskID = taskID
	att.Kind = model.KindResult
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? AND kind = ?", taskID, model.KindResult).
			Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Create(&att).Error
	})
}

func (r *TaskRepository) hydrateSlice(ctx context.Context, tasks []model.Task) error {
	ptrs := make([]*model.Task, len(tasks))
	for i := range tasks {
		ptrs[i] = &tasks[i]
	}
	return r.hydrateAttachments(ctx, ptrs)
}

func (r *TaskRepository) hydrateAttachments(ctx context.Context, tasks []*model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, len(tasks))
	byID := make(map[string]*model.Task, len(tasks))
	for i, t := range tasks {
		ids[i] = t.TaskID
		byID[t.TaskID] = t
		t.Attachments = []model.Attachment{}
	}

	var atts []model.Attachment
	err := r.db.WithContext(ctx).
		Where("task_id IN ? AND kind = ?", ids, model.KindSource).
		Order("task_id, position").Find(&atts).Error
	if err != nil {
		return err
	}

	for _, att := range atts {
		if t, ok := byID[att.TaskID]; ok {
			t.Attachments = append(t.Attachments, att)
		}
	}
	return nil
}
