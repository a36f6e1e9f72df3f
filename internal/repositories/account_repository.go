package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	model "workx.com/workx/internal/models"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// UsernameExists checks the user and writer namespaces jointly; a name
// taken in either blocks signup in both.
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Writer{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Writer{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *AccountRepository) CreateWriter(ctx context.Context, writer *model.Writer) error {
	return r.db.WithContext(ctx).Create(writer).Error
}

func (r *AccountRepository) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// The FindXByUsername lookups return (nil, nil) when no account
// exists so callers can fold "unknown user" into "bad credentials".

func (r *AccountRepository) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountRepository) FindWriterByUsername(ctx context.Context, username string) (*model.Writer, error) {
	var writer model.Writer
	err := r.db.WithContext(ctx).First(&writer, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &writer, nil
}

func (r *AccountRepository) FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AccountRepository) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountRepository) FindWriterByID(ctx context.Context, id string) (*model.Writer, error) {
	var writer model.Writer
	err := r.db.WithContext(ctx).First(&writer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &writer, nil
}

// RecordPayout bumps the writer's cumulative counters when the admin
// records a payout.
func (r *AccountRepository) RecordPayout(ctx context.Context, writerID string, amount float64) error {
	return r.db.WithContext(ctx).Model(&model.Writer{}).
		Where("id = ?", writerID).
		Updates(map[string]interface{}{
			"completed_tasks": gorm.Expr("completed_tasks + 1"),
			"earnings":        gorm.Expr("earnings + ?", amount),
		}).Error
}
