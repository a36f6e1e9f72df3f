package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"workx.com/workx/internal/constants"
	dto "workx.com/workx/internal/data_models"
	apperrors "workx.com/workx/internal/errors"
	model "workx.com/workx/internal/models"
	repository "workx.com/workx/internal/repositories"
	"workx.com/workx/internal/sessions"
)

// AccountService handles signup, credential checks and session
// issue/teardown for the three principal classes.
type AccountService struct {
	accounts *repository.AccountRepository
	sessions sessions.Store
}

func NewAccountService(accounts *repository.AccountRepository, store sessions.Store) *AccountService {
	return &AccountService{
		accounts: accounts,
		sessions: store,
	}
}

// Signup registers a user or writer. Usernames and emails are unique
// across both namespaces jointly.
func (s *AccountService) Signup(ctx context.Context, in dto.SignupRequest) error {
	if in.UserType == "" || in.Username == "" || in.Email == "" || in.Password == "" || in.Phone == "" {
		return apperrors.Validation("all fields including phone number are required")
	}
	if in.UserType != string(constants.RoleUser) && in.UserType != string(constants.RoleWriter) {
		return apperrors.Validation("user type must be user or writer")
	}

	taken, err := s.accounts.UsernameExists(ctx, in.Username)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrUsernameTaken
	}

	taken, err = s.accounts.EmailExists(ctx, in.Email)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if in.UserType == string(constants.RoleWriter) {
		return s.accounts.CreateWriter(ctx, &model.Writer{
			ID:        uuid.NewString(),
			Username:  in.Username,
			Email:     in.Email,
			Password:  string(hash),
			Phone:     in.Phone,
			CreatedAt: now,
		})
	}
	return s.accounts.CreateUser(ctx, &model.User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		Phone:     in.Phone,
		CreatedAt: now,
	})
}

// Login verifies credentials in the requested namespace and opens a
// session. Unknown accounts and wrong passwords are indistinguishable
// to the caller.
func (s *AccountService) Login(ctx context.Context, in dto.LoginRequest) (string, *sessions.Principal, error) {
	if in.Username == "" || in.Password == "" || in.UserType == "" {
		return "", nil, apperrors.Validation("all fields required")
	}

	var p sessions.Principal
	switch in.UserType {
	case string(constants.RoleAdmin):
		admin, err := s.accounts.FindAdminByUsername(ctx, in.Username)
		if err != nil {
			return "", nil, err
		}
		if admin == nil || !passwordMatches(admin.Password, in.Password) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		p = sessions.Principal{ID: admin.ID, Username: admin.Username, Email: admin.Email, Role: constants.RoleAdmin}

	case string(constants.RoleWriter):
		writer, err := s.accounts.FindWriterByUsername(ctx, in.Username)
		if err != nil {
			return "", nil, err
		}
		if writer == nil || !passwordMatches(writer.Password, in.Password) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		p = sessions.Principal{ID: writer.ID, Username: writer.Username, Email: writer.Email, Role: constants.RoleWriter}

	case string(constants.RoleUser):
		user, err := s.accounts.FindUserByUsername(ctx, in.Username)
		if err != nil {
			return "", nil, err
		}
		if user == nil || !passwordMatches(user.Password, in.Password) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		p = sessions.Principal{ID: user.ID, Username: user.Username, Email: user.Email, Role: constants.RoleUser}

	default:
		return "", nil, apperrors.Validation("user type must be user, writer or admin")
	}

	token, err := s.sessions.Create(ctx, p)
	if err != nil {
		return "", nil, err
	}
	return token, &p, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
