package service

import (
	"context"
	"strings"

	"github.com/tutorbook-app/backend/internal/apperr"
	"github.com/tutorbook-app/backend/internal/auth"
	"github.com/tutorbook-app/backend/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo  UserStore
	jwtSecret string
	logger    *zap.Logger
}

func NewUserService(userRepo UserStore, jwtSecret string, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// NewUserRequest covers self-registration and admin-side student creation.
type NewUserRequest struct {
	Username     string
	Password     string
	Name         string
	Email        *string
	Phone        *string
	Address      *string
	AdminNotes   *string
	DefaultPrice *int
}

// Register creates a student account and returns it with a session token.
func (s *UserService) Register(ctx context.Context, req NewUserRequest) (*model.User, string, error) {
	user, err := s.create(ctx, req, model.RoleStudent)
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CreateStudent is the admin-side variant of Register, without a token.
func (s *UserService) CreateStudent(ctx context.Context, req NewUserRequest) (*model.User, error) {
	return s.create(ctx, req, model.RoleStudent)
}

func (s *UserService) create(ctx context.Context, req NewUserRequest, role model.Role) (*model.User, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if len(req.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("username %q is taken", username)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		AdminNotes:   req.AdminNotes,
		DefaultPrice: req.DefaultPrice,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(strings.ToLower(username)))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperr.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// EnsureAdmin creates the tutor account on first start if it is missing.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, err = s.create(ctx, NewUserRequest{
		Username: username,
		Password: password,
		Name:     "Tutor",
	}, model.RoleAdmin)
	if err != nil {
		return err
	}

	s.logger.Info("Admin account created", zap.String("username", username))
	return nil
}

// GetByID returns a user or a not-found error.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d", id)
	}
	return user, nil
}

// GetAll returns every account.
func (s *UserService) GetAll(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.GetAll(ctx)
}

// UserUpdate is a typed partial profile update; nil fields stay untouched.
type UserUpdate struct {
	Username     *string
	Password     *string
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	AdminNotes   *string
	DefaultPrice *int
}

// Update applies a partial profile update.
func (s *UserService) Update(ctx context.Context, id int64, upd UserUpdate) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		username := strings.TrimSpace(strings.ToLower(*upd.Username))
		if username == "" {
			return nil, apperr.Validation("username is required")
		}
		if username != user.Username {
			existing, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperr.Conflict("username %q is taken", username)
			}
			user.Username = username
		}
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return nil, apperr.Validation("password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = upd.Email
	}
	if upd.Phone != nil {
		user.Phone = upd.Phone
	}
	if upd.Address != nil {
		user.Address = upd.Address
	}
	if upd.AdminNotes != nil {
		user.AdminNotes = upd.AdminNotes
	}
	if upd.DefaultPrice != nil {
		user.DefaultPrice = upd.DefaultPrice
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a student and cascades to their slots.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return apperr.Forbidden("the admin account cannot be deleted")
	}

	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.Int64("user_id", id),
		zap.String("username", user.Username),
	)

	return nil
}
