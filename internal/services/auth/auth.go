package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UsersStorage interface {
	Insert(ctx context.Context, email, fullName string, passwordHash []byte, roles []models.Role, verified bool) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	users        UsersStorage
	Mailer       MailProvider
	taskExecutor TaskExecutor
	secret       []byte
	tokenTTL     time.Duration
	// devMode marks fresh accounts as verified right away, skipping the
	// email confirmation loop during local development.
	devMode bool
}

func New(
	log *slog.Logger,
	users UsersStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	tokenTTL time.Duration,
	devMode bool,
) *AuthService {
	return &AuthService{
		log:          log,
		users:        users,
		Mailer:       mailer,
		taskExecutor: taskExecutor,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		devMode:      devMode,
	}
}

func (a *AuthService) sendWelcomeEmail(user *models.User) {
	a.log.Info("sending welcome email", "email", user.Email)
	err := a.Mailer.Send(
		user.Email,
		"user_welcome.html",
		map[string]any{
			"fullName": user.FullName,
			"userID":   user.ID,
		})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}

func (a *AuthService) Signup(ctx context.Context, email, fullName, password string) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "email", email)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	user, err := a.users.Insert(ctx, email, fullName, passwordHash, []models.Role{models.RoleUser}, a.devMode)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user already exists")
			return nil, ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	a.taskExecutor.Add(func() {
		a.sendWelcomeEmail(user)
	})
	log.Info("registered user", "user_id", user.ID)
	return user, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*TokensDTO, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("wrong password")
		return nil, ErrInvalidCredentials
	}
	accessToken, err := a.newToken(user)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	log.Info("logged in", "user_id", user.ID)
	return &TokensDTO{AccessToken: accessToken}, nil
}

func (a *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		a.log.With("op", op, "user_id", id).Error(err.Error())
		return nil, err
	}
	return user, nil
}

type EditUserParams struct {
	Roles    []models.Role
	Verified *bool
}

func (a *AuthService) EditUser(ctx context.Context, id uuid.UUID, params EditUserParams) (*models.User, error) {
	const op = "auth.AuthService.EditUser"
	log := a.log.With("op", op, "user_id", id)
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if params.Roles != nil {
		user.Roles = params.Roles
	}
	if params.Verified != nil {
		user.Verified = *params.Verified
	}
	updated, err := a.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("edited user")
	return updated, nil
}

// DeleteUser removes an account. Admins may delete anyone, other users
// only themselves.
func (a *AuthService) DeleteUser(ctx context.Context, actor *models.User, id uuid.UUID) error {
	const op = "auth.AuthService.DeleteUser"
	log := a.log.With("op", op, "user_id", id, "actor_id", actor.ID)
	if actor.ID != id && !actor.IsAdmin() {
		log.Warn("attempt to delete another user's account")
		return ErrForbidden
	}
	if err := a.users.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("deleted user")
	return nil
}
