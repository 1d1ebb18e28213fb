package users

import (
	"context"
	"strings"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/PabloPavan/varejao_api/internal/queue"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/google/uuid"
)

const (
	msgEmailTaken         = "Email já cadastrado!"
	msgInvalidCredentials = "E-mail ou senha incorretos"
	msgPasswordTooLong    = "Senha muito longa"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}

// Notifier schedules the welcome email. Failures never fail a registration.
type Notifier interface {
	UserRegistered(ctx context.Context, u User) (queue.Receipt, error)
}

type Service struct {
	Store           Store
	Notifier        Notifier
	PasswordHasher  func(plain string) (string, error)
	PasswordChecker func(hash, plain string) bool
	IDGenerator     func() string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}

	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "Nome, e-mail e senha são obrigatórios")
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, apperrors.New(apperrors.KindInvalidInput, msgPasswordTooLong)
	}

	hasher := s.PasswordHasher
	if hasher == nil {
		hasher = HashPassword
	}
	hash, err := hasher(in.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to process password", err)
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	u := &User{
		ID:           idGen(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Create(ctx, u); err != nil {
		if IsEmailTaken(err) {
			return nil, apperrors.New(apperrors.KindConflict, msgEmailTaken)
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	if s.Notifier != nil {
		if _, err := s.Notifier.UserRegistered(ctx, *u); err != nil {
			telemetry.LogWarn(ctx, "welcome notification not queued",
				telemetry.LogString("user.id", u.ID),
				telemetry.LogErr(err),
			)
		}
	}

	return u, nil
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}

	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "E-mail e senha são obrigatórios")
	}

	u, err := s.Store.GetByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindUnauthorized, msgInvalidCredentials)
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	checker := s.PasswordChecker
	if checker == nil {
		checker = CheckPassword
	}
	if !checker(u.PasswordHash, in.Password) {
		return nil, apperrors.New(apperrors.KindUnauthorized, msgInvalidCredentials)
	}

	return &u, nil
}

// DisplayName returns the registered name for email, or DefaultDisplayName
// when there is none or the lookup fails.
func (s *Service) DisplayName(ctx context.Context, email string) string {
	if s.Store == nil {
		return DefaultDisplayName
	}
	u, err := s.Store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !IsNotFound(err) {
			telemetry.LogWarn(ctx, "display name lookup failed", telemetry.LogErr(err))
		}
		return DefaultDisplayName
	}
	if strings.TrimSpace(u.Name) == "" {
		return DefaultDisplayName
	}
	return u.Name
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
