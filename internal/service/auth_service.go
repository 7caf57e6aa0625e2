package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bci-auth/internal/domain"
	"bci-auth/internal/repository"
	"bci-auth/internal/validation"
)

// AuthService coordina registro y autenticación de usuarios: validación de
// credenciales, hashing, directorio y emisión de tokens.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	hasher *PasswordHasher
	tokens *TokenService
}

var (
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidPassword   = errors.New("invalid password format")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrUserNotFound      = errors.New("user not found")
)

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUpInput agrupa los datos de registro. Name y Phones son opcionales.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phones   []domain.Phone
}

// SignUp registra un usuario nuevo y emite su primer token.
// Valida email y password, rechaza emails duplicados, hashea el password y
// persiste el usuario con created = lastLogin = ahora.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (domain.User, string, error) {
	if !validation.IsValidEmail(input.Email) {
		return domain.User{}, "", ErrInvalidEmail
	}
	if !validation.IsValidPassword(input.Password) {
		return domain.User{}, "", ErrInvalidPassword
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return domain.User{}, "", err
	}
	if exists {
		return domain.User{}, "", fmt.Errorf("%w: %s", ErrUserAlreadyExists, input.Email)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Phones:       input.Phones,
		Created:      now,
		LastLogin:    &now,
		Active:       true,
	}

	if err := s.users.Save(ctx, user); err != nil {
		// Dos registros concurrentes pueden pasar el chequeo de existencia;
		// la restricción de unicidad del directorio es el backstop.
		if errors.Is(err, repository.ErrEmailTaken) {
			return domain.User{}, "", fmt.Errorf("%w: %s", ErrUserAlreadyExists, input.Email)
		}
		return domain.User{}, "", err
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return domain.User{}, "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, token, nil
}

// Login autentica con un token vigente y refresca la sesión: actualiza
// lastLogin y devuelve el usuario junto con un token nuevo.
func (s *AuthService) Login(ctx context.Context, token string) (domain.User, string, error) {
	email, ok := s.tokens.VerifyAndExtract(token)
	if !ok {
		s.logger.Warn("token verification failed on login")
		return domain.User{}, "", ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("%w for email: %s", ErrUserNotFound, email)
		}
		return domain.User{}, "", err
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.users.Save(ctx, user); err != nil {
		return domain.User{}, "", err
	}

	newToken, err := s.tokens.Generate(user.Email)
	if err != nil {
		return domain.User{}, "", err
	}

	s.logger.Info("user login", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, newToken, nil
}
