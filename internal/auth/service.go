package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/config"
	"github.com/mrlokans/radreads/internal/database/shelves"
	"github.com/mrlokans/radreads/internal/database/users"
	"github.com/mrlokans/radreads/internal/entities"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_ .-]{1,100}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUsernameInvalid = errors.New("username must be 1-100 characters: letters, digits, space, dot, underscore or hyphen")
	ErrEmailInvalid    = errors.New("invalid email format")
)

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Username string `json:"username" form:"username" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email,max=254"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Service handles registration, credential checks and token issuance.
type Service struct {
	db      *gorm.DB
	users   *users.Repository
	shelves *shelves.Repository
	tokens  *TokenManager
	config  config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, tokens *TokenManager, cfg config.Auth) *Service {
	return &Service{
		db:      db,
		users:   users.NewRepository(db),
		shelves: shelves.NewRepository(db),
		tokens:  tokens,
		config:  cfg,
	}
}

// Register creates a user and provisions their default shelves in one
// transaction.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	email := users.NormalizeEmail(in.Email)

	if !usernamePattern.MatchString(username) {
		return nil, apperrors.InvalidArgument("%s", ErrUsernameInvalid)
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, apperrors.InvalidArgument("%s", ErrEmailInvalid)
	}

	passwordHash, err := HashPassword(in.Password, s.config.BcryptCost)
	if errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrPasswordTooLong) {
		return nil, apperrors.InvalidArgument("%s", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *entities.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.users.WithTx(tx).CreateUser(username, email, passwordHash)
		if err != nil {
			return err
		}
		_, err = s.shelves.WithTx(tx).ProvisionDefaultShelves(user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Registered user %d", user.ID)
	return user, nil
}

// Authenticate checks an email and password. Unknown emails and wrong
// passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	repo := s.users.WithTx(s.db.WithContext(ctx))

	user, err := repo.GetUserByEmail(email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	now := time.Now()
	if err := repo.UpdateLastLogin(user.ID, now); err != nil {
		log.Printf("Failed to record login for user %d: %v", user.ID, err)
	} else {
		user.LastLoginAt = &now
	}

	return user, nil
}

// IssueToken signs an access token for the user.
func (s *Service) IssueToken(user *entities.User) (string, time.Time, error) {
	return s.tokens.Issue(user.ID)
}

// ValidateToken checks an access token and returns the user it was issued
// for. Tokens of deleted users are rejected.
func (s *Service) ValidateToken(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	return user, err
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return s.users.WithTx(s.db.WithContext(ctx)).GetUserByID(id)
}
