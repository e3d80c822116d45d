package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/soulstitch/storefront/internal/cache"
)

const minPasswordLength = 6

type Service struct {
	repo    Repository
	tokens  *Tokens
	revoked cache.Cache
	logger  *log.Logger
	now     func() time.Time
}

func NewService(repo Repository, tokens *Tokens, revoked cache.Cache, logger *log.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, revoked: revoked, logger: logger, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func revokedKey(jti string) string { return "revoked:" + jti }

// SignUp creates the account and signs the new user in.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.DisplayName)
	if email == "" || in.Password == "" || name == "" {
		return Session{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return Session{}, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return Session{}, err
	}
	s.logger.Printf("user signed up: %s", u.ID)
	return s.session(u)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(u)
}

// SignOut revokes the token until it would have expired anyway.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, revokedKey(claims.ID), true, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Identity{}, err
	}
	var revoked bool
	found, err := s.revoked.Get(ctx, revokedKey(claims.ID), &revoked)
	if err != nil {
		return Identity{}, fmt.Errorf("check session: %w", err)
	}
	if found && revoked {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *Service) User(ctx context.Context, userID string) (User, error) {
	if err := RequireUser(userID); err != nil {
		return User{}, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (Profile, error) {
	if err := RequireUser(userID); err != nil {
		return Profile{}, err
	}

	fields := map[string]any{}
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return Profile{}, fmt.Errorf("%w: display name must not be empty", ErrValidation)
		}
		fields["displayName"] = name
	}
	if in.PhotoURL != nil {
		fields["photoURL"] = strings.TrimSpace(*in.PhotoURL)
	}

	if len(fields) > 0 {
		if _, err := s.repo.GetByID(ctx, userID); err != nil {
			return Profile{}, err
		}
		if err := s.repo.Update(ctx, userID, fields); err != nil {
			return Profile{}, err
		}
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}

func (s *Service) session(u User) (Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: u.Profile()}, nil
}
