package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/models"
	"github.com/beetdev/recipe-service/internal/repository"
)

// MinPasswordLength is enforced on signup and on password change.
const MinPasswordLength = 5

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("validation failed", map[string]string{
				"email": "a user with this email already exists",
			})
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	s.sendWelcome(user)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", apperr.InvalidCredentials()
	}
	if !user.IsActive {
		return "", apperr.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.InvalidCredentials()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Profile returns the authenticated user.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("user not found")
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the fields of a partial profile update. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// UpdateProfile applies a partial update to the user's own profile. A new
// password is re-hashed before storage.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil {
		user.Email = normalizeEmail(*upd.Email)
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		if err := checkPassword(*upd.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("validation failed", map[string]string{
				"email": "a user with this email already exists",
			})
		}
		return nil, err
	}

	s.log.Infof("User profile updated: %d", user.ID)
	return user, nil
}

func checkPassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validation("validation failed", map[string]string{
			"password": fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		})
	}
	return nil
}

func (s *Service) sendWelcome(user *models.User) {
	if s.mailer == nil {
		return
	}
	go func(to, name string) {
		if err := s.mailer.SendWelcome(to, name); err != nil {
			s.log.Warnf("Failed to send welcome mail to %s: %v", to, err)
		}
	}(user.Email, user.Name)
}

// normalizeEmail lower-cases the domain part of the address.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
