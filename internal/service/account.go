package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/softstep/shop/internal/events"
	"github.com/softstep/shop/internal/hash"
	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/models"
	"github.com/softstep/shop/internal/repo"
	"github.com/softstep/shop/internal/token"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "password123"
	defaultAdminRole     = "admin"

	accessTokenTTL = 15 * time.Minute
)

type AccountService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  *events.Producer
}

type LoginResult struct {
	Role        string
	AccessToken string
}

// SeedDefaultAdmin inserts the default administrator if no user by that name
// exists yet. Safe to run on every boot.
func (s *AccountService) SeedDefaultAdmin(ctx context.Context) error {
	_, err := s.Repo.GetUserByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     defaultAdminUsername,
		PasswordHash: pwHash,
		Role:         defaultAdminRole,
	}
	if err := s.Repo.CreateUser(ctx, &admin); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("default admin user created", "username", defaultAdminUsername)
	return nil
}

func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.authenticate", "username", username)

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		l.Warn("login failed", "reason", "unknown username")
		return nil, fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "password mismatch")
		return nil, fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)
	}

	result := &LoginResult{Role: user.Role}
	if len(s.JWTSecret) > 0 {
		t, err := token.New(s.JWTSecret, user.Username, user.Role, time.Now().Add(accessTokenTTL))
		if err != nil {
			return nil, err
		}
		result.AccessToken = t
	}

	return result, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *AccountService) Create(ctx context.Context, username, password, role string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already exists", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, username, map[string]interface{}{
		"type":     "user_created",
		"userID":   user.ID,
		"username": username,
		"role":     role,
	})

	return &user, nil
}

// Update re-hashes and stores a new password only when one is supplied;
// otherwise the role alone changes and the stored hash stays untouched.
func (s *AccountService) Update(ctx context.Context, id uint, password, role string) error {
	updates := map[string]interface{}{"role": role}
	if strings.TrimSpace(password) != "" {
		pwHash, err := hash.HashPassword(password)
		if err != nil {
			return err
		}
		updates["password_hash"] = pwHash
	}

	rows, err := s.Repo.UpdateUser(ctx, id, updates)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}

	s.publish(ctx, fmt.Sprint(id), map[string]interface{}{
		"type":   "user_updated",
		"userID": id,
		"role":   role,
	})

	return nil
}

// Delete removes the row unconditionally; nothing guards the last admin.
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(id), map[string]interface{}{
		"type":   "user_deleted",
		"userID": id,
	})

	return nil
}

func (s *AccountService) publish(ctx context.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicUserEvents, "error", err)
	}
}
