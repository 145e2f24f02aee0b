// Package account registers users and checks their credentials against the
// users table.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"physcalc/internal/observability"
	"physcalc/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("username and password are required")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = fmt.Errorf("password is longer than %d bytes", MaxPasswordBytes)
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Registration attempts by outcome.",
	}, []string{"outcome"})
)

// Store is the accounts repository.
type Store struct {
	db   *gorm.DB
	cost int
}

// NewStore wraps an opened database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, cost: bcrypt.DefaultCost}
}

// Register creates an account. The username is trimmed; the password is
// stored only as a bcrypt hash. An existing username is left untouched.
func (s *Store) Register(ctx context.Context, username, password string) (*storage.User, error) {
	logger := observability.LoggerWithTrace(ctx)
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		registrationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrMissingFields
	}
	if len(password) > MaxPasswordBytes {
		registrationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		registrationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		registrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &storage.User{Username: username, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			registrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, ErrUsernameExists
		}
		registrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("insert user: %w", err)
	}

	registrationsTotal.WithLabelValues("success").Inc()
	logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Authenticate returns the account when password matches its hash. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*storage.User, error) {
	username = strings.TrimSpace(username)

	var user storage.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		loginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	loginsTotal.WithLabelValues("success").Inc()
	return &user, nil
}
