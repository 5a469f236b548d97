// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/repository"
	"github.com/danielhkuo/grocery-list/validation"
)

// PasswordHasher turns plaintext passwords into stored hashes and checks
// candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher hashes with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil only when password matches hash. The comparison is
// constant time.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type Transactor interface {
	InTx(ctx context.Context, fn func(q *repository.Queries) error) error
}

type Service struct {
	repo   Transactor
	hasher PasswordHasher
	logger *zap.Logger

	// dummyHash is compared against when a username is unknown so that
	// failed logins take the same time either way.
	dummyHash string
}

func NewService(repo Transactor, hasher PasswordHasher, logger *zap.Logger) (*Service, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Service{repo: repo, hasher: hasher, logger: logger, dummyHash: dummy}, nil
}

// SignUp creates an account. Taken usernames, short credentials, and a
// mismatched confirmation are reported as a *models.ValidationError.
func (s *Service) SignUp(ctx context.Context, in models.SignUpInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if verr := validation.Check(in); verr.HasErrors() {
		return nil, verr
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, models.NewValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: in.Username, PasswordHash: hash}
	err = s.repo.InTx(ctx, func(q *repository.Queries) error {
		_, err := q.GetUserByUsername(ctx, in.Username)
		if err == nil {
			return usernameTaken()
		}
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}
		return q.InsertUser(ctx, user)
	})
	if repository.IsUniqueViolation(err) {
		// lost a race with a concurrent sign-up
		err = usernameTaken()
	}
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func usernameTaken() *models.ValidationError {
	return models.NewValidationError("username", "already taken, please pick another")
}

// LogIn checks credentials. Unknown usernames and wrong passwords both
// return models.ErrInvalidCredentials.
func (s *Service) LogIn(ctx context.Context, in models.LoginInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if verr := validation.Check(in); verr.HasErrors() {
		return nil, verr
	}

	var user *models.User
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		user, err = q.GetUserByUsername(ctx, in.Username)
		return err
	})
	if errors.Is(err, models.ErrNotFound) {
		s.hasher.Compare(s.dummyHash, in.Password)
		s.logger.Info("login failed", zap.String("username", in.Username))
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("log in: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		s.logger.Info("login failed", zap.String("username", in.Username))
		return nil, models.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return user, nil
}
