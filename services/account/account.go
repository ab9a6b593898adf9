// Package account wraps authentication, profile and settings flows around
// the session lifecycle.
package account

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lawconnect/models"
	"lawconnect/session"
	"lawconnect/utils"
)

// ErrPasswordMismatch is raised before any network call when the new
// password and its confirmation differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

// BackendAPI is the slice of the REST client this package needs.
type BackendAPI interface {
	Login(ctx context.Context, creds models.Credentials) (string, models.User, error)
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error
}

type Service struct {
	backend  BackendAPI
	session  *session.Session
	notifier utils.Notifier
	logger   *zap.Logger
}

func NewService(backend BackendAPI, sess *session.Session, notifier utils.Notifier) *Service {
	return &Service{backend: backend, session: sess, notifier: notifier, logger: utils.GetLogger()}
}

// Login authenticates and stores the resulting session.
func (s *Service) Login(ctx context.Context, email, password, userType string) (models.User, error) {
	token, user, err := s.backend.Login(ctx, models.Credentials{
		Email:    email,
		Password: password,
		UserType: userType,
	})
	if err != nil {
		s.notifier.Error("Login failed")
		return models.User{}, err
	}
	if err := s.session.Set(token, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("signed in", zap.String("user_id", user.ID), zap.String("role", user.UserType))
	return user, nil
}

// Logout clears the session.
func (s *Service) Logout() error {
	return s.session.Clear()
}

// Profile fetches the current profile and refreshes the session copy.
func (s *Service) Profile(ctx context.Context) (models.User, error) {
	user, err := s.backend.Profile(ctx)
	if err != nil {
		return models.User{}, err
	}
	_ = s.session.UpdateUser(user)
	return user, nil
}

// UpdateProfile applies a partial update and refreshes the session copy.
func (s *Service) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	user, err := s.backend.UpdateProfile(ctx, update)
	if err != nil {
		s.notifier.Error("Could not update profile")
		return models.User{}, err
	}
	if err := s.session.UpdateUser(user); err != nil {
		return models.User{}, err
	}
	s.notifier.Success("Profile updated")
	return user, nil
}

// ChangePassword checks the confirmation locally, then asks the backend to
// set the new password.
func (s *Service) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if next != confirm {
		s.notifier.Error("Passwords do not match")
		return ErrPasswordMismatch
	}
	if err := s.backend.ChangePassword(ctx, models.PasswordChange{
		CurrentPassword: current,
		NewPassword:     next,
	}); err != nil {
		s.notifier.Error("Could not change password")
		return err
	}
	s.notifier.Success("Password changed")
	return nil
}
