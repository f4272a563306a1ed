package services

import (
	"fmt"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// UserService handles administrative user management.
type UserService struct {
	repo   repositories.UserRepository
	events EventPublisher
	log    logrus.FieldLogger
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher, log logrus.FieldLogger) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
		log:    log.WithField("component", "user-service"),
	}
}

// ListOthers returns every user except the caller.
func (s *UserService) ListOthers(session auth.Session) ([]models.User, error) {
	if err := auth.RequireVerified(session); err != nil {
		return nil, err
	}
	return s.repo.ListExcept(session.UserID())
}

// SetStatus changes another user's account status and returns the refreshed list.
func (s *UserService) SetStatus(session auth.Session, targetID string, status models.AccountStatus) ([]models.User, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, ErrUserIDRequired
	}
	if err := auth.RequireNotSelf(session, targetID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, newValidationError("status", fmt.Sprintf("status must be one of: %s %s", models.StatusActive, models.StatusInactive))
	}

	target, err := s.repo.GetByID(targetID)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	if err := s.repo.UpdateStatus(target.ID, status); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  target.ID,
		"actor_id": session.UserID(),
		"status":   status,
	}).Info("account status updated")
	publishAccountEvent(s.events, s.log, AccountEvent{
		Type:     EventUserStatusChanged,
		UserID:   target.ID,
		Username: target.Username,
		Status:   string(status),
		ActorID:  session.UserID(),
	})

	return s.repo.ListExcept(session.UserID())
}

// Delete removes another user's account and returns the refreshed list.
func (s *UserService) Delete(session auth.Session, targetID string) ([]models.User, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, ErrUserIDRequired
	}
	if err := auth.RequireNotSelf(session, targetID); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(targetID); err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	s.log.WithFields(logrus.Fields{"user_id": targetID, "actor_id": session.UserID()}).Info("user deleted")
	publishAccountEvent(s.events, s.log, AccountEvent{
		Type:    EventUserDeleted,
		UserID:  targetID,
		ActorID: session.UserID(),
	})

	return s.repo.ListExcept(session.UserID())
}
