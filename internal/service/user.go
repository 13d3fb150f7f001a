package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *UserService) List(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

// SetRole changes a user's role. Every change is written to the audit log
// with the acting admin and published on the user topic.
func (s *UserService) SetRole(ctx context.Context, actor *domain.Principal, id uuid.UUID, role string) (*models.User, error) {
	role = strings.TrimSpace(role)
	if !models.ValidRole(role) {
		return nil, fail(ErrValidation, "role must be one of: user, admin")
	}
	if actor != nil && actor.UserID == id && role != models.RoleAdmin {
		return nil, fail(ErrValidation, "cannot remove your own admin role")
	}

	old, user, err := s.Repo.SetRole(ctx, id, role)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "user not found")
		}
		return nil, err
	}
	if old == role {
		return user, nil
	}

	var actorID uuid.UUID
	if actor != nil {
		actorID = actor.UserID
	}
	logging.FromContext(ctx).Info("user_role_changed",
		"audit", true,
		"actor_id", actorID,
		"target_id", user.ID,
		"old_role", old,
		"new_role", role,
	)
	publish(ctx, s.Events, TopicUsers, user.ID.String(), map[string]any{
		"type":    "user_role_changed",
		"userID":  user.ID,
		"actorID": actorID,
		"oldRole": old,
		"newRole": role,
	})
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.Principal, id uuid.UUID) error {
	if actor != nil && actor.UserID == id {
		return fail(ErrValidation, "cannot delete your own account")
	}
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fail(ErrNotFound, "user not found")
		}
		return err
	}
	publish(ctx, s.Events, TopicUsers, id.String(), map[string]any{
		"type":   "user_deleted",
		"userID": id,
	})
	return nil
}
