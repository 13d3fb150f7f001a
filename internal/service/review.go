package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

// Submit stores a new review. It always starts pending.
func (s *ReviewService) Submit(ctx context.Context, req transport.CreateReviewRequest) (*models.Review, error) {
	rv := &models.Review{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
		Status:  models.ReviewPending,
	}
	switch {
	case rv.Name == "":
		return nil, fail(ErrValidation, "name is required")
	case !strings.Contains(rv.Email, "@"):
		return nil, fail(ErrValidation, "a valid email is required")
	case rv.Rating < 1 || rv.Rating > 5:
		return nil, fail(ErrValidation, "rating must be between 1 and 5")
	case rv.Comment == "":
		return nil, fail(ErrValidation, "comment is required")
	case utf8.RuneCountInString(rv.Comment) > models.MaxReviewComment:
		return nil, fail(ErrValidation, "comment must be at most %d characters", models.MaxReviewComment)
	}

	if err := s.Repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, TopicReviews, rv.ID.String(), map[string]any{
		"type":     "review_submitted",
		"reviewID": rv.ID,
		"rating":   rv.Rating,
	})
	return rv, nil
}

func (s *ReviewService) Approved(ctx context.Context, offset, limit int) (int64, []models.Review, error) {
	return s.Repo.ListReviews(ctx, models.ReviewApproved, offset, limit)
}

// List returns reviews of every status, or only those matching status.
func (s *ReviewService) List(ctx context.Context, status string, offset, limit int) (int64, []models.Review, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.ValidReviewStatus(status) {
		return 0, nil, fail(ErrValidation, "invalid review status")
	}
	return s.Repo.ListReviews(ctx, status, offset, limit)
}

func (s *ReviewService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Review, error) {
	status = strings.TrimSpace(status)
	if !models.ValidReviewStatus(status) {
		return nil, fail(ErrValidation, "status must be one of: pending, approved, rejected")
	}
	rv, err := s.Repo.SetReviewStatus(ctx, id, status)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "review not found")
		}
		return nil, err
	}
	publish(ctx, s.Events, TopicReviews, rv.ID.String(), map[string]any{
		"type":     "review_status_changed",
		"reviewID": rv.ID,
		"status":   rv.Status,
	})
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteReview(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fail(ErrNotFound, "review not found")
		}
		return err
	}
	return nil
}
