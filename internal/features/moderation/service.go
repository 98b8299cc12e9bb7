package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/servepupil/api/internal/features/comments"
	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/features/reports"
	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/logger"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Service materializes the reported-content queues and resolves flags.
// Resolution always mutates the primary tree before touching the flag:
// a failed delete leaves the flag in place for a retry, while a flag
// that fails to clear after the delete succeeded surfaces as a partial
// failure.
type Service struct {
	reports  *reports.Repository
	requests *requests.Repository
	comments *comments.Repository
	profiles *profiles.Repository
}

func NewService(reportsRepo *reports.Repository, requestsRepo *requests.Repository, commentsRepo *comments.Repository, profilesRepo *profiles.Repository) *Service {
	return &Service{
		reports:  reportsRepo,
		requests: requestsRepo,
		comments: commentsRepo,
		profiles: profilesRepo,
	}
}

// ReportedRequests joins the requests sentinel set against the full
// requests tree. Flags whose target no longer exists are skipped, not
// cleared; resolving them is an explicit admin action.
func (s *Service) ReportedRequests(ctx context.Context, viewerUID string) ([]ReportedRequest, error) {
	ids, err := s.reports.List(ctx, reports.KindRequests)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ReportedRequest{}, nil
	}

	all, err := s.requests.All(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*requests.Request, len(all))
	for _, req := range all {
		byID[req.ID] = req
	}

	out := make([]ReportedRequest, 0, len(ids))
	for _, id := range ids {
		req, ok := byID[id]
		if !ok {
			logger.Warn("moderation: reported request %s not found in tree", id)
			continue
		}
		out = append(out, ReportedRequest{RequestResponse: req.ToResponse(viewerUID)})
	}
	return out, nil
}

// ReportedComments locates each flagged comment by scanning the requests
// tree, then enriches it with the author's display name.
func (s *Service) ReportedComments(ctx context.Context) ([]ReportedComment, error) {
	ids, err := s.reports.List(ctx, reports.KindComments)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	out := make([]ReportedComment, 0, len(ids))
	for _, id := range ids {
		owner, requestID, err := s.comments.FindParent(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("moderation: reported comment %s not found in tree", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		comment, err := s.comments.Get(ctx, owner, requestID, id)
		if err != nil {
			return nil, err
		}

		name, ok := names[comment.UID]
		if !ok {
			name, err = s.profiles.Name(ctx, comment.UID)
			if err != nil {
				name = ""
			}
			names[comment.UID] = name
		}
		out = append(out, ReportedComment{
			CommentID:  id,
			RequestID:  requestID,
			OwnerUID:   owner,
			AuthorUID:  comment.UID,
			AuthorName: name,
			Text:       comment.Text,
			Timestamp:  comment.Timestamp,
		})
	}
	return out, nil
}

// ReportedUsers resolves each flagged uid with a point read.
func (s *Service) ReportedUsers(ctx context.Context) ([]ReportedUser, error) {
	ids, err := s.reports.List(ctx, reports.KindUsers)
	if err != nil {
		return nil, err
	}

	out := make([]ReportedUser, 0, len(ids))
	for _, uid := range ids {
		user, err := s.profiles.Get(ctx, uid)
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("moderation: reported user %s has no profile", uid)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ReportedUser{
			UID:       uid,
			Name:      user.Name,
			Bio:       user.Bio,
			ImageURL:  user.ImageURL,
			IsBlocked: user.IsBlocked,
		})
	}
	return out, nil
}

// ResolveRequest deletes the flagged request, then clears its flag.
func (s *Service) ResolveRequest(ctx context.Context, requestID string) error {
	owner, err := s.requests.FindOwner(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, owner, requestID); err != nil {
		return err
	}
	if err := s.reports.Clear(ctx, "requests", requestID); err != nil {
		return apperrors.Partial(fmt.Errorf("request deleted but report flag not cleared: %w", err))
	}
	return nil
}

// ResolveComment deletes the flagged comment, then clears its flag.
func (s *Service) ResolveComment(ctx context.Context, commentID string) error {
	owner, requestID, err := s.comments.FindParent(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, owner, requestID, commentID); err != nil {
		return err
	}
	if err := s.reports.Clear(ctx, "comments", commentID); err != nil {
		return apperrors.Partial(fmt.Errorf("comment deleted but report flag not cleared: %w", err))
	}
	return nil
}

// BlockUser marks the profile blocked, then clears its flag. The block
// takes effect at the user's next session exchange.
func (s *Service) BlockUser(ctx context.Context, uid string) error {
	if _, err := s.profiles.Get(ctx, uid); err != nil {
		return err
	}
	if err := s.profiles.SetBlocked(ctx, uid, true); err != nil {
		return err
	}
	if err := s.reports.Clear(ctx, "users", uid); err != nil {
		return apperrors.Partial(fmt.Errorf("user blocked but report flag not cleared: %w", err))
	}
	return nil
}
