package requests

import (
	"context"
	"fmt"
	"io"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/pkg/logger"
	"github.com/servepupil/api/internal/pkg/objectstore"
	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// ReportFlags clears moderation sentinels without importing the reports
// feature directly (the reports feature depends on this one).
type ReportFlags interface {
	Clear(ctx context.Context, kind, targetID string) error
}

type Service struct {
	repo     *Repository
	profiles *profiles.Repository
	objects  objectstore.Store
	flags    ReportFlags
}

func NewService(repo *Repository, profilesRepo *profiles.Repository, objects objectstore.Store, flags ReportFlags) *Service {
	return &Service{repo: repo, profiles: profilesRepo, objects: objects, flags: flags}
}

type CreateInput struct {
	Description string
	RequestType string
	Place       string
	Latitude    float64
	Longitude   float64
	Image       io.Reader
}

func imagePath(requestID string) string {
	return fmt.Sprintf("request_images/%s.jpg", requestID)
}

// Create publishes a new request for uid.
//
// The creator must already have a profile at users/{uid}; the image upload
// and the record write are sequential and not transactional. A failed
// record write after a successful upload leaves an orphaned image, which is
// logged and accepted.
func (s *Service) Create(ctx context.Context, uid string, in CreateInput) (*Request, error) {
	if in.Image == nil {
		return nil, fmt.Errorf("%w: an image is required", apperrors.ErrValidation)
	}

	registered, err := s.profiles.Exists(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, apperrors.ErrNotRegistered
	}

	requestID, err := s.repo.NewID(ctx, uid)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.objects.Upload(ctx, imagePath(requestID), in.Image)
	if err != nil {
		return nil, apperrors.Remote(err)
	}

	record := map[string]interface{}{
		"ownerUid":    uid,
		"requestId":   requestID,
		"description": in.Description,
		"requestType": in.RequestType,
		"place":       in.Place,
		"latitude":    in.Latitude,
		"longitude":   in.Longitude,
		"timestamp":   treestore.ServerTimestamp,
		"imageUrl":    imageURL,
		"likes":       0,
	}
	if err := s.repo.Put(ctx, uid, requestID, record); err != nil {
		logger.Warn("requests: record write failed after image upload, orphaned image at %s: %v", imagePath(requestID), err)
		return nil, err
	}

	return s.repo.Get(ctx, uid, requestID)
}

type EditInput struct {
	Description string
	RequestType string
	Place       string
	Latitude    float64
	Longitude   float64
	Image       io.Reader // nil keeps the existing image
}

// Edit updates an owned request. Only the record owner may edit; a new
// image overwrites the deterministic path before the field merge, otherwise
// the existing image reference is preserved.
func (s *Service) Edit(ctx context.Context, uid, requestID string, in EditInput) (*Request, error) {
	existing, err := s.repo.Get(ctx, uid, requestID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerUID != uid {
		return nil, apperrors.ErrForbidden
	}

	fields := map[string]interface{}{
		"description": in.Description,
		"requestType": in.RequestType,
		"place":       in.Place,
		"latitude":    in.Latitude,
		"longitude":   in.Longitude,
		"timestamp":   treestore.ServerTimestamp,
	}

	if in.Image != nil {
		imageURL, err := s.objects.Upload(ctx, imagePath(requestID), in.Image)
		if err != nil {
			return nil, apperrors.Remote(err)
		}
		fields["imageUrl"] = imageURL
	}

	if err := s.repo.Merge(ctx, uid, requestID, fields); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid, requestID)
}

// Delete removes the whole request subtree and then clears any report flag
// on the request. The subtree removal must succeed before the flag is
// touched; a flag-clear failure after a successful removal surfaces as a
// partial failure.
func (s *Service) Delete(ctx context.Context, callerUID string, isAdmin bool, ownerUID, requestID string) error {
	if callerUID != ownerUID && !isAdmin {
		return apperrors.ErrForbidden
	}

	if _, err := s.repo.Get(ctx, ownerUID, requestID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerUID, requestID); err != nil {
		return err
	}

	if err := s.flags.Clear(ctx, "requests", requestID); err != nil {
		return apperrors.Partial(fmt.Errorf("request deleted but report flag not cleared: %w", err))
	}
	return nil
}

// GlobalFeed is the one-shot read of the whole requests tree, excluding the
// viewer's own requests, newest first.
func (s *Service) GlobalFeed(ctx context.Context, viewerUID string) ([]*Request, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Request, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- { // reverse chronological
		if all[i].OwnerUID != viewerUID {
			out = append(out, all[i])
		}
	}
	return out, nil
}
