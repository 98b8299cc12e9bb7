package profiles

import (
	"fmt"
	"strings"

	apperrors "github.com/servepupil/api/pkg/errors"
)

func ValidateSaveProfileRequest(req *SaveProfileRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Bio = strings.TrimSpace(req.Bio)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("%w: name must be 100 characters or less", apperrors.ErrValidation)
	}
	if len(req.Bio) > 500 {
		return fmt.Errorf("%w: bio must be 500 characters or less", apperrors.ErrValidation)
	}
	return nil
}
