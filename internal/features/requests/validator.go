package requests

import (
	"fmt"
	"strings"

	apperrors "github.com/servepupil/api/pkg/errors"
)

func ValidateSaveRequestForm(form *SaveRequestForm) error {
	form.Description = strings.TrimSpace(form.Description)
	form.RequestType = strings.TrimSpace(form.RequestType)
	form.Place = strings.TrimSpace(form.Place)

	if form.Description == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if form.RequestType == "" {
		return fmt.Errorf("%w: request type is required", apperrors.ErrValidation)
	}
	if form.Place == "" {
		return fmt.Errorf("%w: place is required", apperrors.ErrValidation)
	}
	return nil
}
