package comments

import (
	"fmt"
	"strings"

	"github.com/servepupil/api/pkg/errors"
)

const maxCommentLength = 1000

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: comment text is required", errors.ErrValidation)
	}
	if len(text) > maxCommentLength {
		return "", fmt.Errorf("%w: comment text exceeds %d characters", errors.ErrValidation, maxCommentLength)
	}
	return text, nil
}
