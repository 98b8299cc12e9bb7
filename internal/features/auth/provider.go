package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	apperrors "github.com/servepupil/api/pkg/errors"
)

// IdentityProvider is the slice of firebase auth this feature consumes.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (uid string, err error)
	VerifyIDToken(ctx context.Context, idToken string) (uid, email string, err error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// FirebaseIdentity adapts the admin SDK auth client.
type FirebaseIdentity struct {
	client *fbauth.Client
}

func NewFirebaseIdentity(client *fbauth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (f *FirebaseIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	record, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", apperrors.Remote(err)
	}
	return record.UID, nil
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (string, string, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid id token", apperrors.ErrUnauthorized)
	}
	email, _ := token.Claims["email"].(string)
	return token.UID, email, nil
}

func (f *FirebaseIdentity) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := f.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", apperrors.Remote(err)
	}
	return link, nil
}
