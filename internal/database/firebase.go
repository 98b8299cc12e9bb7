// Package database wires the firebase backends the API runs on: the
// admin Auth client for identity and the Realtime Database client plus
// the OAuth token source the streaming reads authenticate with.
package database

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/servepupil/api/internal/config"
	"github.com/servepupil/api/internal/pkg/logger"
)

var databaseScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/firebase.database",
}

// Clients bundles everything the rest of the API needs from firebase.
type Clients struct {
	Auth     *auth.Client
	Database *db.Client
	Tokens   oauth2.TokenSource
}

// Connect initialises the firebase app from the service-account file
// named in cfg and opens the auth and database clients.
func Connect(ctx context.Context, cfg *config.Config) (*Clients, error) {
	if cfg.FirebaseDatabaseURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL is not set")
	}

	creds := option.WithCredentialsFile(cfg.FirebaseCredentialsFile)
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.FirebaseDatabaseURL}, creds)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase database: %w", err)
	}

	tokens, err := tokenSource(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		return nil, err
	}

	logger.Info("Connected to firebase project at %s", cfg.FirebaseDatabaseURL)
	return &Clients{Auth: authClient, Database: dbClient, Tokens: tokens}, nil
}

func tokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, databaseScopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds.TokenSource, nil
}
