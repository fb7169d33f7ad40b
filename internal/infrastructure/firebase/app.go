package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"gamerverse/pkg/config"
	"gamerverse/pkg/logger"
)

type Clients struct {
	App       *fbapp.App
	Auth      *auth.Client
	Firestore *firestore.Client
	// CredentialsPath is empty when credentials came from JSON in the env.
	CredentialsPath string
}

// CredentialsOption prefers inline service account JSON (production) and
// falls back to a file on disk (local development). With neither, Application
// Default Credentials are used.
func CredentialsOption(cfg config.FirebaseConfig) (option.ClientOption, string) {
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)), ""
	}

	if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); err == nil {
			logger.Info("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
			return option.WithCredentialsFile(cfg.ServiceAccountPath), cfg.ServiceAccountPath
		}
		logger.Warn("Service account file %s not found, using application default credentials", cfg.ServiceAccountPath)
	}

	return nil, ""
}

func NewClients(ctx context.Context, cfg config.FirebaseConfig) (*Clients, error) {
	var opts []option.ClientOption
	opt, path := CredentialsOption(cfg)
	if opt != nil {
		opts = append(opts, opt)
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.ProjectID, StorageBucket: cfg.StorageBucket}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Clients{
		App:             app,
		Auth:            authClient,
		Firestore:       firestoreClient,
		CredentialsPath: path,
	}, nil
}

func (c *Clients) Close() error {
	return c.Firestore.Close()
}

// Ping reads at most one game to prove Firestore is reachable.
func (c *Clients) Ping(ctx context.Context) error {
	iter := c.Firestore.Collection("games").Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err != nil && err != iterator.Done {
		return err
	}
	return nil
}
