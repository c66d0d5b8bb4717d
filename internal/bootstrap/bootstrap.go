// Package bootstrap builds the process's collaborators from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "kindnessconnect-backend/internal/api/http"
	"kindnessconnect-backend/internal/clients"
	"kindnessconnect-backend/internal/config"
	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/palette"
	"kindnessconnect-backend/internal/repository/document"
	"kindnessconnect-backend/internal/security"
	"kindnessconnect-backend/internal/service"
	"kindnessconnect-backend/internal/storage"
)

// App holds everything the HTTP server needs.
type App struct {
	Store    *document.Store
	Storage  *storage.Backend
	Verifier security.IdentityVerifier
	Services httpapi.Services
}

func (a *App) Close() {
	if err := a.Storage.Close(); err != nil {
		logger.Warn("Failed to close storage", "error", err)
	}
	if err := a.Store.Close(); err != nil {
		logger.Warn("Failed to close document store", "error", err)
	}
}

// New wires the full application.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var app *firebase.App
	if cfg.Datastore.Type == "firestore" || cfg.Auth.Provider == "firebase" {
		var err error
		if app, err = NewFirebaseApp(ctx, cfg.Firebase); err != nil {
			return nil, err
		}
	}

	store, err := OpenStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	backend, err := OpenStorage(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	verifier, err := NewIdentityVerifier(ctx, cfg.Auth, app)
	if err != nil {
		backend.Close()
		store.Close()
		return nil, err
	}

	emailSvc := service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	primary, fallback := StoryProviders(cfg.AI)
	themes := palette.NewGenerator(clients.NewColormindClient(cfg.Palette.ColormindURL, cfg.Palette.Timeout))

	return &App{
		Store:    store,
		Storage:  backend,
		Verifier: verifier,
		Services: httpapi.Services{
			Users:        service.NewUserService(store.UserRepository, verifier),
			Campaigns:    service.NewCampaignService(store.CampaignRepository, store.UserRepository, backend, emailSvc),
			Donations:    service.NewDonationService(store.DonationRepository, store.CampaignRepository, store.UserRepository),
			Chats:        service.NewChatService(store.ChatRepository, store.CampaignRepository),
			Sponsors:     service.NewSponsorService(store.SponsorRepository, store.UserRepository, backend, themes),
			Verification: service.NewVerificationService(store.VerificationRepository, store.UserRepository, backend, emailSvc),
			Stories:      service.NewStoryService(primary, fallback),
		},
	}, nil
}

// NewFirebaseApp initializes the Admin SDK. Inline JSON credentials win over a file path;
// with neither, application default credentials are used.
func NewFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	opts := firebaseOptions(cfg)
	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}
	logger.Info("Firebase initialized", "project_id", cfg.ProjectID, "inline_credentials", cfg.CredentialsJSON != "")
	return app, nil
}

func firebaseOptions(cfg config.FirebaseConfig) []option.ClientOption {
	switch {
	case cfg.CredentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))}
	case cfg.CredentialsPath != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}
	}
	return nil
}

// OpenStore opens the configured document store and bounds every operation by the
// configured timeout. app is required only for Firestore.
func OpenStore(ctx context.Context, cfg *config.Config, app *firebase.App) (*document.Store, error) {
	var client docstore.Client
	switch cfg.Datastore.Type {
	case "firestore":
		if app == nil {
			return nil, errors.New("firestore datastore requires a firebase app")
		}
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open firestore: %w", err)
		}
		client = docstore.NewFirestoreClient(fs)
	case "postgres":
		pg, err := docstore.OpenPostgres(ctx, cfg.Datastore.PostgresDSN)
		if err != nil {
			return nil, err
		}
		client = pg
	case "memory":
		logger.Warn("Using in-memory document store; data is lost on exit")
		client = docstore.NewMemoryClient()
	default:
		return nil, fmt.Errorf("unsupported datastore type: %s", cfg.Datastore.Type)
	}

	logger.Info("Document store ready", "type", cfg.Datastore.Type, "op_timeout", cfg.Datastore.OpTimeout)
	return document.NewStore(docstore.Instrument(client, cfg.Datastore.OpTimeout)), nil
}

func OpenStorage(ctx context.Context, cfg *config.Config) (*storage.Backend, error) {
	sc := cfg.Storage
	backend, err := storage.New(ctx, storage.Config{
		Type:          sc.Type,
		MockDir:       sc.UploadDir,
		BaseURL:       sc.BaseURL,
		UploadTimeout: sc.UploadTimeout,
		S3: storage.S3Options{
			Bucket:        sc.Bucket,
			Region:        sc.Region,
			Endpoint:      sc.Endpoint,
			PublicBaseURL: sc.PublicBaseURL,
			AccessKey:     sc.AccessKey,
			SecretKey:     sc.SecretKey,
		},
		GCSBucket:    sc.Bucket,
		GCSPublicURL: sc.PublicBaseURL,
	}, firebaseOptions(cfg.Firebase)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Object storage ready", "type", sc.Type, "bucket", sc.Bucket)
	return backend, nil
}

func NewIdentityVerifier(ctx context.Context, cfg config.AuthConfig, app *firebase.App) (security.IdentityVerifier, error) {
	switch cfg.Provider {
	case "firebase":
		if app == nil {
			return nil, errors.New("firebase auth requires a firebase app")
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
		}
		return security.NewFirebaseVerifier(client), nil
	case "jwt":
		logger.Warn("Using locally signed JWTs for authentication")
		return security.NewTokenManager(cfg.JWTSecret, 0), nil
	}
	return nil, fmt.Errorf("unsupported auth provider: %s", cfg.Provider)
}

// StoryProviders returns Gemini as the primary generator and the Hugging Face router as
// the fallback. Providers without credentials are omitted.
func StoryProviders(cfg config.AIConfig) (primary, fallback service.TextGenerator) {
	if cfg.GeminiAPIKey != "" {
		primary = clients.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.Timeout)
	}
	if cfg.HuggingFaceToken != "" {
		fallback = clients.NewChatCompletionClient("huggingface", cfg.HuggingFaceToken, cfg.HuggingFaceURL, cfg.HuggingFaceModel, cfg.Timeout)
	}
	if primary == nil && fallback == nil {
		logger.Warn("No story generation provider is configured")
	}
	return primary, fallback
}
