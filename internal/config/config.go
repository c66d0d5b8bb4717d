package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Datastore DatastoreConfig `yaml:"datastore"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	AI        AIConfig        `yaml:"ai"`
	Palette   PaletteConfig   `yaml:"palette"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadMB     int64         `yaml:"max_upload_mb"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// FirebaseConfig locates the admin service account. CredentialsJSON wins over
// CredentialsPath when both are present.
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsJSON string `yaml:"-"`
	CredentialsPath string `yaml:"credentials_path"`
}

func (f FirebaseConfig) HasCredentials() bool {
	return f.CredentialsJSON != "" || f.CredentialsPath != ""
}

// DatastoreConfig selects the document store backend
type DatastoreConfig struct {
	Type        string        `yaml:"type"` // "firestore", "postgres" or "memory"
	PostgresDSN string        `yaml:"postgres_dsn"`
	OpTimeout   time.Duration `yaml:"op_timeout"`
}

// StorageConfig contains object storage settings
type StorageConfig struct {
	Type          string        `yaml:"type"`       // "mock", "s3" or "gcs"
	UploadDir     string        `yaml:"upload_dir"` // For mock storage
	BaseURL       string        `yaml:"base_url"`   // Server base URL for mock URLs
	Bucket        string        `yaml:"bucket"`
	Region        string        `yaml:"region"`
	Endpoint      string        `yaml:"endpoint"` // S3-compatible endpoint, e.g. Supabase
	PublicBaseURL string        `yaml:"public_base_url"`
	AccessKey     string        `yaml:"access_key"`
	SecretKey     string        `yaml:"secret_key"`
	UploadTimeout time.Duration `yaml:"upload_timeout"`
}

// AuthConfig selects how bearer tokens are verified
type AuthConfig struct {
	Provider  string `yaml:"provider"` // "firebase" or "jwt"
	JWTSecret string `yaml:"jwt_secret"`
}

type AIConfig struct {
	GeminiAPIKey     string        `yaml:"gemini_api_key"`
	GeminiBaseURL    string        `yaml:"gemini_base_url"`
	GeminiModel      string        `yaml:"gemini_model"`
	HuggingFaceToken string        `yaml:"hf_token"`
	HuggingFaceURL   string        `yaml:"hf_base_url"`
	HuggingFaceModel string        `yaml:"hf_model"`
	Timeout          time.Duration `yaml:"timeout"`
}

type PaletteConfig struct {
	ColormindURL string        `yaml:"colormind_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// EmailConfig contains SendGrid settings; an empty API key disables sending
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReconcileLedger string `yaml:"reconcile_ledger"`
	AuditThemes     string `yaml:"audit_themes"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// CORS
	if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORS.AllowedOrigins = splitList(val)
	}

	// Firebase
	if val := os.Getenv("FIREBASE_ADMIN_CREDENTIALS"); val != "" {
		c.Firebase.CredentialsJSON = val
	}
	if val := os.Getenv("FIREBASE_ADMIN_CREDENTIALS_PATH"); val != "" {
		c.Firebase.CredentialsPath = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}

	// Datastore
	if val := os.Getenv("DATASTORE_TYPE"); val != "" {
		c.Datastore.Type = val
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Datastore.PostgresDSN = val
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}
	if val := os.Getenv("STORAGE_BUCKET"); val != "" {
		c.Storage.Bucket = val
	}
	if val := os.Getenv("STORAGE_ENDPOINT"); val != "" {
		c.Storage.Endpoint = val
	}
	if val := os.Getenv("STORAGE_ACCESS_KEY"); val != "" {
		c.Storage.AccessKey = val
	}
	if val := os.Getenv("STORAGE_SECRET_KEY"); val != "" {
		c.Storage.SecretKey = val
	}

	// Auth
	if val := os.Getenv("AUTH_PROVIDER"); val != "" {
		c.Auth.Provider = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}

	// AI
	if val := os.Getenv("GEMINI_API_KEY"); val != "" {
		c.AI.GeminiAPIKey = val
	}
	if val := os.Getenv("HF_TOKEN"); val != "" {
		c.AI.HuggingFaceToken = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 20
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	// Datastore
	if c.Datastore.Type == "" {
		c.Datastore.Type = "firestore"
	}
	if c.Datastore.OpTimeout == 0 {
		c.Datastore.OpTimeout = 10 * time.Second
	}
	switch c.Datastore.Type {
	case "firestore":
		if !c.Firebase.HasCredentials() && c.Firebase.ProjectID == "" {
			return fmt.Errorf("firestore datastore requires firebase credentials or project id")
		}
	case "postgres":
		if c.Datastore.PostgresDSN == "" {
			return fmt.Errorf("postgres datastore requires postgres_dsn")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown datastore type: %s", c.Datastore.Type)
	}

	// Storage
	if c.Storage.Type == "" {
		c.Storage.Type = "mock"
	}
	if c.Storage.UploadTimeout == 0 {
		c.Storage.UploadTimeout = 30 * time.Second
	}
	switch c.Storage.Type {
	case "mock":
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("upload directory is required")
		}
		if c.Storage.BaseURL == "" {
			c.Storage.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
		}
	case "s3", "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("%s storage requires a bucket", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}

	// Auth
	if c.Auth.Provider == "" {
		c.Auth.Provider = "firebase"
	}
	switch c.Auth.Provider {
	case "firebase":
	case "jwt":
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
	default:
		return fmt.Errorf("unknown auth provider: %s", c.Auth.Provider)
	}

	// AI
	if c.AI.GeminiBaseURL == "" {
		c.AI.GeminiBaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.AI.GeminiModel == "" {
		c.AI.GeminiModel = "gemini-2.5-flash"
	}
	if c.AI.HuggingFaceURL == "" {
		c.AI.HuggingFaceURL = "https://router.huggingface.co/v1"
	}
	if c.AI.HuggingFaceModel == "" {
		c.AI.HuggingFaceModel = "meta-llama/Meta-Llama-3-8B-Instruct"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}

	// Palette
	if c.Palette.ColormindURL == "" {
		c.Palette.ColormindURL = "http://colormind.io/api/"
	}
	if c.Palette.Timeout == 0 {
		c.Palette.Timeout = 10 * time.Second
	}

	// Email
	if c.Email.FromName == "" {
		c.Email.FromName = "KindnessConnect"
	}
	if c.Email.SendGridAPIKey != "" && c.Email.FromEmail == "" {
		return fmt.Errorf("email from address is required when SendGrid is enabled")
	}

	// Scheduler defaults
	if c.Scheduler.ReconcileLedger == "" {
		c.Scheduler.ReconcileLedger = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.AuditThemes == "" {
		c.Scheduler.AuditThemes = "0 */30 * * * *" // every 30 minutes
	}

	return nil
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
