package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN   string `env:"DATABASE_URI"`
	AuthSecret    string `env:"AUTH_SECRET"`
	AuthAlgorithm string `env:"AUTH_ALGORITHM"`
	TokenTTLMin   int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	CORSOrigin    string `env:"CORS_ORIGIN"`

	// Blob storage
	BlobMaxSizeMB int    `env:"BLOB_MAX_MB"`
	BlobBackend   string `env:"BLOB_BACKEND"` // fs | s3 | memory
	BlobDir       string `env:"BLOB_DIR"`

	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE"`
	S3CreateBucket    bool   `env:"S3_CREATE_BUCKET"`

	// VerifyAttachmentOwnershipOnUpdate включает проверку владения новыми image_ids
	// при частичном обновлении item (одиночный associate проверяет всегда).
	VerifyAttachmentOwnershipOnUpdate bool `env:"ATTACH_VERIFY_ON_UPDATE"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

// TokenTTL возвращает время жизни access token.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres:// или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.AuthAlgorithm, "auth-alg", cfg.AuthAlgorithm, "алгоритм подписи JWT: HS256, HS384, HS512")
	flag.IntVar(&cfg.TokenTTLMin, "token-ttl", cfg.TokenTTLMin, "время жизни токена в минутах")
	flag.StringVar(&cfg.BlobBackend, "blob-backend", cfg.BlobBackend, "хранилище файлов: fs, s3, memory")
	flag.StringVar(&cfg.BlobDir, "blob-dir", cfg.BlobDir, "каталог для fs-хранилища файлов")
	flag.IntVar(&cfg.BlobMaxSizeMB, "blob-max-mb", cfg.BlobMaxSizeMB, "максимальный размер загружаемого файла, МБ")
	flag.BoolVar(&cfg.VerifyAttachmentOwnershipOnUpdate, "attach-verify-on-update", cfg.VerifyAttachmentOwnershipOnUpdate, "проверять владение image_ids при обновлении item")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the GophMart server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	cfg.AuthAlgorithm = strings.ToUpper(cfg.AuthAlgorithm)
	if cfg.AuthAlgorithm == "" {
		cfg.AuthAlgorithm = "HS256"
	}
	if cfg.TokenTTLMin <= 0 {
		cfg.TokenTTLMin = 30
	}
	if cfg.BlobMaxSizeMB <= 0 {
		cfg.BlobMaxSizeMB = 50
	}
	if cfg.BlobBackend == "" {
		cfg.BlobBackend = "fs"
	}
	if cfg.BlobDir == "" {
		cfg.BlobDir = filepath.Join("data", "blobs")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "gophmart.db"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	home, _ := os.UserHomeDir()
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(home, ".gm_token")
	}

	return cfg
}
