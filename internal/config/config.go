package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingLLMCredential is returned by Validate when no LLM provider has an API key.
var ErrMissingLLMCredential = errors.New("LLM API key not configured")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	LLM      LLMConfig
	OCR      OCRConfig
	Pipeline PipelineConfig
	LogStore LogStoreConfig
	Mongo    MongoConfig
	DB       DBConfig
	Queue    QueueConfig
	Redis    RedisConfig
	S3       S3Config
	Email    EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          string        `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	Environment   string        `mapstructure:"environment"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
	TempDir       string        `mapstructure:"temp_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMProviderConfig holds settings for a single LLM completion provider.
type LLMProviderConfig struct {
	Provider          string `mapstructure:"provider"`
	APIKey            string `mapstructure:"api_key"`
	DefaultModel      string `mapstructure:"default_model"`
	TimeoutSecs       int    `mapstructure:"timeout_secs"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// LLMConfig holds LLM settings with multi-provider support.
type LLMConfig struct {
	// Legacy flat fields
	Provider          string `mapstructure:"provider"`
	APIKey            string `mapstructure:"api_key"`
	DefaultModel      string `mapstructure:"default_model"`
	TimeoutSecs       int    `mapstructure:"timeout_secs"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`

	Primary   LLMProviderConfig `mapstructure:"primary"`
	Secondary LLMProviderConfig `mapstructure:"secondary"`
	Tertiary  LLMProviderConfig `mapstructure:"tertiary"`

	// Circuit breaker: consecutive failures before a provider is skipped,
	// and how long it stays open.
	BreakerFailures    uint32        `mapstructure:"breaker_failures"`
	BreakerOpenTimeout time.Duration `mapstructure:"breaker_open_timeout"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (l *LLMConfig) PrimaryConfig() *LLMProviderConfig {
	if l.Primary.Provider != "" {
		return &l.Primary
	}
	return &LLMProviderConfig{
		Provider:          l.Provider,
		APIKey:            l.APIKey,
		DefaultModel:      l.DefaultModel,
		TimeoutSecs:       l.TimeoutSecs,
		RequestsPerMinute: l.RequestsPerMinute,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *LLMProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (l *LLMConfig) TertiaryConfig() *LLMProviderConfig {
	if l.Tertiary.Provider != "" {
		return &l.Tertiary
	}
	return nil
}

// Providers returns every configured provider in fallback order.
func (l *LLMConfig) Providers() []*LLMProviderConfig {
	out := []*LLMProviderConfig{l.PrimaryConfig()}
	if s := l.SecondaryConfig(); s != nil {
		out = append(out, s)
	}
	if t := l.TertiaryConfig(); t != nil {
		out = append(out, t)
	}
	return out
}

// OCRConfig holds OCR engine settings.
type OCRConfig struct {
	Languages      []string `mapstructure:"languages"`
	TessdataPrefix string   `mapstructure:"tessdata_prefix"`
	PDFToPPMPath   string   `mapstructure:"pdftoppm_path"`
	RasterDPI      int      `mapstructure:"raster_dpi"`
	TimeoutSecs    int      `mapstructure:"timeout_secs"`
}

// PipelineConfig holds classification and analysis settings.
type PipelineConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	Region              string  `mapstructure:"region"`
	LocationContext     string  `mapstructure:"location_context"`
}

// LogStoreConfig selects the processed-document log backend.
type LogStoreConfig struct {
	Backend    string `mapstructure:"backend"`
	Collection string `mapstructure:"collection"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// QueueConfig selects the review queue backend.
type QueueConfig struct {
	Backend string `mapstructure:"backend"`
	CSVPath string `mapstructure:"csv_path"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// S3Config holds settings for archiving review-queue uploads.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds reviewer notification settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Reviewers   []string `mapstructure:"reviewers"`
	FrontendURL string   `mapstructure:"frontend_url"`
}

// Load reads configuration from an optional .env file and environment
// variables with the PRAVAAH_ prefix.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PRAVAAH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_file_size_mb", 25)
	v.SetDefault("server.temp_dir", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000")

	// LLM defaults (legacy flat)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.default_model", "gemini-pro-latest")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.requests_per_minute", 0)
	v.SetDefault("llm.breaker_failures", 5)
	v.SetDefault("llm.breaker_open_timeout", "60s")
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("llm."+tier+".provider", "")
		v.SetDefault("llm."+tier+".api_key", "")
		v.SetDefault("llm."+tier+".default_model", "")
		v.SetDefault("llm."+tier+".timeout_secs", 120)
		v.SetDefault("llm."+tier+".requests_per_minute", 0)
	}

	// OCR defaults
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.pdftoppm_path", "pdftoppm")
	v.SetDefault("ocr.raster_dpi", 200)
	v.SetDefault("ocr.timeout_secs", 120)

	// Pipeline defaults
	v.SetDefault("pipeline.confidence_threshold", 0.80)
	v.SetDefault("pipeline.region", "IN")
	v.SetDefault("pipeline.location_context", "")

	// Log store defaults
	v.SetDefault("log_store.backend", "mongo")
	v.SetDefault("log_store.collection", "processed_logs")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "pravaah")
	v.SetDefault("mongo.timeout_secs", 10)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pravaah")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "pravaah_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Queue defaults
	v.SetDefault("queue.backend", "csv")
	v.SetDefault("queue.csv_path", "review_queue.csv")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "pravaah:")

	// S3 archive defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "pravaah-review")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "review-queue/")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@pravaah.local")
	v.SetDefault("email.from_name", "Pravaah")
	v.SetDefault("email.reviewers", "")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "PRAVAAH_SERVER_PORT",
		"server.read_timeout":           "PRAVAAH_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "PRAVAAH_SERVER_WRITE_TIMEOUT",
		"server.environment":            "PRAVAAH_SERVER_ENVIRONMENT",
		"server.max_file_size_mb":       "PRAVAAH_SERVER_MAX_FILE_SIZE_MB",
		"server.temp_dir":               "PRAVAAH_SERVER_TEMP_DIR",
		"log.level":                     "PRAVAAH_LOG_LEVEL",
		"log.format":                    "PRAVAAH_LOG_FORMAT",
		"cors.allowed_origins":          "PRAVAAH_CORS_ALLOWED_ORIGINS",
		"llm.provider":                  "PRAVAAH_LLM_PROVIDER",
		"llm.api_key":                   "PRAVAAH_LLM_API_KEY",
		"llm.default_model":             "PRAVAAH_LLM_DEFAULT_MODEL",
		"llm.timeout_secs":              "PRAVAAH_LLM_TIMEOUT_SECS",
		"llm.requests_per_minute":       "PRAVAAH_LLM_REQUESTS_PER_MINUTE",
		"llm.breaker_failures":          "PRAVAAH_LLM_BREAKER_FAILURES",
		"llm.breaker_open_timeout":      "PRAVAAH_LLM_BREAKER_OPEN_TIMEOUT",
		"ocr.languages":                 "PRAVAAH_OCR_LANGUAGES",
		"ocr.tessdata_prefix":           "PRAVAAH_OCR_TESSDATA_PREFIX",
		"ocr.pdftoppm_path":             "PRAVAAH_OCR_PDFTOPPM_PATH",
		"ocr.raster_dpi":                "PRAVAAH_OCR_RASTER_DPI",
		"ocr.timeout_secs":              "PRAVAAH_OCR_TIMEOUT_SECS",
		"pipeline.confidence_threshold": "PRAVAAH_PIPELINE_CONFIDENCE_THRESHOLD",
		"pipeline.region":               "PRAVAAH_PIPELINE_REGION",
		"pipeline.location_context":     "PRAVAAH_PIPELINE_LOCATION_CONTEXT",
		"log_store.backend":             "PRAVAAH_LOG_STORE_BACKEND",
		"log_store.collection":          "PRAVAAH_LOG_STORE_COLLECTION",
		"mongo.uri":                     "PRAVAAH_MONGO_URI",
		"mongo.database":                "PRAVAAH_MONGO_DATABASE",
		"mongo.timeout_secs":            "PRAVAAH_MONGO_TIMEOUT_SECS",
		"db.host":                       "PRAVAAH_DB_HOST",
		"db.port":                       "PRAVAAH_DB_PORT",
		"db.user":                       "PRAVAAH_DB_USER",
		"db.password":                   "PRAVAAH_DB_PASSWORD",
		"db.name":                       "PRAVAAH_DB_NAME",
		"db.sslmode":                    "PRAVAAH_DB_SSLMODE",
		"db.max_open":                   "PRAVAAH_DB_MAX_OPEN",
		"db.max_idle":                   "PRAVAAH_DB_MAX_IDLE",
		"queue.backend":                 "PRAVAAH_QUEUE_BACKEND",
		"queue.csv_path":                "PRAVAAH_QUEUE_CSV_PATH",
		"redis.addr":                    "PRAVAAH_REDIS_ADDR",
		"redis.password":                "PRAVAAH_REDIS_PASSWORD",
		"redis.db":                      "PRAVAAH_REDIS_DB",
		"redis.key_prefix":              "PRAVAAH_REDIS_KEY_PREFIX",
		"s3.enabled":                    "PRAVAAH_S3_ENABLED",
		"s3.region":                     "PRAVAAH_S3_REGION",
		"s3.bucket":                     "PRAVAAH_S3_BUCKET",
		"s3.endpoint":                   "PRAVAAH_S3_ENDPOINT",
		"s3.access_key":                 "PRAVAAH_S3_ACCESS_KEY",
		"s3.secret_key":                 "PRAVAAH_S3_SECRET_KEY",
		"s3.key_prefix":                 "PRAVAAH_S3_KEY_PREFIX",
		"s3.presign_expiry":             "PRAVAAH_S3_PRESIGN_EXPIRY",
		"email.provider":                "PRAVAAH_EMAIL_PROVIDER",
		"email.region":                  "PRAVAAH_EMAIL_REGION",
		"email.from_address":            "PRAVAAH_EMAIL_FROM_ADDRESS",
		"email.from_name":               "PRAVAAH_EMAIL_FROM_NAME",
		"email.reviewers":               "PRAVAAH_EMAIL_REVIEWERS",
		"email.frontend_url":            "PRAVAAH_EMAIL_FRONTEND_URL",
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		upper := strings.ToUpper(tier)
		envBindings["llm."+tier+".provider"] = "PRAVAAH_LLM_" + upper + "_PROVIDER"
		envBindings["llm."+tier+".api_key"] = "PRAVAAH_LLM_" + upper + "_API_KEY"
		envBindings["llm."+tier+".default_model"] = "PRAVAAH_LLM_" + upper + "_DEFAULT_MODEL"
		envBindings["llm."+tier+".timeout_secs"] = "PRAVAAH_LLM_" + upper + "_TIMEOUT_SECS"
		envBindings["llm."+tier+".requests_per_minute"] = "PRAVAAH_LLM_" + upper + "_REQUESTS_PER_MINUTE"
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT; honor it unless PRAVAAH_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PRAVAAH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:          serverPort,
		ReadTimeout:   v.GetDuration("server.read_timeout"),
		WriteTimeout:  v.GetDuration("server.write_timeout"),
		Environment:   v.GetString("server.environment"),
		MaxFileSizeMB: v.GetInt64("server.max_file_size_mb"),
		TempDir:       v.GetString("server.temp_dir"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.LLM = LLMConfig{
		Provider:           v.GetString("llm.provider"),
		APIKey:             v.GetString("llm.api_key"),
		DefaultModel:       v.GetString("llm.default_model"),
		TimeoutSecs:        v.GetInt("llm.timeout_secs"),
		RequestsPerMinute:  v.GetInt("llm.requests_per_minute"),
		Primary:            providerConfig(v, "primary"),
		Secondary:          providerConfig(v, "secondary"),
		Tertiary:           providerConfig(v, "tertiary"),
		BreakerFailures:    v.GetUint32("llm.breaker_failures"),
		BreakerOpenTimeout: v.GetDuration("llm.breaker_open_timeout"),
	}

	cfg.OCR = OCRConfig{
		Languages:      splitList(v.GetString("ocr.languages")),
		TessdataPrefix: v.GetString("ocr.tessdata_prefix"),
		PDFToPPMPath:   v.GetString("ocr.pdftoppm_path"),
		RasterDPI:      v.GetInt("ocr.raster_dpi"),
		TimeoutSecs:    v.GetInt("ocr.timeout_secs"),
	}

	cfg.Pipeline = PipelineConfig{
		ConfidenceThreshold: v.GetFloat64("pipeline.confidence_threshold"),
		Region:              v.GetString("pipeline.region"),
		LocationContext:     v.GetString("pipeline.location_context"),
	}

	cfg.LogStore = LogStoreConfig{
		Backend:    strings.ToLower(v.GetString("log_store.backend")),
		Collection: v.GetString("log_store.collection"),
	}
	cfg.Mongo = MongoConfig{
		URI:         v.GetString("mongo.uri"),
		Database:    v.GetString("mongo.database"),
		TimeoutSecs: v.GetInt("mongo.timeout_secs"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}

	cfg.Queue = QueueConfig{
		Backend: strings.ToLower(v.GetString("queue.backend")),
		CSVPath: v.GetString("queue.csv_path"),
	}
	cfg.Redis = RedisConfig{
		Addr:      v.GetString("redis.addr"),
		Password:  v.GetString("redis.password"),
		DB:        v.GetInt("redis.db"),
		KeyPrefix: v.GetString("redis.key_prefix"),
	}

	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		KeyPrefix:     v.GetString("s3.key_prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		Reviewers:   splitList(v.GetString("email.reviewers")),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}

// Validate checks settings that must be present at startup.
func (c *Config) Validate() error {
	for _, p := range c.LLM.Providers() {
		if p.APIKey != "" {
			return nil
		}
	}
	return ErrMissingLLMCredential
}

func providerConfig(v *viper.Viper, tier string) LLMProviderConfig {
	return LLMProviderConfig{
		Provider:          v.GetString("llm." + tier + ".provider"),
		APIKey:            v.GetString("llm." + tier + ".api_key"),
		DefaultModel:      v.GetString("llm." + tier + ".default_model"),
		TimeoutSecs:       v.GetInt("llm." + tier + ".timeout_secs"),
		RequestsPerMinute: v.GetInt("llm." + tier + ".requests_per_minute"),
	}
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
