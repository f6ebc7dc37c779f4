package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database    *dbConfig
	Service     *svcConfig
	Narrative   *narrativeConfig
	Mail        *mailConfig
	Weather     *weatherConfig
	ObjectStore *objectStoreConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"planner"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"PLANNER_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"PLANNER_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string   `envconfig:"PLANNER_BASE_URL" default:"http://localhost:3443"`
	LogLevel        string   `envconfig:"PLANNER_LOG_LEVEL" default:"info"`
	MigrationFolder string   `envconfig:"PLANNER_MIGRATIONS_FOLDER" default:""`
	CorsOrigins     []string `envconfig:"PLANNER_CORS_ORIGINS" default:"*"`
	CatalogPageSize int      `envconfig:"PLANNER_CATALOG_PAGE_SIZE" default:"6"`
	Auth            Auth
}

type Auth struct {
	AuthenticationType string `envconfig:"PLANNER_AUTH" default:"none"`
	JwkCertURL         string `envconfig:"PLANNER_JWK_URL" default:""`
	LocalSecret        string `envconfig:"PLANNER_LOCAL_SECRET" default:""`
}

type narrativeConfig struct {
	Provider string        `envconfig:"LLM_PROVIDER" default:"none"`
	APIKey   string        `envconfig:"LLM_API_KEY" default:""`
	Model    string        `envconfig:"LLM_MODEL" default:""`
	BaseURL  string        `envconfig:"LLM_BASE_URL" default:""`
	Timeout  time.Duration `envconfig:"NARRATIVE_TIMEOUT" default:"20s"`
}

type mailConfig struct {
	Host         string `envconfig:"SMTP_HOST" default:""`
	Port         int    `envconfig:"SMTP_PORT" default:"587"`
	User         string `envconfig:"SMTP_USER" default:""`
	Password     string `envconfig:"SMTP_PASSWORD" default:""`
	From         string `envconfig:"SMTP_FROM" default:"no-reply@localhost"`
	CompanyInbox string `envconfig:"COMPANY_EMAIL" default:""`
}

type weatherConfig struct {
	URL             string        `envconfig:"WEATHER_URL" default:"https://wttr.in"`
	City            string        `envconfig:"WEATHER_CITY" default:"Bogota"`
	RefreshInterval time.Duration `envconfig:"WEATHER_REFRESH_INTERVAL" default:"15m"`
	Timeout         time.Duration `envconfig:"WEATHER_TIMEOUT" default:"5s"`
}

type objectStoreConfig struct {
	Endpoint  string `envconfig:"S3_ENDPOINT" default:""`
	Bucket    string `envconfig:"S3_BUCKET" default:"reports"`
	AccessKey string `envconfig:"S3_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"S3_SECRET_KEY" default:""`
	UseSSL    bool   `envconfig:"S3_USE_SSL" default:"true"`
}

// LLMEnabled reports whether a generative provider is configured.
func (n *narrativeConfig) LLMEnabled() bool {
	return n.Provider != "" && n.Provider != "none" && n.APIKey != ""
}

// SMTPEnabled reports whether mails should go through an SMTP relay.
func (m *mailConfig) SMTPEnabled() bool {
	return m.Host != ""
}

func (o *objectStoreConfig) Enabled() bool {
	return o.Endpoint != ""
}

// New loads the configuration once per process. A .env file in the working directory is
// applied first when it exists; variables already present in the environment win.
func New() (*Config, error) {
	if singleConfig == nil {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		cfg := NewDefault()
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns a configuration with every section allocated and defaults applied,
// ignoring the environment.
func NewDefault() *Config {
	cfg := &Config{
		Database: &dbConfig{
			Type:     "pgsql",
			Hostname: "localhost",
			Port:     "5432",
			Name:     "planner",
			User:     "admin",
			Password: "adminpass",
		},
		Service: &svcConfig{
			Address:         ":3443",
			MetricsAddress:  ":8080",
			BaseUrl:         "http://localhost:3443",
			LogLevel:        "info",
			CorsOrigins:     []string{"*"},
			CatalogPageSize: 6,
			Auth:            Auth{AuthenticationType: "none"},
		},
		Narrative: &narrativeConfig{
			Provider: "none",
			Timeout:  20 * time.Second,
		},
		Mail: &mailConfig{
			Port: 587,
			From: "no-reply@localhost",
		},
		Weather: &weatherConfig{
			URL:             "https://wttr.in",
			City:            "Bogota",
			RefreshInterval: 15 * time.Minute,
			Timeout:         5 * time.Second,
		},
		ObjectStore: &objectStoreConfig{
			Bucket: "reports",
			UseSSL: true,
		},
	}
	return cfg
}
