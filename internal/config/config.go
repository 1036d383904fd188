package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Format FormatConfig `yaml:"format" mapstructure:"format"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FormatConfig holds the default formatting behavior; command flags
// override these per run.
type FormatConfig struct {
	CorrectDates      bool   `yaml:"correct_dates" mapstructure:"correct_dates"`
	UppercaseSurnames bool   `yaml:"uppercase_surnames" mapstructure:"uppercase_surnames"`
	AutoInferCivility bool   `yaml:"auto_infer_civility" mapstructure:"auto_infer_civility"`
	AutoInferUserType bool   `yaml:"auto_infer_user_type" mapstructure:"auto_infer_user_type"`
	Strict            bool   `yaml:"strict" mapstructure:"strict"`
	CivilityFallback  string `yaml:"civility_fallback" mapstructure:"civility_fallback"`
	DefaultUserType   string `yaml:"default_user_type" mapstructure:"default_user_type"`
	Charset           string `yaml:"charset" mapstructure:"charset"`
}

// ServerConfig configures the HTTP upload server.
type ServerConfig struct {
	Port          int `yaml:"port" mapstructure:"port"`
	RatePerMinute int `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	MaxUploadMB   int `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("IMPORTFMT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "importfmt.db")
	v.SetDefault("format.correct_dates", true)
	v.SetDefault("format.uppercase_surnames", true)
	v.SetDefault("format.auto_infer_civility", true)
	v.SetDefault("format.auto_infer_user_type", true)
	v.SetDefault("format.strict", false)
	v.SetDefault("format.civility_fallback", "")
	v.SetDefault("format.default_user_type", "")
	v.SetDefault("format.charset", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_minute", 30)
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
