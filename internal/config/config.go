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
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	OCR      OCRConfig      `yaml:"ocr" mapstructure:"ocr"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// OCRConfig configures text extraction from PDFs and images.
type OCRConfig struct {
	PdfToTextPath string  `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	TesseractPath string  `yaml:"tesseract_path" mapstructure:"tesseract_path"`
	VisionKey     string  `yaml:"vision_api_key" mapstructure:"vision_api_key"`
	VisionModel   string  `yaml:"vision_model" mapstructure:"vision_model"`
	VisionRPS     float64 `yaml:"vision_rps" mapstructure:"vision_rps"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Dir            string `yaml:"dir" mapstructure:"dir"`
	MaxConcurrency int    `yaml:"max_concurrency" mapstructure:"max_concurrency"`
	Limit          int    `yaml:"limit" mapstructure:"limit"`
}

// ScheduleConfig points at an optional YAML fixture overlay.
type ScheduleConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ExportConfig configures report output.
type ExportConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the read-only records API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "invoices.db")
	v.SetDefault("ocr.pdftotext_path", "pdftotext")
	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.vision_model", "claude-haiku-4-5-20251001")
	v.SetDefault("ocr.vision_rps", 1.0)
	v.SetDefault("batch.max_concurrency", 5)
	v.SetDefault("batch.limit", 0)
	v.SetDefault("export.output", "invoice_report.xlsx")
	v.SetDefault("export.format", "xlsx")
	v.SetDefault("server.port", 8080)
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
