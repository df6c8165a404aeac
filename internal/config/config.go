package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"cashflow-mcp/internal/forecast"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string `mapstructure:"data_path"`
	LogDir              string `mapstructure:"logs_folder"`
	ExportDir           string `mapstructure:"-"`
	ScenarioPath        string `mapstructure:"scenario_file"`
	ProfilesPath        string `mapstructure:"profiles_file"`
	Seed                int64  `mapstructure:"cashflow_seed"`
	ForecastHorizon     int    `mapstructure:"forecast_horizon_days"`
	EnableMermaidCharts bool   `mapstructure:"enable_mermaid_charts"`
	HTTP                HTTP   `mapstructure:",squash"`
}

// HTTP configures the REST surface.
type HTTP struct {
	Host           string   `mapstructure:"http_host"`
	Port           int      `mapstructure:"http_port"`
	AllowedOrigins []string `mapstructure:"http_allowed_origins"`
}

// Address is host:port for net/http.
func (h HTTP) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first, so an MCP client launching us from anywhere still finds it
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	defaultData := "."
	if exeDir != "" {
		defaultData = exeDir
	}

	v := viper.New()
	v.SetDefault("DATA_PATH", defaultData)
	v.SetDefault("LOGS_FOLDER", "")
	v.SetDefault("SCENARIO_FILE", "")
	v.SetDefault("PROFILES_FILE", "")
	v.SetDefault("CASHFLOW_SEED", 0)
	v.SetDefault("FORECAST_HORIZON_DAYS", forecast.DefaultHorizon)
	v.SetDefault("ENABLE_MERMAID_CHARTS", false)
	v.SetDefault("HTTP_HOST", "localhost")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &AppConfig{}
	err = v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	if cfg.DataPath == "" {
		cfg.DataPath = defaultData
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.DataPath, "logs")
	}
	cfg.ExportDir = filepath.Join(cfg.DataPath, "exports")
	if cfg.ForecastHorizon <= 0 {
		cfg.ForecastHorizon = forecast.DefaultHorizon
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTP.Port)
	}

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cfg.LogDir).Msg("Failed to create log directory")
	}

	return cfg, nil
}
