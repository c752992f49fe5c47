package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/saeidalz13/battleship-solo/controller"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	"github.com/saeidalz13/battleship-solo/internal/logger"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const DefaultPort = 9191

type Config struct {
	Stage       string
	Port        int
	DatabaseUrl string
	BoardSize   int
	StartDelay  time.Duration
	ThinkDelay  time.Duration
	LogLevel    log.Level
	Verbose     bool
}

// Load reads .env outside prod and then the process environment. A missing
// .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != logger.StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:       getEnv("STAGE", logger.StageDev),
		DatabaseUrl: os.Getenv("DATABASE_URL"),
	}
	if cfg.Stage != logger.StageDev && cfg.Stage != logger.StageProd {
		return Config{}, cerr.ErrInvalidStage(cfg.Stage)
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return Config{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, cerr.ErrInvalidEnvValue("PORT", os.Getenv("PORT"))
	}

	if cfg.BoardSize, err = getEnvInt("BOARD_SIZE", mb.DefaultGridSize); err != nil {
		return Config{}, err
	}
	if err := mb.ValidateFleet(cfg.BoardSize, mb.DefaultFleet); err != nil {
		return Config{}, err
	}

	if cfg.StartDelay, err = getEnvDuration("START_DELAY", controller.DefaultStartDelay); err != nil {
		return Config{}, err
	}
	if cfg.ThinkDelay, err = getEnvDuration("THINK_DELAY", controller.DefaultThinkDelay); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = log.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if cfg.LogLevel, err = log.ParseLevel(raw); err != nil {
			return Config{}, cerr.ErrInvalidEnvValue("LOG_LEVEL", raw)
		}
	}

	if raw := os.Getenv("VERBOSE"); raw != "" {
		if cfg.Verbose, err = strconv.ParseBool(raw); err != nil {
			return Config{}, cerr.ErrInvalidEnvValue("VERBOSE", raw)
		}
	}

	return cfg, nil
}

func MustLoad(envFiles ...string) Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, cerr.ErrInvalidEnvValue(key, raw)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, cerr.ErrInvalidEnvValue(key, raw)
	}
	return d, nil
}
