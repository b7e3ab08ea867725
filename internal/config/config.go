package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "FINTRACK_"

type Application struct {
	Server     Server     `koanf:"server"`
	Database   Database   `koanf:"db"`
	Validation Validation `koanf:"validation"`
	Auth       Auth       `koanf:"auth"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	MaxConns int32  `koanf:"maxconns"`
	MinConns int32  `koanf:"minconns"`
	// Migrations is the directory of SQL migrations. When empty it is searched upward from the working directory.
	Migrations string `koanf:"migrations"`
}

type Validation struct {
	// DuplicateCheckIncludesYear makes the duplicate description rule compare the year as well as the month.
	// Disabled by default, so the same description in August 2022 and August 2023 collides.
	DuplicateCheckIncludesYear bool `koanf:"duplicatecheckincludesyear"`
}

type Auth struct {
	TokenTTL  time.Duration `koanf:"tokenttl"`
	Bootstrap Bootstrap     `koanf:"bootstrap"`
}

// Bootstrap is an account created on startup when it does not exist yet.
type Bootstrap struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

func Defaults() Application {
	return Application{
		Server: Server{Port: 8080},
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "fintrack",
			Pass:     "",
			Name:     "fintrack",
			Schema:   "fintrack",
			MaxConns: 25,
			MinConns: 2,
		},
		Validation: Validation{DuplicateCheckIncludesYear: false},
		Auth: Auth{
			TokenTTL: 24 * time.Hour,
		},
	}
}

// Load layers defaults, the YAML file at path and FINTRACK_ environment variables, in that order.
// A missing file or .env is not an error.
func Load(path string) (Application, error) {
	if err := loadDotEnv(); err != nil {
		return Application{}, err
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Application{}, fmt.Errorf("loading defaults: %w", err)
	}
	if err := loadFile(k, path); err != nil {
		return Application{}, err
	}
	err := k.Load(env.Provider(".", env.Opt{Prefix: envPrefix, TransformFunc: envKey}), nil)
	if err != nil {
		return Application{}, fmt.Errorf("loading environment: %w", err)
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := app.Validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Validate rejects settings the application cannot start with.
func (a Application) Validate() error {
	var problems []string
	if a.Server.Port <= 0 || a.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", a.Server.Port))
	}
	if a.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.tokenttl must be positive")
	}
	if a.Database.MinConns > a.Database.MaxConns && a.Database.MaxConns > 0 {
		problems = append(problems, "db.minconns exceeds db.maxconns")
	}
	if a.Auth.Bootstrap.Username != "" && a.Auth.Bootstrap.Password == "" {
		problems = append(problems, "auth.bootstrap.password is required with a bootstrap username")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	switch {
	case err == nil:
		log.Debug("Loaded .env file")
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("No .env file found, using process environment")
	default:
		return fmt.Errorf("loading .env file: %w", err)
	}
	return nil
}

func loadFile(k *koanf.Koanf, path string) error {
	err := k.Load(file.Provider(path), yaml.Parser())
	switch {
	case err == nil:
		log.Infof("Loaded configuration from file: %s", path)
	case errors.Is(err, fs.ErrNotExist):
		log.Infof("Config file not found at %s, using defaults and environment variables", path)
	default:
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// envKey maps FINTRACK_AUTH_BOOTSTRAP_USERNAME to auth.bootstrap.username.
func envKey(key, value string) (string, any) {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", "."), value
}
