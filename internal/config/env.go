package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type DBEnv struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type PlannerEnv struct {
	BaseURL string
	APIKey  string
	Model   string
}

type Env struct {
	AppAddr        string
	GinMode        string
	JWTSecret      string
	MigrationsPath string
	CommissionPct  string
	DB             DBEnv
	Planner        PlannerEnv
}

func LoadEnv() Env {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret:      env("JWT_SECRET", "super-secret-key-change-me"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		CommissionPct:  env("COMMISSION_PCT", "10"),
		DB: DBEnv{
			Host:     env("DB_HOST", "127.0.0.1"),
			Port:     env("DB_PORT", "3306"),
			Name:     env("DB_NAME", "safari_connector"),
			User:     env("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Planner: PlannerEnv{
			BaseURL: env("PLANNER_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  os.Getenv("PLANNER_API_KEY"),
			Model:   env("PLANNER_MODEL", "gpt-4o-mini"),
		},
	}
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
