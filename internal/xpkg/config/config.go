package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DB     *Postgres `yaml:"database"`
	Server *Server   `yaml:"server"`
	App    *App      `yaml:"app"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type Server struct {
	Port int `yaml:"port"`
}

type App struct {
	Timezone  string `yaml:"timezone"`
	BackupDir string `yaml:"backup_dir"`
	LogLevel  string `yaml:"log_level"`
}

// LoadConfig reads the yaml config at configPath, then applies overrides from
// the environment (a .env file next to the binary is honored if present).
func LoadConfig(configPath string) (*Config, error) {
	// Missing .env is fine, real deployments set env vars directly.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cnf := &Config{
		DB:     &Postgres{},
		Server: &Server{},
		App:    &App{},
	}
	if err := yaml.Unmarshal(data, cnf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(cnf)
	applyDefaults(cnf)
	return cnf, nil
}

func applyEnv(cnf *Config) {
	cnf.DB.Host = getEnv("DB_HOST", cnf.DB.Host)
	cnf.DB.Port = getEnv("DB_PORT", cnf.DB.Port)
	cnf.DB.User = getEnv("DB_USER", cnf.DB.User)
	cnf.DB.Password = getEnv("DB_PASSWORD", cnf.DB.Password)
	cnf.DB.Database = getEnv("DB_NAME", cnf.DB.Database)

	cnf.App.Timezone = getEnv("APP_TIMEZONE", cnf.App.Timezone)
	cnf.App.BackupDir = getEnv("APP_BACKUP_DIR", cnf.App.BackupDir)
	cnf.App.LogLevel = getEnv("APP_LOG_LEVEL", cnf.App.LogLevel)
}

func applyDefaults(cnf *Config) {
	if cnf.DB.Host == "" {
		cnf.DB.Host = "localhost"
	}
	if cnf.DB.Port == "" {
		cnf.DB.Port = "5432"
	}
	if cnf.Server.Port == 0 {
		cnf.Server.Port = 3000
	}
	if cnf.App.Timezone == "" {
		cnf.App.Timezone = "Asia/Almaty"
	}
	if cnf.App.BackupDir == "" {
		cnf.App.BackupDir = "backups"
	}
	if cnf.App.LogLevel == "" {
		cnf.App.LogLevel = "INFO"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
