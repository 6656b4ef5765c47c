package config

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/shop_schema/pkg/config"
	pkgdb "github.com/Skotchmaster/shop_schema/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

// Load reads .env when present, then the process environment.
func Load(envFiles ...string) ServiceConfig {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = pkgdb.DefaultDSN
	}
	config.MustPositive(cfg.ServerPort, "SERVER_PORT")

	return ServiceConfig{Config: cfg}
}

func (c ServiceConfig) DBOptions() pkgdb.Options {
	return pkgdb.Options{DSN: c.DatabaseURL, Echo: c.DBEcho}
}

func (c ServiceConfig) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c ServiceConfig) SearchEnabled() bool { return c.ESURL != "" }

func (c ServiceConfig) AdminEnabled() bool { return len(c.JWTAccessSecret) > 0 }
