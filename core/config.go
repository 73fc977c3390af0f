package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the process configuration. It is loaded once at startup from
// the environment (optionally seeded by a config/.env.<env> file).
var Conf *Config

type (
	Config struct {
		Debug     bool
		TestMode  bool
		Env       string
		Build     string
		AppName   string
		SecretKey string

		DefaultFromEmail string
		SendgridApiKey   string
		RollbarToken     string
		FrontendBaseURL  string

		Admin    AdminConfig
		Server   ServerConfig
		Database DatabaseConfig
	}

	// AdminConfig carries the static administrator credentials. They are
	// supplied by the environment only; when unset, admin login can never
	// succeed.
	AdminConfig struct {
		Email    string
		Password string
	}

	ServerConfig struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		// Path is the bolt database file. Used when URL is empty.
		Path string
		// URL is a PostgreSQL DSN. When set, the postgres record store is used.
		URL string
	}
)

func (c Config) DefaultFromEmailAddr() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Walimu")
	v.SetDefault("secretKey", "w4l!mu-)do5$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("databasePath", "walimu.db")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		FrontendBaseURL:  v.GetString("frontendBaseUrl"),
		Admin: AdminConfig{
			Email:    v.GetString("adminEmail"),
			Password: v.GetString("adminPassword"),
		},
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Port:               v.GetString("serverPort"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("databasePath"),
			URL:  v.GetString("databaseUrl"),
		},
	}
}
