package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultListenAddr = ":8080"
const defaultMigrationsDir = "migrations"
const defaultAuthUsername = "ledger-api"

// bcrypt of "ledger-secret"; override AUTH_PASSWORD_HASH outside local dev.
const defaultAuthPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const defaultTokenTTL = 30 * time.Minute

type Config struct {
	DatabaseDSN      string
	MigrationsDir    string
	ListenAddr       string
	AuthUsername     string
	AuthPasswordHash string
	TokenTTL         time.Duration
	KafkaBrokers     []string
	KafkaTopic       string
}

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = defaultMigrationsDir
	}

	authUsername := strings.TrimSpace(os.Getenv("AUTH_USERNAME"))
	if authUsername == "" {
		authUsername = defaultAuthUsername
	}

	authPasswordHash := strings.TrimSpace(os.Getenv("AUTH_PASSWORD_HASH"))
	if authPasswordHash == "" {
		authPasswordHash = defaultAuthPasswordHash
	}

	tokenTTL := defaultTokenTTL
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		tokenTTL = parsed
	}

	var kafkaBrokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if b := strings.TrimSpace(broker); b != "" {
				kafkaBrokers = append(kafkaBrokers, b)
			}
		}
	}

	kafkaTopic := strings.TrimSpace(os.Getenv("KAFKA_TOPIC"))
	if kafkaTopic == "" {
		kafkaTopic = "transfer_completed"
	}

	return Config{
		DatabaseDSN:      normalizeConnectionString(conn),
		MigrationsDir:    migrationsDir,
		ListenAddr:       listenAddr,
		AuthUsername:     authUsername,
		AuthPasswordHash: authPasswordHash,
		TokenTTL:         tokenTTL,
		KafkaBrokers:     kafkaBrokers,
		KafkaTopic:       kafkaTopic,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
