package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS     = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS    = "0.0.0.0:8080"
	MYSQL_DSN       = ""               // MySQL will be used if this is set
	POSTGRES_DSN    = ""               // Postgres will be used if MYSQL_DSN is not configured and this is set
	SQLITE_FILE     = "restofinder.db" // SQLite is the fallback when neither of the above is set
	DEBUG_MODE      = true
	DEFAULT_COUNTRY = "Canada" // Forced on every user and restaurant, clients cannot set it
	// TIMEZONE is used to decide whether a restaurant is "currently open".
	// Empty means the server's local time zone.
	TIMEZONE    = ""
	SESSION_KEY = "change this session key"
	// Redis backs the response cache. Caching is disabled when Redis can't be reached.
	REDIS_ADDR     = ""
	REDIS_PASSWORD = ""
	REDIS_DB       = 0
	CACHE_TTL      = 30 // seconds
	// RabbitMQ is used to publish favourite/blacklist changes. Disabled if empty.
	AMQP_URL      = ""
	AMQP_EXCHANGE = "restofinder.events"
)

func init() {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("DEFAULT_COUNTRY", &DEFAULT_COUNTRY)
	readEnvString("TIMEZONE", &TIMEZONE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("REDIS_ADDR", &REDIS_ADDR)
	readEnvString("REDIS_PASSWORD", &REDIS_PASSWORD)
	readEnvInt("REDIS_DB", &REDIS_DB)
	readEnvInt("CACHE_TTL", &CACHE_TTL)
	readEnvString("AMQP_URL", &AMQP_URL)
	readEnvString("AMQP_EXCHANGE", &AMQP_EXCHANGE)
}

// Dialect returns the name of the database that will be used, based on the DSNs configured
func Dialect() string {
	if MYSQL_DSN != "" {
		return "mysql"
	}
	if POSTGRES_DSN != "" {
		return "postgres"
	}
	return "sqlite"
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}

// Location is where "currently open" is evaluated
func Location() *time.Location {
	if TIMEZONE == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(TIMEZONE)
	if err != nil {
		log.Printf("Invalid TIMEZONE %q, using local time: %v", TIMEZONE, err)
		return time.Local
	}
	return loc
}
