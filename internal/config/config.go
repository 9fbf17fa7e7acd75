// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message;
// optional ones fall back to sensible defaults so a bare deployment still
// boots.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	GatewaySecret string // secret the presentation gateway signs its JWTs with

	VenueTZ   string // IANA timezone the venue operates in
	OpenHour  int    // first offerable hour of the day (inclusive)
	CloseHour int    // last offerable hour of the day (inclusive)

	// Venue coordinates for the confirmation screen.  Optional: when
	// absent or malformed the confirmation simply omits the map location.
	VenueLat, VenueLon float64
	HasLocation        bool

	SessionTTLMin int    // idle minutes before an unfinished draft is dropped
	RabbitURL     string // operator notification broker (optional)
}

// Load reads configuration values from environment variables and returns
// a Config.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		GatewaySecret: must("GATEWAY_JWT_SECRET"),
		VenueTZ:       envDefault("VENUE_TZ", "Asia/Yerevan"),
		OpenHour:      intDefault("OPEN_HOUR", 10),
		CloseHour:     intDefault("CLOSE_HOUR", 22),
		SessionTTLMin: intDefault("SESSION_TTL_MIN", 30),
		RabbitURL:     firstEnv("RABBITMQ_URL", "AMQP_URL"),
	}

	latRaw, lonRaw := os.Getenv("VENUE_LAT"), os.Getenv("VENUE_LON")
	if latRaw != "" || lonRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lon, errLon := strconv.ParseFloat(lonRaw, 64)
		if errLat != nil || errLon != nil {
			// Degrades the confirmation screen only; booking still works.
			log.Printf("config: invalid venue coordinates lat=%q lon=%q; location disabled", latRaw, lonRaw)
		} else {
			cfg.VenueLat, cfg.VenueLon, cfg.HasLocation = lat, lon, true
		}
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envDefault returns the variable's value or the default when unset.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intDefault is like envDefault but converts the value to an integer.  An
// unparseable value is fatal: silently booting with a wrong operating
// window would offer slots the venue cannot serve.
func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

// firstEnv returns the first non-empty value among the given variables.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
