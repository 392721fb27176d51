package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
	Schema   string
}

// Cache holds one TTL per cached resource plus the bucket capacity of keyed stores.
type Cache struct {
	Categories     time.Duration
	MenuItems      time.Duration
	Variants       time.Duration
	ProteinTypes   time.Duration
	Customizations time.Duration
	CategoryItems  time.Duration
	Tables         time.Duration
	Capacity       int
}

// Kafka is optional: no brokers means menu publishes are only picked up by polling.
type Kafka struct {
	Brokers []string
	Topic   string
	Group   string
	Workers int
}

func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

type Publish struct {
	PollInterval time.Duration
	MarkerFile   string
	RedisAddr    string
	RedisKey     string
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr string
	AppEnv   string

	Pg      Postgres
	Cache   Cache
	Kafka   Kafka
	Publish Publish
	Breaker Breaker
	Retry   Retry
}

func (c Config) Development() bool { return c.AppEnv == "development" }

// Load fatals on error; it runs before a logger exists.
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr: envDefault("HTTP_ADDR", ":8081"),
		AppEnv:   envDefault("APP_ENV", "production"),

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
			Schema:   strings.TrimSpace(envDefault("DB_SCHEMA", "public")),
		},

		Cache: Cache{
			Categories:     envDurationMS("CACHE_TTL_CATEGORIES", 5*time.Minute),
			MenuItems:      envDurationMS("CACHE_TTL_MENU_ITEMS", 2*time.Minute),
			Variants:       envDurationMS("CACHE_TTL_VARIANTS", 2*time.Minute),
			ProteinTypes:   envDurationMS("CACHE_TTL_PROTEIN_TYPES", 5*time.Minute),
			Customizations: envDurationMS("CACHE_TTL_CUSTOMIZATIONS", 5*time.Minute),
			CategoryItems:  envDurationMS("CACHE_TTL_CATEGORY_ITEMS", time.Minute),
			Tables:         envDurationMS("CACHE_TTL_TABLES", 5*time.Minute),
			Capacity:       envInt("CACHE_CAP", 128),
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(envDefault("KAFKA_TOPIC", "menu.published")),
			Group:   strings.TrimSpace(envDefault("KAFKA_GROUP", "pos-core")),
			Workers: envInt("KAFKA_WORKERS", 1),
		},

		Publish: Publish{
			PollInterval: envDurationMS("PUBLISH_POLL_INTERVAL", 30*time.Second),
			MarkerFile:   envDefault("PUBLISH_MARKER_FILE", "data/last_published.json"),
			RedisAddr:    strings.TrimSpace(os.Getenv("PUBLISH_REDIS_ADDR")),
			RedisKey:     envDefault("PUBLISH_REDIS_KEY", "pos:menu:last_published"),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 3),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 5),
			Base:         envDurationMS("RETRY_BASE", 100*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 5*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"PG_HOST":     c.Pg.Host,
		"PG_DB":       c.Pg.DB,
		"PG_USER":     c.Pg.User,
		"PG_PASSWORD": c.Pg.Password,
	}
	if c.Kafka.Enabled() {
		req["KAFKA_TOPIC"] = c.Kafka.Topic
		req["KAFKA_GROUP"] = c.Kafka.Group
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}
	return nil
}

func (c *Config) normalize() {
	if c.Cache.Capacity <= 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 1", c.Cache.Capacity)
		c.Cache.Capacity = 1
	}
	if c.Retry.Attempts < 1 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 1", c.Retry.Attempts)
		c.Retry.Attempts = 1
	}
	if c.Retry.Base <= 0 {
		log.Printf("RETRY_BASE is %v, adjusting to 100ms", c.Retry.Base)
		c.Retry.Base = 100 * time.Millisecond
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
		c.Retry.Max = c.Retry.Base
	}
	if c.Publish.PollInterval <= 0 {
		log.Printf("PUBLISH_POLL_INTERVAL is %v, adjusting to 30s", c.Publish.PollInterval)
		c.Publish.PollInterval = 30 * time.Second
	}
	if c.Kafka.Workers < 1 {
		c.Kafka.Workers = 1
	}
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	if c.Pg.Schema != "" {
		q.Set("search_path", c.Pg.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS accepts plain milliseconds ("1500") or Go durations ("1.5s", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
