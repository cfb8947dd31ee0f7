package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BookingStoreMySQL = "mysql"
	BookingStoreRedis = "redis"

	timeoutHeadroom = 5 * time.Second
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	BookingStore string
	BookingsKey  string
	SubmitDelay  time.Duration
	HTTPTimeout  time.Duration
	CacheTTL     time.Duration
	SeedSource   string
	SeedWorkers  int
	SeedRPS      int
}

func Load() Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/bookmyhotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		BookingStore: env("BOOKING_STORE", BookingStoreMySQL),
		BookingsKey:  env("BOOKINGS_KEY", "hotelBookings"),
		SubmitDelay:  time.Duration(atoi("SUBMIT_DELAY_MS", 2000)) * time.Millisecond,
		HTTPTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SeedSource:   env("SEED_SOURCE", "http://localhost:3001"),
		SeedWorkers:  atoi("SEED_WORKERS", 8),
		SeedRPS:      atoi("SEED_RPS", 20),
	}
	if c.BookingStore != BookingStoreMySQL && c.BookingStore != BookingStoreRedis {
		log.Warn().Str("store", c.BookingStore).Msg("unknown BOOKING_STORE, using mysql")
		c.BookingStore = BookingStoreMySQL
	}
	// a booking submission holds its request for the whole confirmation delay
	if floor := c.SubmitDelay + timeoutHeadroom; c.HTTPTimeout < floor {
		log.Warn().
			Dur("timeout", c.HTTPTimeout).
			Dur("submit_delay", c.SubmitDelay).
			Dur("raised_to", floor).
			Msg("request timeout below submit delay, raising it")
		c.HTTPTimeout = floor
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
