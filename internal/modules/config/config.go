package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"signal_bot/internal/helper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	redisAddrENV      = "REDIS_ADDR"
	redisPasswordENV  = "REDIS_PASSWORD"
	storageBackendENV = "STORAGE_BACKEND"
	proxyENV          = "HTTPS_PROXY"
	logLevelENV       = "LOG_LEVEL"
	healthAddrENV     = "HEALTH_ADDR"

	defaultConfigDir = "configs/"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Feed: одна лента квестов.
type Feed struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

// Config ...
type Config struct {
	Service struct {
		Name        string `yaml:"name"`
		LogLevel    string `yaml:"log_level"`
		Development bool   `yaml:"development"`
		HealthAddr  string `yaml:"health_addr"`
	} `yaml:"service"`

	Telegram struct {
		Token string `yaml:"token"`
		// кому слать новые квесты
		QuestRecipients []int64 `yaml:"quest_recipients"`
	} `yaml:"telegram"`

	HTTP struct {
		Timeout time.Duration `yaml:"timeout"`
		Proxy   string        `yaml:"proxy"`
	} `yaml:"http"`

	Binance struct {
		BaseURL string `yaml:"base_url"`
		P2PURL  string `yaml:"p2p_url"`
		Fiat    string `yaml:"fiat"`
	} `yaml:"binance"`

	Bybit struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"bybit"`

	Watcher struct {
		Every    time.Duration `yaml:"every"`
		Symbols  []string      `yaml:"symbols"`
		Interval string        `yaml:"interval"`
		Limit    int           `yaml:"limit"`
	} `yaml:"watcher"`

	Quests struct {
		MinDelay   time.Duration `yaml:"min_delay"`
		MaxDelay   time.Duration `yaml:"max_delay"`
		SilentSeed bool          `yaml:"silent_seed"`
		Feeds      []Feed        `yaml:"feeds"`
	} `yaml:"quests"`

	Storage struct {
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	DB string `yaml:"db_dsn"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`
}

// Defaults заполняет значения до разбора yaml, файл их перекрывает.
func Defaults() Config {
	var c Config
	c.Service.Name = "signal_bot"
	c.Service.LogLevel = "info"
	c.Service.HealthAddr = ":8080"

	c.HTTP.Timeout = 10 * time.Second

	c.Binance.BaseURL = "https://api.binance.com"
	c.Binance.P2PURL = "https://p2p.binance.com"
	c.Binance.Fiat = "VND"
	c.Bybit.BaseURL = "https://api2.bybit.com"

	c.Watcher.Every = time.Minute
	c.Watcher.Symbols = []string{"BTCUSDT", "ETHUSDT"}
	c.Watcher.Interval = "1m"
	c.Watcher.Limit = 100

	c.Quests.MinDelay = 2 * time.Minute
	c.Quests.MaxDelay = 5 * time.Minute

	c.Storage.Backend = BackendRedis
	c.Storage.Redis.Addr = "localhost:6379"

	c.Tracing.Host = "localhost"
	c.Tracing.Port = 6831
	return c
}

func NewConfig() (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	return Load(defaultConfigDir + configFileName)
}

// Load читает yaml, применяет env и валидирует.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()

	config := Defaults()
	if err = yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, errors.Wrap(err, "decode config file")
	}

	config.applyEnv()
	config.normalize()

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	c.Telegram.Token = getenvDefault(tokenTelegramENV, c.Telegram.Token)
	c.DB = getenvDefault(databaseDSN, c.DB)
	c.Storage.Backend = getenvDefault(storageBackendENV, c.Storage.Backend)
	c.Storage.Redis.Addr = getenvDefault(redisAddrENV, c.Storage.Redis.Addr)
	c.Storage.Redis.Password = getenvDefault(redisPasswordENV, c.Storage.Redis.Password)
	c.HTTP.Proxy = getenvDefault(proxyENV, c.HTTP.Proxy)
	c.Service.LogLevel = getenvDefault(logLevelENV, c.Service.LogLevel)
	c.Service.HealthAddr = getenvDefault(healthAddrENV, c.Service.HealthAddr)

	c.Service.Development = boolFromEnv("DEVELOPMENT", c.Service.Development)
	c.Quests.SilentSeed = boolFromEnv("QUESTS_SILENT_SEED", c.Quests.SilentSeed)
	c.Watcher.Every = durationFromEnv("WATCHER_EVERY", c.Watcher.Every)
	c.Watcher.Limit = intFromEnv("WATCHER_LIMIT", c.Watcher.Limit)
	c.Watcher.Interval = getenvDefault("WATCHER_INTERVAL", c.Watcher.Interval)
	if v := os.Getenv("WATCHER_SYMBOLS"); v != "" {
		c.Watcher.Symbols = strings.Split(v, ",")
	}
	c.Tracing.Enabled = boolFromEnv("TRACING_ENABLED", c.Tracing.Enabled)

	if v := os.Getenv("QUEST_RECIPIENTS"); v != "" {
		c.Telegram.QuestRecipients = parseIDs(v)
	}
}

// normalize приводит символы и интервал вотчера к виду Binance: "btc" -> BTCUSDT, 60m -> 1h.
func (c *Config) normalize() {
	c.Watcher.Interval = helper.NormTF(c.Watcher.Interval)

	symbols := make([]string, 0, len(c.Watcher.Symbols))
	seen := make(map[string]struct{}, len(c.Watcher.Symbols))
	for _, raw := range c.Watcher.Symbols {
		s := helper.NormalizeSymbol(raw)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		symbols = append(symbols, s)
	}
	c.Watcher.Symbols = symbols
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("config: telegram token is required")
	}

	switch c.Storage.Backend {
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("config: storage.redis.addr is required for redis backend")
		}
	case BackendPostgres:
		if c.DB == "" {
			return errors.New("config: db_dsn is required for postgres backend")
		}
	case BackendMemory:
	default:
		return errors.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}

	if !helper.ValidInterval(c.Watcher.Interval) {
		return errors.Errorf("config: watcher.interval %q is not one of %s",
			c.Watcher.Interval, strings.Join(helper.Intervals(), " "))
	}
	for _, s := range c.Watcher.Symbols {
		if !validSymbol(s) {
			return errors.Errorf("config: watcher.symbols: bad symbol %q", s)
		}
	}
	if c.Watcher.Every <= 0 {
		return errors.New("config: watcher.every must be positive")
	}
	// RSI(14) нужно минимум 15 свечей
	if c.Watcher.Limit < 15 || c.Watcher.Limit > 1000 {
		return errors.Errorf("config: watcher.limit %d out of [15,1000]", c.Watcher.Limit)
	}
	if c.Quests.MinDelay <= 0 || c.Quests.MaxDelay < c.Quests.MinDelay {
		return errors.Errorf("config: quests delay range [%s,%s] is invalid", c.Quests.MinDelay, c.Quests.MaxDelay)
	}

	seen := make(map[string]struct{}, len(c.Quests.Feeds))
	for i, f := range c.Quests.Feeds {
		if f.Name == "" || f.URL == "" {
			return errors.Errorf("config: quests.feeds[%d] needs name and url", i)
		}
		if _, dup := seen[f.Name]; dup {
			return errors.Errorf("config: duplicate feed name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// validSymbol: только A-Z и 0-9, как в символах Binance.
func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func parseIDs(v string) []int64 {
	parts := strings.Split(v, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
