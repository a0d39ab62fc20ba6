package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleYAML = `
service:
  name: signal_bot
  log_level: debug
telegram:
  token: file-token
  quest_recipients: [100, 200]
watcher:
  every: 30s
  symbols: [BTCUSDT, SOLUSDT]
  interval: 5m
  limit: 60
quests:
  min_delay: 1m
  max_delay: 3m
  silent_seed: true
  feeds:
    - name: galxe
      url: https://example.org/quests
      headers:
        Accept: application/json
storage:
  backend: memory
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values_test.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Telegram.Token != "file-token" {
		t.Errorf("token %q", cfg.Telegram.Token)
	}
	if cfg.Watcher.Every != 30*time.Second || cfg.Watcher.Interval != "5m" || cfg.Watcher.Limit != 60 {
		t.Errorf("watcher %+v", cfg.Watcher)
	}
	if len(cfg.Watcher.Symbols) != 2 || cfg.Watcher.Symbols[1] != "SOLUSDT" {
		t.Errorf("symbols %v", cfg.Watcher.Symbols)
	}
	if !cfg.Quests.SilentSeed || len(cfg.Quests.Feeds) != 1 || cfg.Quests.Feeds[0].Headers["Accept"] != "application/json" {
		t.Errorf("quests %+v", cfg.Quests)
	}
	if len(cfg.Telegram.QuestRecipients) != 2 {
		t.Errorf("recipients %v", cfg.Telegram.QuestRecipients)
	}
	// дефолты, которых нет в файле
	if cfg.Binance.BaseURL != "https://api.binance.com" || cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("defaults lost: %q %s", cfg.Binance.BaseURL, cfg.HTTP.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(tokenTelegramENV, "env-token")
	t.Setenv(storageBackendENV, BackendRedis)
	t.Setenv(redisAddrENV, "redis:6380")
	t.Setenv("QUEST_RECIPIENTS", "1, 2,x,3")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Errorf("token %q", cfg.Telegram.Token)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Storage.Redis.Addr != "redis:6380" {
		t.Errorf("storage %+v", cfg.Storage)
	}
	if got := cfg.Telegram.QuestRecipients; len(got) != 3 || got[2] != 3 {
		t.Errorf("recipients %v", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Defaults()
		c.Telegram.Token = "t"
		c.Storage.Backend = BackendMemory
		return c
	}

	cases := map[string]func(*Config){
		"no token":         func(c *Config) { c.Telegram.Token = "" },
		"unknown backend":  func(c *Config) { c.Storage.Backend = "etcd" },
		"postgres no dsn":  func(c *Config) { c.Storage.Backend = BackendPostgres; c.DB = "" },
		"tiny limit":       func(c *Config) { c.Watcher.Limit = 5 },
		"inverted delay":   func(c *Config) { c.Quests.MinDelay, c.Quests.MaxDelay = time.Minute, time.Second },
		"feed without url": func(c *Config) { c.Quests.Feeds = []Feed{{Name: "a"}} },
		"bad interval":     func(c *Config) { c.Watcher.Interval = "7m" },
		"bad symbol":       func(c *Config) { c.Watcher.Symbols = []string{"BTC USDT"} },
		"duplicate feed": func(c *Config) {
			c.Quests.Feeds = []Feed{{Name: "a", URL: "u"}, {Name: "a", URL: "v"}}
		},
	}

	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for name, mutate := range cases {
		c := valid()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoad_NormalizesWatcher(t *testing.T) {
	body := strings.Replace(sampleYAML, "symbols: [BTCUSDT, SOLUSDT]", "symbols: [btc, eth/usdt, BTCUSDT, \"\"]", 1)
	body = strings.Replace(body, "interval: 5m", "interval: 60M", 1)

	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Watcher.Interval != "1h" {
		t.Errorf("interval %q, want 1h", cfg.Watcher.Interval)
	}
	if got, want := cfg.Watcher.Symbols, []string{"BTCUSDT", "ETHUSDT"}; !reflect.DeepEqual(got, want) {
		t.Errorf("symbols %v, want %v", got, want)
	}
}

func TestLoad_RejectsBadWatcherInterval(t *testing.T) {
	body := strings.Replace(sampleYAML, "interval: 5m", "interval: 5min", 1)
	if _, err := Load(writeConfig(t, body)); err == nil || !strings.Contains(err.Error(), "watcher.interval") {
		t.Fatalf("expected watcher.interval error, got %v", err)
	}
}

func TestLoad_WatcherEnv(t *testing.T) {
	t.Setenv("WATCHER_SYMBOLS", "sol,doge")
	t.Setenv("WATCHER_INTERVAL", "15m")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Watcher.Symbols; !reflect.DeepEqual(got, []string{"SOLUSDT", "DOGEUSDT"}) || cfg.Watcher.Interval != "15m" {
		t.Errorf("watcher %+v", cfg.Watcher)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
