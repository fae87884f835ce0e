package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/feed-announcer/internal/modules/relay/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const DefaultFeedURL = "https://www.rappler.com/feed"

type Config struct {
	TelegramBotToken string              `koanf:"telegram_bot_token"`
	TelegramAPIURL   string              `koanf:"telegram_api_url"`
	ChatID           int64               `koanf:"-"`
	FeedURL          string              `koanf:"feed_url"`
	PollInterval     time.Duration       `koanf:"-"`
	SendDelay        time.Duration       `koanf:"-"`
	FetchTimeout     time.Duration       `koanf:"-"`
	DeliveryMode     domain.DeliveryMode `koanf:"-"`
	HTTPPort         string              `koanf:"http_port"`
	HistorySize      int                 `koanf:"history_size"`
	AllowedUsers     []int64             `koanf:"-"`
	AppEnv           domain.AppEnv       `koanf:"-"`
}

// Load reads the first config file found in the working directory, then
// overlays environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	setDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if strings.TrimSpace(cfg.TelegramBotToken) == "" {
		return nil, errors.ErrMissingBotToken
	}

	chatID, err := ParseChatID(stringValue(k.Get("chat_id")))
	if err != nil {
		return nil, err
	}
	cfg.ChatID = chatID

	if strings.TrimSpace(cfg.FeedURL) == "" {
		return nil, errors.ErrMissingFeedURL
	}

	for key, dst := range map[string]*time.Duration{
		"poll_interval": &cfg.PollInterval,
		"send_delay":    &cfg.SendDelay,
		"fetch_timeout": &cfg.FetchTimeout,
	} {
		d, err := parseDuration(k.Get(key))
		if err != nil {
			return nil, oops.With("key", key, "value", k.Get(key)).Wrap(err)
		}
		*dst = d
	}

	mode, err := domain.ParseDeliveryMode(stringValue(k.Get("delivery_mode")))
	if err != nil {
		return nil, oops.With("key", "delivery_mode").Wrap(err)
	}
	cfg.DeliveryMode = mode

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 50
	}

	switch v := k.Get("allowed_users").(type) {
	case string:
		cfg.AllowedUsers = ParseAllowedUsers(v)
	case []interface{}:
		cfg.AllowedUsers = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
			switch val := item.(type) {
			case int64:
				return val, true
			case int:
				return int64(val), true
			case float64:
				return int64(val), true
			default:
				return 0, false
			}
		})
	}

	// An unknown environment name falls back to production
	if appEnv, err := domain.ParseAppEnv(stringValue(k.Get("app_env"))); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = domain.AppEnvProduction
	}

	return &cfg, nil
}

func setDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		"telegram_api_url": "https://api.telegram.org",
		"feed_url":         DefaultFeedURL,
		"poll_interval":    "1h",
		"send_delay":       "10s",
		"fetch_timeout":    "30s",
		"delivery_mode":    string(domain.DeliveryModeAtMostOnce),
		"http_port":        "8080",
		"history_size":     50,
		"app_env":          string(domain.AppEnvProduction),
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}
}

// ParseChatID parses the destination chat identifier. Zero is rejected.
func ParseChatID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.ErrMissingChatID
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id == 0 {
		return 0, oops.With("chat_id", s).Wrap(errors.ErrInvalidChatID)
	}
	return id, nil
}

// stringValue renders scalars from any provider as strings, so numeric
// YAML values and environment strings parse the same way.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		// JSON numbers arrive as float64
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// parseDuration accepts Go duration strings and bare integers as seconds.
func parseDuration(v interface{}) (time.Duration, error) {
	var d time.Duration
	switch val := v.(type) {
	case time.Duration:
		d = val
	case int:
		d = time.Duration(val) * time.Second
	case int64:
		d = time.Duration(val) * time.Second
	case float64:
		d = time.Duration(val * float64(time.Second))
	case string:
		s := strings.TrimSpace(val)
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			d = time.Duration(secs) * time.Second
			break
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, oops.Wrapf(errors.ErrInvalidDuration, "%q is not a duration", s)
		}
		d = parsed
	default:
		return 0, oops.Wrapf(errors.ErrInvalidDuration, "unsupported duration value %v", v)
	}
	if d <= 0 {
		return 0, errors.ErrInvalidDuration
	}
	return d, nil
}

// ParseAllowedUsers parses comma-separated user IDs string into []int64
func ParseAllowedUsers(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
