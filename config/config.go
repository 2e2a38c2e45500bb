// Package config loads the application configuration from YAML files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath        = "."
	defaultStorePath   = "data/atelier.db"
	defaultAdminPIN    = "123456"
	defaultCodePrefix  = "GC-"
	defaultCodeLength  = 6
	defaultRewardEvery = 10
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Store configures the embedded document store.
	Store StoreConfig `json:"store" yaml:"store"`

	// Auth configures the PIN-gated admin session.
	Auth AuthConfig `json:"auth" yaml:"auth"`

	// Tax holds the declaration rates applied to monthly revenue.
	Tax TaxConfig `json:"tax" yaml:"tax"`

	// Loyalty configures the visit-based reward counter.
	Loyalty LoyaltyConfig `json:"loyalty" yaml:"loyalty"`

	// GiftCards configures gift-card code generation.
	GiftCards GiftCardConfig `json:"giftCards" yaml:"giftCards"`

	// QRCode configures gift-card QR rendering.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Messenger configures the AI draft-message client. Optional; when the
	// API key is empty every draft falls back to the canned message.
	Messenger *MessengerConfig `json:"messenger" yaml:"messenger"`

	// Reminder configures the appointment reminder sweep.
	Reminder *ReminderConfig `json:"reminder" yaml:"reminder"`
}

// Log defines logger output settings.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig defines where the document store lives on disk.
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

// AuthConfig defines admin session settings.
type AuthConfig struct {
	Secret     string        `json:"secret" yaml:"secret"`
	TokenTTL   time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
	DefaultPIN string        `json:"defaultPin" yaml:"defaultPin"`
}

// TaxConfig defines the social-contribution rates. Service and training
// revenue falls under the service rate; product sales under the sales rate.
type TaxConfig struct {
	ServiceRate float64 `json:"serviceRate" yaml:"serviceRate"`
	SalesRate   float64 `json:"salesRate" yaml:"salesRate"`
}

// LoyaltyConfig defines the visit count that earns a free reward.
type LoyaltyConfig struct {
	RewardEvery int `json:"rewardEvery" yaml:"rewardEvery"`
}

// GiftCardConfig defines gift-card code generation settings.
type GiftCardConfig struct {
	CodePrefix string `json:"codePrefix" yaml:"codePrefix"`
	CodeLength int    `json:"codeLength" yaml:"codeLength"`
}

// QRCodeConfig defines QR code generation configuration.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// MessengerConfig defines the generative text API used for client messages.
type MessengerConfig struct {
	APIKey   string        `json:"apiKey" yaml:"apiKey"`
	Model    string        `json:"model" yaml:"model"`
	Endpoint string        `json:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// ReminderConfig defines the appointment reminder sweep.
type ReminderConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Schedule string        `json:"schedule" yaml:"schedule"`
	Horizon  time.Duration `json:"horizon" yaml:"horizon"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: AUTH_TOKENTTL -> auth.tokenTtl (not auth.tokenttl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	if strings.TrimSpace(c.Auth.DefaultPIN) == "" {
		c.Auth.DefaultPIN = defaultAdminPIN
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 12 * time.Hour
	}
	if c.Loyalty.RewardEvery <= 0 {
		c.Loyalty.RewardEvery = defaultRewardEvery
	}
	if strings.TrimSpace(c.GiftCards.CodePrefix) == "" {
		c.GiftCards.CodePrefix = defaultCodePrefix
	}
	if c.GiftCards.CodeLength <= 0 {
		c.GiftCards.CodeLength = defaultCodeLength
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
