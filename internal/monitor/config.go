package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds process-level settings sourced from the environment.
type AppConfig struct {
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile    string        `envconfig:"LOG_FILE" default:"./log/pagewatch.log"`
	ConfigPath string        `envconfig:"CONFIG_PATH" default:"./config.json"`
	NavTimeout time.Duration `envconfig:"NAV_TIMEOUT" default:"45s"`
}

func LoadAppConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// NotificationConfig mirrors the "email" object of config.json. When Enabled
// is false the transport fields are ignored. The transport fields are not
// validated here; a bad value surfaces as a DeliveryError from the send.
type NotificationConfig struct {
	Enabled      bool     `json:"enabled"`
	SMTPHost     string   `json:"smtp_host"`
	SMTPPort     int      `json:"smtp_port"`
	SMTPUsername string   `json:"smtp_username"`
	SMTPPassword string   `json:"smtp_password"`
	From         string   `json:"from"`
	To           []string `json:"to"`
	Subject      string   `json:"subject"`
}

// CheckConfig is the check definition read from config.json. It is loaded
// once per run and never mutated.
type CheckConfig struct {
	URL               string             `json:"url"`
	ExpectedText      string             `json:"expected_text"`
	RetryDelaySeconds int                `json:"retry_delay_seconds"`
	MaxAttempts       int                `json:"max_attempts"`
	Email             NotificationConfig `json:"email"`
}

func (c CheckConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

func (c CheckConfig) Validate() error {
	if c.URL == "" {
		return errors.New("url must not be empty")
	}
	if c.ExpectedText == "" {
		return errors.New("expected_text must not be empty")
	}
	if c.RetryDelaySeconds < 0 {
		return errors.New("retry_delay_seconds must not be negative")
	}
	if c.MaxAttempts < 0 {
		return errors.New("max_attempts must not be negative")
	}
	return nil
}

// DefaultCheckConfig is the template written on first run.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		URL:               "https://example.com/",
		ExpectedText:      "I'm alive",
		RetryDelaySeconds: 60,
		MaxAttempts:       2,
		Email: NotificationConfig{
			Enabled:      false,
			SMTPHost:     "mail.example.com",
			SMTPPort:     25,
			SMTPUsername: "alerts@example.com",
			SMTPPassword: "your_password",
			From:         "alerts@example.com",
			To:           []string{"dest@example.com"},
			Subject:      "Monitored page is DOWN",
		},
	}
}

// EnsureCheckConfig writes the default template to path when no file exists
// yet. It reports whether a template was created so the caller can ask the
// user to edit it before the first real run.
func EnsureCheckConfig(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("EnsureCheckConfig: %w", err)
	}
	b, err := json.MarshalIndent(DefaultCheckConfig(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("EnsureCheckConfig: %w", err)
	}
	if err = os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return false, fmt.Errorf("EnsureCheckConfig: %w", err)
	}
	return true, nil
}

// LoadCheckConfig reads and validates config.json. Defaults are pre-filled
// before decoding so a key absent from the file keeps its default while an
// explicit zero stays zero (a zero max_attempts skips every attempt and
// alerts immediately).
func LoadCheckConfig(path string) (CheckConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return CheckConfig{}, fmt.Errorf("LoadCheckConfig: %w", err)
	}
	cfg := DefaultCheckConfig()
	if err = json.Unmarshal(b, &cfg); err != nil {
		return CheckConfig{}, fmt.Errorf("LoadCheckConfig: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return CheckConfig{}, fmt.Errorf("LoadCheckConfig: %w", err)
	}
	return cfg, nil
}
