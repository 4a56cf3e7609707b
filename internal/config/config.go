package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Booking        BookingConfig        `toml:"booking"`
	Payments       PaymentsConfig       `toml:"payments"`
	ProfileService ProfileServiceConfig `toml:"profile_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-правила переходов статусов записи.
// Исходные правила разрешали отмену и отметку посещения из любого статуса;
// здесь терминальные статусы защищены, а спорные переходы вынесены в конфигурацию.
type BookingConfig struct {
	// AllowCancelCompleted разрешает отмену завершенной консультации
	AllowCancelCompleted bool `toml:"allow_cancel_completed"`
	// RequireConfirmedForAttend требует подтверждения оплаты перед отметкой посещения
	RequireConfirmedForAttend bool `toml:"require_confirmed_for_attend"`
}

// PaymentsConfig настройки платежного провайдера
type PaymentsConfig struct {
	Provider          string `toml:"provider"` // пока поддерживается только "razorpay"
	Currency          string `toml:"currency"`
	DefaultFeeMinor   int64  `toml:"default_fee_minor"` // фоллбек, в минорных единицах валюты
	RazorpayBaseURL   string `toml:"razorpay_base_url"`
	RazorpayKeyID     string `toml:"razorpay_key_id"`
	RazorpayKeySecret string `toml:"razorpay_key_secret"`
	WebhookSecret     string `toml:"webhook_secret"`
	Timeout           int    `toml:"timeout"` // секунды
}

// ProfileServiceConfig настройки клиента ProfileService
type ProfileServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Payments.WebhookSecret == "" {
		cfg.Payments.WebhookSecret = cfg.Payments.RazorpayKeySecret
	}

	return &cfg, nil
}
