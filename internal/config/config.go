package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при невалидной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig      `toml:"server"`
	Database      DatabaseConfig    `toml:"database"`
	Logs          LogsConfig        `toml:"logs"`
	Metrics       MetricsConfig     `toml:"metrics"`
	Scheduling    SchedulingConfig  `toml:"scheduling"`
	SellerService IntegrationConfig `toml:"seller_service"`
	UserService   IntegrationConfig `toml:"user_service"`
	Notifier      NotifierConfig    `toml:"notifier"`
}

// ServerConfig HTTP сервер (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	RequestTimeout  int `toml:"request_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig параметры расчета слотов по умолчанию
// Значения используются, если у провайдера нет своих настроек
type SchedulingConfig struct {
	Timezone                string `toml:"timezone"`
	SlotStepMinutes         int    `toml:"slot_step_minutes"`
	DefaultWorkStartHour    int    `toml:"default_work_start_hour"`
	DefaultWorkEndHour      int    `toml:"default_work_end_hour"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
}

// IntegrationConfig внешний HTTP сервис (timeout в секундах)
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotifierConfig доставка уведомлений
type NotifierConfig struct {
	Driver          string   `toml:"driver"` // kafka | log
	Brokers         []string `toml:"brokers"`
	Topic           string   `toml:"topic"`
	DispatchTimeout int      `toml:"dispatch_timeout"` // секунды на одну отправку
}

// RequestTimeout таймаут обработки одного запроса
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)
	setDefault(&c.Server.RequestTimeout, 5)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	setDefault(&c.Database.TxMaxRetries, 3)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "appointment_service"
	}

	setDefault(&c.Scheduling.SlotStepMinutes, 30)
	setDefault(&c.Scheduling.DefaultWorkStartHour, 9)
	setDefault(&c.Scheduling.DefaultWorkEndHour, 18)

	setDefault(&c.SellerService.Timeout, 5)
	setDefault(&c.UserService.Timeout, 5)

	if c.Notifier.Driver == "" {
		c.Notifier.Driver = "log"
	}
	if c.Notifier.Topic == "" {
		c.Notifier.Topic = "booking-notifications"
	}
	setDefault(&c.Notifier.DispatchTimeout, 5)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	s := c.Scheduling
	if s.DefaultWorkStartHour < 0 || s.DefaultWorkEndHour > 24 || s.DefaultWorkStartHour >= s.DefaultWorkEndHour {
		problems = append(problems, "scheduling: default work hours must satisfy 0 <= start < end <= 24")
	}
	if s.SlotStepMinutes <= 0 {
		problems = append(problems, "scheduling: slot_step_minutes must be positive")
	}
	if s.AdvanceBookingDays < 0 || s.MinBookingNoticeMinutes < 0 {
		problems = append(problems, "scheduling: limits must not be negative")
	}

	switch c.Notifier.Driver {
	case "log":
	case "kafka":
		if len(c.Notifier.Brokers) == 0 {
			problems = append(problems, "notifier: kafka driver requires brokers")
		}
	default:
		problems = append(problems, fmt.Sprintf("notifier: unknown driver %q", c.Notifier.Driver))
	}

	if c.SellerService.URL == "" {
		problems = append(problems, "seller_service: url is required")
	}
	if c.UserService.URL == "" {
		problems = append(problems, "user_service: url is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
