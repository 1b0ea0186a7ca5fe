package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	// ErrInvalidConfig возвращается, когда значения конфигурации недопустимы
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	ImageHost ImageHostConfig `toml:"image_host"`
	Booking   BookingConfig   `toml:"booking"`
	Business  BusinessConfig  `toml:"business"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
	// PoolStatsInterval период сбора статистики пула соединений, секунды
	PoolStatsInterval int `toml:"pool_stats_interval"`
}

// RedisConfig кэш конфигурации салона
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// ImageHostConfig хостинг чеков об оплате
type ImageHostConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
	// MaxUploadBytes ограничение размера исходного файла
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
	// MaxEdge изображение уменьшается до MaxEdge x MaxEdge
	MaxEdge     int `toml:"max_edge"`
	JPEGQuality int `toml:"jpeg_quality"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	// HoldUnpaidSlots: pending_payment и pending_confirmation тоже занимают слот
	HoldUnpaidSlots bool `toml:"hold_unpaid_slots"`
	// Timezone часовой пояс салона (IANA)
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс салона
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(b.Timezone)
}

// BusinessConfig начальные значения конфигурации салона, пока администратор
// не сохранил свою. Пустые поля не переопределяют встроенные значения.
type BusinessConfig struct {
	Name         string `toml:"name"`
	Phone        string `toml:"phone"`
	Email        string `toml:"email"`
	Address      string `toml:"address"`
	OpenTime     string `toml:"open_time"`
	CloseTime    string `toml:"close_time"`
	SlotDuration int    `toml:"slot_duration"`
	DaysOff      []int  `toml:"days_off"`
	Currency     string `toml:"currency"`
}

// Overlay накладывает заданные значения на d
func (b BusinessConfig) Overlay(d domain.BusinessConfig) domain.BusinessConfig {
	if b.Name != "" {
		d.BusinessName = b.Name
	}
	if b.Phone != "" {
		d.Phone = b.Phone
	}
	if b.Email != "" {
		d.Email = b.Email
	}
	if b.Address != "" {
		d.Address = b.Address
	}
	if b.OpenTime != "" {
		d.OpenTime = types.TimeString(b.OpenTime)
	}
	if b.CloseTime != "" {
		d.CloseTime = types.TimeString(b.CloseTime)
	}
	if b.SlotDuration > 0 {
		d.SlotDuration = b.SlotDuration
	}
	if b.DaysOff != nil {
		d.DaysOff = make([]time.Weekday, 0, len(b.DaysOff))
		for _, wd := range b.DaysOff {
			d.DaysOff = append(d.DaysOff, time.Weekday(wd))
		}
	}
	if b.Currency != "" {
		d.Currency = b.Currency
	}
	return d
}

// Load читает конфигурацию из TOML файла и переменных окружения.
// Переменные из .env (если файл есть) подхватываются перед чтением окружения.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:              "/metrics",
			ServiceName:       "salon_booking_service",
			PoolStatsInterval: 15,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
		ImageHost: ImageHostConfig{
			Timeout:        30,
			MaxUploadBytes: 10 << 20,
			MaxEdge:        1600,
			JPEGQuality:    85,
		},
	}
}

// applyEnv секреты и порт можно переопределить окружением
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("IMAGEHOST_API_KEY"); v != "" {
		c.ImageHost.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port=%d", ErrInvalidConfig, c.Database.Port)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.ImageHost.JPEGQuality < 1 || c.ImageHost.JPEGQuality > 100 {
		return fmt.Errorf("%w: image_host.jpeg_quality=%d", ErrInvalidConfig, c.ImageHost.JPEGQuality)
	}
	if err := c.Business.validate(); err != nil {
		return err
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone=%q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	return nil
}

func (b BusinessConfig) validate() error {
	for name, v := range map[string]string{
		"business.open_time":  b.OpenTime,
		"business.close_time": b.CloseTime,
	} {
		if v == "" {
			continue
		}
		if _, err := types.NewTimeStringFromString(v); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, name, v)
		}
	}
	if b.OpenTime != "" && b.CloseTime != "" &&
		!types.TimeString(b.OpenTime).IsBefore(types.TimeString(b.CloseTime)) {
		return fmt.Errorf("%w: business.close_time must be after open_time", ErrInvalidConfig)
	}
	if b.SlotDuration < 0 || b.SlotDuration > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: business.slot_duration=%d", ErrInvalidConfig, b.SlotDuration)
	}
	if b.SlotDuration > 0 && b.SlotDuration < domain.MinSlotDurationMinutes {
		return fmt.Errorf("%w: business.slot_duration=%d", ErrInvalidConfig, b.SlotDuration)
	}
	for _, wd := range b.DaysOff {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: business.days_off contains %d", ErrInvalidConfig, wd)
		}
	}
	return nil
}
