package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // образ без системной базы часовых поясов

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

const (
	envDefaultWalkCap   = "DEFAULT_WALK_CAP"
	envDatabasePassword = "DATABASE_PASSWORD"
	envAdminToken       = "ADMIN_TOKEN"
	envCalendarFeedURL  = "CALENDAR_FEED_URL"

	fallbackWalkCap = 4
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid value")
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Admin      AdminConfig      `toml:"admin"`

	location *time.Location
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type CalendarConfig struct {
	FeedURL  string `toml:"feed_url"`
	Timeout  int    `toml:"timeout"`   // секунды
	CacheTTL int    `toml:"cache_ttl"` // секунды
}

type SchedulingConfig struct {
	Timezone                string           `toml:"timezone"`
	WorkdayStart            types.TimeString `toml:"workday_start"`
	WorkdayEnd              types.TimeString `toml:"workday_end"`
	TravelBufferMinutes     int              `toml:"travel_buffer_minutes"`
	MinBookingNoticeMinutes int              `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays      int              `toml:"advance_booking_days"` // 0 = без ограничений
	DefaultWalkCap          int              `toml:"default_walk_cap"`
}

type AdminConfig struct {
	Token string `toml:"token"` // пусто - админский API закрыт
}

// Load читает .env (если есть), затем toml-файл и переменные окружения поверх него
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "walk_booking_service",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Calendar: CalendarConfig{
			Timeout:  5,
			CacheTTL: 60,
		},
		Scheduling: SchedulingConfig{
			Timezone:                "Europe/London",
			WorkdayStart:            types.MustTimeString("09:00"),
			WorkdayEnd:              types.MustTimeString("20:00"),
			TravelBufferMinutes:     15,
			MinBookingNoticeMinutes: 60,
			AdvanceBookingDays:      90,
			DefaultWalkCap:          fallbackWalkCap,
		},
	}
}

func (c *Config) applyEnv() error {
	if raw := os.Getenv(envDefaultWalkCap); raw != "" {
		walkCap, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, envDefaultWalkCap, raw)
		}
		c.Scheduling.DefaultWalkCap = walkCap
	}
	if v := os.Getenv(envDatabasePassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envAdminToken); v != "" {
		c.Admin.Token = v
	}
	if v := os.Getenv(envCalendarFeedURL); v != "" {
		c.Calendar.FeedURL = v
	}
	return nil
}

func (c *Config) validate() error {
	s := c.Scheduling

	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, s.Timezone, err)
	}
	c.location = loc

	if err := s.WorkdayStart.Validate(); err != nil {
		return fmt.Errorf("%w: workday_start: %v", ErrInvalidConfig, err)
	}
	if err := s.WorkdayEnd.Validate(); err != nil {
		return fmt.Errorf("%w: workday_end: %v", ErrInvalidConfig, err)
	}
	if !s.WorkdayStart.IsBefore(s.WorkdayEnd) {
		return fmt.Errorf("%w: workday_start %s must precede workday_end %s", ErrInvalidConfig, s.WorkdayStart, s.WorkdayEnd)
	}
	if s.TravelBufferMinutes < 0 || s.MinBookingNoticeMinutes < 0 || s.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: scheduling durations must not be negative", ErrInvalidConfig)
	}
	if s.DefaultWalkCap < 0 || s.DefaultWalkCap > domain.MaxWalkCap {
		return fmt.Errorf("%w: default_walk_cap must be between 0 and %d", ErrInvalidConfig, domain.MaxWalkCap)
	}
	if c.Calendar.FeedURL == "" {
		return fmt.Errorf("%w: calendar.feed_url is required", ErrInvalidConfig)
	}
	if c.Calendar.Timeout <= 0 {
		return fmt.Errorf("%w: calendar.timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Schedule рабочие правила бизнеса в виде доменной модели
func (c *Config) Schedule() domain.Schedule {
	return domain.Schedule{
		Location:           c.location,
		WorkdayStart:       c.Scheduling.WorkdayStart,
		WorkdayEnd:         c.Scheduling.WorkdayEnd,
		TravelBuffer:       time.Duration(c.Scheduling.TravelBufferMinutes) * time.Minute,
		MinBookingNotice:   time.Duration(c.Scheduling.MinBookingNoticeMinutes) * time.Minute,
		AdvanceBookingDays: c.Scheduling.AdvanceBookingDays,
	}
}

// Location часовой пояс бизнеса (заполняется при Load)
func (c *Config) Location() *time.Location {
	return c.location
}
