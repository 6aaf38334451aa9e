package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/excursion-booking/internal/domain"
)

var (
	// ErrRead возвращается, когда файл конфигурации не удалось прочитать
	ErrRead = errors.New("config: failed to read config file")

	// ErrInvalid возвращается, когда конфигурация не прошла валидацию
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Admin     AdminConfig     `toml:"admin"`
	Keepalive KeepaliveConfig `toml:"keepalive"`
	Export    ExportConfig    `toml:"export"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
// Если задан URL (DATABASE_URL), он имеет приоритет над отдельными полями
type DatabaseConfig struct {
	URL             string `toml:"url"`
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

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила приёма заявок
type BookingConfig struct {
	DailyCapacity  int      `toml:"daily_capacity"`
	ClosedWeekdays []string `toml:"closed_weekdays"` // английские названия: "saturday", "sun"
	Timezone       string   `toml:"timezone"`
}

// AdminConfig доступ администратора
type AdminConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt
	JWTSecret    string `toml:"jwt_secret"`
	SessionTTL   int    `toml:"session_ttl"` // минуты
	CookieName   string `toml:"cookie_name"`
	CookieSecure bool   `toml:"cookie_secure"`
}

// KeepaliveConfig периодический пинг собственного /health, чтобы хостинг не усыплял сервис
type KeepaliveConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Interval int    `toml:"interval"` // секунды
	Timeout  int    `toml:"timeout"`  // секунды
}

// ExportConfig настройки выгрузок
type ExportConfig struct {
	PDFTitle    string `toml:"pdf_title"`
	PDFFontPath string `toml:"pdf_font_path"` // TTF с кириллицей; без него выгрузка в PDF недоступна
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			DBName:          "excursions",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "excursion-booking",
		},
		Booking: BookingConfig{
			DailyCapacity:  domain.DefaultDailyCapacity,
			ClosedWeekdays: []string{"saturday", "sunday"},
			Timezone:       domain.DefaultTimezone,
		},
		Admin: AdminConfig{
			Username:   "admin",
			SessionTTL: 12 * 60,
			CookieName: "admin_session",
		},
		Keepalive: KeepaliveConfig{
			Interval: 300,
			Timeout:  10,
		},
		Export: ExportConfig{
			PDFTitle: "Заявки на экскурсии",
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Booking.Timezone, "BOOKING_TIMEZONE")
	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Admin.JWTSecret, "JWT_SECRET")
	setString(&c.Keepalive.URL, "RENDER_EXTERNAL_URL")
	setString(&c.Keepalive.URL, "KEEPALIVE_URL")
	setString(&c.Export.PDFFontPath, "PDF_FONT_PATH")

	if err := setInt(&c.Server.HTTPPort, "PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Booking.DailyCapacity, "BOOKING_DAILY_CAPACITY"); err != nil {
		return err
	}

	if raw, ok := os.LookupEnv("BOOKING_CLOSED_WEEKDAYS"); ok && raw != "" {
		c.Booking.ClosedWeekdays = splitAndTrim(raw)
	}

	if raw, ok := os.LookupEnv("KEEPALIVE_ENABLED"); ok && raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: KEEPALIVE_ENABLED=%q", ErrInvalid, raw)
		}
		c.Keepalive.Enabled = enabled
	}

	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalid)
	}

	if c.Booking.DailyCapacity < domain.MinDailyCapacity || c.Booking.DailyCapacity > domain.MaxDailyCapacity {
		return fmt.Errorf("%w: booking.daily_capacity must be in %d..%d",
			ErrInvalid, domain.MinDailyCapacity, domain.MaxDailyCapacity)
	}

	if _, err := c.ClosedWeekdays(); err != nil {
		return fmt.Errorf("%w: booking.closed_weekdays: %v", ErrInvalid, err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalid, err)
	}

	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("%w: admin.session_ttl must be positive", ErrInvalid)
	}

	if c.Keepalive.Enabled {
		if c.Keepalive.URL == "" {
			return fmt.Errorf("%w: keepalive.url is required when keepalive is enabled", ErrInvalid)
		}
		if c.Keepalive.Interval <= 0 || c.Keepalive.Timeout <= 0 {
			return fmt.Errorf("%w: keepalive.interval and keepalive.timeout must be positive", ErrInvalid)
		}
	}

	return nil
}

// ClosedWeekdays разбирает названия закрытых дней недели
func (c *Config) ClosedWeekdays() ([]time.Weekday, error) {
	weekdays := make([]time.Weekday, 0, len(c.Booking.ClosedWeekdays))
	for _, name := range c.Booking.ClosedWeekdays {
		wd, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}

// Schedule недельное расписание экскурсий
func (c *Config) Schedule() domain.Schedule {
	closed, _ := c.ClosedWeekdays()
	return domain.NewSchedule(c.Booking.DailyCapacity, closed...)
}

// Location часовой пояс, в котором определяется "сегодня"
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Booking.Timezone)
}

// AdminEnabled админка доступна, только если заданы хэш пароля и секрет JWT
func (c *Config) AdminEnabled() bool {
	return c.Admin.PasswordHash != "" && c.Admin.JWTSecret != ""
}

// PDFExportEnabled выгрузка в PDF доступна только с TTF шрифтом
func (c *Config) PDFExportEnabled() bool {
	return strings.TrimSpace(c.Export.PDFFontPath) != ""
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return withSSLMode(d.URL, d.SSLMode)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// withSSLMode добавляет sslmode в URL, если он там не указан.
// Для внешнего URL без явного sslmode используется require
func withSSLMode(raw, sslMode string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("sslmode") != "" {
		return raw
	}

	if sslMode == "" || sslMode == "disable" {
		sslMode = "require"
	}
	query.Set("sslmode", sslMode)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, v)
	}
	*dst = n
	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
