package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Backend   BackendConfig
	Redis     RedisConfig
	Session   SessionConfig
	CORS      CORSConfig
	Log       LogConfig
	Calendar  CalendarConfig
	Chat      ChatConfig
	UI        UIConfig
	Timetable TimetableConfig
}

// BackendConfig points at the REST backend owning events, classrooms and chats.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig describes how the viewer token issued by the backend is read.
type SessionConfig struct {
	Secret     string
	CookieName string
	Issuer     string
	LoginURL   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig tunes the month grid and its event cache.
type CalendarConfig struct {
	Timezone string
	CacheTTL time.Duration
	StaleTTL time.Duration
	MaxChips int
}

// ChatConfig governs poll cadence and reconciliation. Token is the session
// token the terminal client forwards to the backend.
type ChatConfig struct {
	PollInterval      time.Duration
	InboxPollInterval time.Duration
	Strategy          string
	Token             string
	LogFile           string
}

// UIConfig holds presentation defaults.
type UIConfig struct {
	ToastTTL    time.Duration
	ThemeCookie string
}

// TimetableConfig lists the rendered days and time slots.
type TimetableConfig struct {
	Days      []string
	TimeSlots []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Backend = BackendConfig{
		BaseURL: strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("BACKEND_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("JWT_SECRET"),
		CookieName: v.GetString("SESSION_COOKIE"),
		Issuer:     v.GetString("JWT_ISSUER"),
		LoginURL:   v.GetString("LOGIN_URL"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Calendar = CalendarConfig{
		Timezone: v.GetString("CALENDAR_TIMEZONE"),
		CacheTTL: parseDuration(v.GetString("CALENDAR_CACHE_TTL"), time.Minute),
		StaleTTL: parseDuration(v.GetString("CALENDAR_STALE_TTL"), 24*time.Hour),
		MaxChips: v.GetInt("CALENDAR_MAX_EVENTS_PER_DAY"),
	}

	cfg.Chat = ChatConfig{
		PollInterval:      parseDuration(v.GetString("CHAT_POLL_INTERVAL"), 3*time.Second),
		InboxPollInterval: parseDuration(v.GetString("INBOX_POLL_INTERVAL"), 5*time.Second),
		Strategy:          strings.ToLower(v.GetString("CHAT_RECONCILE_STRATEGY")),
		Token:             v.GetString("CHAT_TOKEN"),
		LogFile:           v.GetString("CHAT_LOG_FILE"),
	}

	cfg.UI = UIConfig{
		ToastTTL:    parseDuration(v.GetString("TOAST_TTL"), 5*time.Second),
		ThemeCookie: v.GetString("THEME_COOKIE"),
	}

	cfg.Timetable = TimetableConfig{
		Days:      splitAndTrim(v.GetString("EDT_DAYS")),
		TimeSlots: splitAndTrim(v.GetString("EDT_TIME_SLOTS")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("BACKEND_BASE_URL", "http://localhost:5000")
	v.SetDefault("BACKEND_TIMEOUT", "10s")

	v.SetDefault("ENABLE_REDIS", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("SESSION_COOKIE", "planify_session")
	v.SetDefault("LOGIN_URL", "/login")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CALENDAR_TIMEZONE", "Europe/Paris")
	v.SetDefault("CALENDAR_CACHE_TTL", "1m")
	v.SetDefault("CALENDAR_STALE_TTL", "24h")
	v.SetDefault("CALENDAR_MAX_EVENTS_PER_DAY", 3)

	v.SetDefault("CHAT_POLL_INTERVAL", "3s")
	v.SetDefault("INBOX_POLL_INTERVAL", "5s")
	v.SetDefault("CHAT_RECONCILE_STRATEGY", "id")
	v.SetDefault("CHAT_TOKEN", "")
	v.SetDefault("CHAT_LOG_FILE", "planify-chat.log")

	v.SetDefault("TOAST_TTL", "5s")
	v.SetDefault("THEME_COOKIE", "theme")

	v.SetDefault("EDT_DAYS", "Lundi,Mardi,Mercredi,Jeudi,Vendredi,Samedi")
	v.SetDefault("EDT_TIME_SLOTS", "08:00-09:30,09:45-11:15,11:30-13:00,14:00-15:30,15:45-17:15,17:30-19:00")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
