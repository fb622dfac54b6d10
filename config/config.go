package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is where Load looks for the optional JSON config file.
const DefaultPath = "config/config.json"

// AppConfig holds file and environment driven configuration values.
// Secrets (database and redis passwords) have no defaults and must come from the file or the environment.
type AppConfig struct {
	AppPort            string
	GinMode            string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Site content for the static pages
	SiteTitle    string
	AboutHTML    string
	ContactEmail string
	// Database
	DBDriver    string
	DatabaseURI string
	DBPath      string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis backs the per-post view counter; an empty host disables it
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	AccessLogPath string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var defaults = map[string]any{
	"app.port":                  "8080",
	"app.mode":                  "release",
	"app.rate_limit_per_minute": 60,
	"app.allowed_origins":       []string{"*"},
	"site.title":                "Blog",
	"site.about_html":           "",
	"site.contact_email":        "",
	"database.driver":           "sqlite",
	"database.uri":              "",
	"database.path":             "data/posts.db",
	"database.host":             "127.0.0.1",
	"database.port":             "",
	"database.user":             "root",
	"database.password":         "",
	"database.name":             "blog",
	"redis.host":                "",
	"redis.port":                6379,
	"redis.db":                  0,
	"redis.password":            "",
	"log.level":                 "info",
	"log.path":                  "logs/app.log",
	"log.access_path":           "logs/access.log",
	"log.max_size_mb":           100,
	"log.max_backups":           3,
	"log.max_age_days":          7,
	"log.compress":              false,
}

// Load reads configuration with precedence: environment > JSON file > defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (AppConfig, error) {
	vp := viper.New()
	for k, v := range defaults {
		vp.SetDefault(k, v)
	}

	// APP_PORT, DATABASE_DRIVER, LOG_LEVEL, ...
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("json")
		if err := vp.ReadInConfig(); err != nil && !isMissingFile(err) {
			return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := AppConfig{
		AppPort:            vp.GetString("app.port"),
		GinMode:            strings.ToLower(vp.GetString("app.mode")),
		RateLimitPerMinute: vp.GetInt("app.rate_limit_per_minute"),
		AllowedOrigins:     splitList(vp.GetStringSlice("app.allowed_origins")),
		SiteTitle:          vp.GetString("site.title"),
		AboutHTML:          vp.GetString("site.about_html"),
		ContactEmail:       vp.GetString("site.contact_email"),
		DBDriver:           strings.ToLower(vp.GetString("database.driver")),
		DatabaseURI:        vp.GetString("database.uri"),
		DBPath:             vp.GetString("database.path"),
		DBHost:             vp.GetString("database.host"),
		DBPort:             vp.GetString("database.port"),
		DBUser:             vp.GetString("database.user"),
		DBPassword:         vp.GetString("database.password"),
		DBName:             vp.GetString("database.name"),
		RedisHost:          vp.GetString("redis.host"),
		RedisPort:          vp.GetInt("redis.port"),
		RedisDB:            vp.GetInt("redis.db"),
		RedisPassword:      vp.GetString("redis.password"),
		LogLevel:           strings.ToLower(vp.GetString("log.level")),
		LogPath:            vp.GetString("log.path"),
		AccessLogPath:      vp.GetString("log.access_path"),
		LogMaxSizeMB:       vp.GetInt("log.max_size_mb"),
		LogMaxBackups:      vp.GetInt("log.max_backups"),
		LogMaxAgeDays:      vp.GetInt("log.max_age_days"),
		LogCompress:        vp.GetBool("log.compress"),
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return AppConfig{}, fmt.Errorf("unsupported database driver %q (sqlite, mysql, postgres)", cfg.DBDriver)
	}
	if cfg.DBPort == "" {
		cfg.DBPort = defaultDBPort(cfg.DBDriver)
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 60
	}
	return cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

// splitList accepts both JSON arrays and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func defaultDBPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "postgres":
		return "5432"
	}
	return ""
}
