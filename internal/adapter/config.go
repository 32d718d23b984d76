package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Home    HomeConfig    `mapstructure:"home"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds movie API configuration
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Token        string        `mapstructure:"token"`    // v4 read token or v3 key; keyring is used when empty
	Language     string        `mapstructure:"language"` // BCP 47, e.g. "en-US"
	Region       string        `mapstructure:"region"`   // ISO 3166-1, optional
	Timeout      time.Duration `mapstructure:"timeout"`
}

// HomeConfig holds home page behaviour
type HomeConfig struct {
	Category      string        `mapstructure:"category"`
	PageSize      int           `mapstructure:"page_size"`
	SlideDuration time.Duration `mapstructure:"slide_duration"`
	HoverDelay    time.Duration `mapstructure:"hover_delay"`
	HoverDuration time.Duration `mapstructure:"hover_duration"`
}

// CacheConfig holds listing cache configuration
type CacheConfig struct {
	Dir string        `mapstructure:"dir"`
	TTL time.Duration `mapstructure:"ttl"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	Mouse       bool   `mapstructure:"mouse"`
	OpenCommand string `mapstructure:"open_command"` // Browser command, empty for system default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			Timeout:      30 * time.Second,
		},
		Home: HomeConfig{
			Category:      string(domain.CategoryNowPlaying),
			PageSize:      6,
			SlideDuration: time.Second,
			HoverDelay:    200 * time.Millisecond,
			HoverDuration: 200 * time.Millisecond,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
			TTL: 30 * time.Minute,
		},
		UI: UIConfig{
			Theme: "default",
			Mouse: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "cache")
	}
}

// setDefaults registers every key so environment overrides apply even
// when the config file does not mention them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.image_base_url", cfg.API.ImageBaseURL)
	v.SetDefault("api.token", cfg.API.Token)
	v.SetDefault("api.language", cfg.API.Language)
	v.SetDefault("api.region", cfg.API.Region)
	v.SetDefault("api.timeout", cfg.API.Timeout)

	v.SetDefault("home.category", cfg.Home.Category)
	v.SetDefault("home.page_size", cfg.Home.PageSize)
	v.SetDefault("home.slide_duration", cfg.Home.SlideDuration)
	v.SetDefault("home.hover_delay", cfg.Home.HoverDelay)
	v.SetDefault("home.hover_duration", cfg.Home.HoverDuration)

	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)

	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.mouse", cfg.UI.Mouse)
	v.SetDefault("ui.open_command", cfg.UI.OpenCommand)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides (MARQUEE_API_TOKEN, MARQUEE_HOME_PAGE_SIZE, ...)
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values the rest of the program relies on and normalizes
// the language tag
func (c *Config) Validate() error {
	if c.Home.PageSize < 1 {
		return fmt.Errorf("home.page_size must be at least 1, got %d", c.Home.PageSize)
	}
	if _, err := domain.ParseCategory(c.Home.Category); err != nil {
		return fmt.Errorf("home.category: %w", err)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Language != "" {
		tag, err := language.Parse(c.API.Language)
		if err != nil {
			return fmt.Errorf("api.language %q: %w", c.API.Language, err)
		}
		c.API.Language = tag.String()
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultConfig().Cache.TTL
	}
	return nil
}

// HomeCategory returns the configured start category
func (c *Config) HomeCategory() domain.Category {
	cat, err := domain.ParseCategory(c.Home.Category)
	if err != nil {
		return domain.CategoryNowPlaying
	}
	return cat
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.image_base_url", cfg.API.ImageBaseURL)
	v.Set("api.language", cfg.API.Language)
	v.Set("api.region", cfg.API.Region)
	v.Set("api.timeout", cfg.API.Timeout.String())

	v.Set("home.category", cfg.Home.Category)
	v.Set("home.page_size", cfg.Home.PageSize)
	v.Set("home.slide_duration", cfg.Home.SlideDuration.String())
	v.Set("home.hover_delay", cfg.Home.HoverDelay.String())
	v.Set("home.hover_duration", cfg.Home.HoverDuration.String())

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.ttl", cfg.Cache.TTL.String())

	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("ui.open_command", cfg.UI.OpenCommand)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	// The token lives in the keyring; never write it back in clear text
	v.Set("api.token", "")

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// WatchConfig reloads the config file on change and hands the result to
// onChange. Returns false when no config file is in use.
func WatchConfig(onChange func(*Config, error)) bool {
	v := viper.GetViper()
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg := DefaultConfig()
		if err := v.Unmarshal(cfg); err != nil {
			onChange(nil, fmt.Errorf("error parsing config: %w", err))
			return
		}
		if err := cfg.Validate(); err != nil {
			onChange(nil, err)
			return
		}
		onChange(cfg, nil)
	})
	v.WatchConfig()
	return true
}

// ClearCache removes all cached data
func ClearCache(dir string) error {
	if dir == "" {
		dir = defaultCachePath()
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
