package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

func NewLoader(changes chan<- Config) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("game_id", DefaultGameID)
	loader.SetDefault("api_base_url", DefaultAPIBaseURL)
	loader.SetDefault("user_agent", DefaultUserAgent)
	loader.SetDefault("cache_ttl_secs", 600)
	loader.SetDefault("batch_size", 100)
	loader.SetDefault("max_search_offset", 5000)
	loader.SetDefault("request_delay_secs", 3)
	loader.SetDefault("rate_limit_delay_secs", 30)
	loader.SetDefault("error_delay_secs", 10)
	loader.SetDefault("page_size", 15)
	loader.SetDefault("max_replays", 200)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(Path(""))
	loader.AddConfigPath(".")
	loader.AutomaticEnv()
	loader.WatchConfig()
	loader.OnConfigChange(loader.onConfigChange)

	return &loader
}

func (cl *Loader) Path() string {
	if used := cl.ConfigFileUsed(); used != "" {
		return used
	}

	return Path(DefaultConfigName + ".yaml")
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

func (cl *Loader) Write(config Config) error {
	cl.Set("game_id", config.GameID)
	cl.Set("api_base_url", config.APIBaseURL)
	cl.Set("user_agent", config.UserAgent)
	cl.Set("cache_ttl_secs", config.CacheTTLSecs)
	cl.Set("batch_size", config.BatchSize)
	cl.Set("max_search_offset", config.MaxSearchOffset)
	cl.Set("request_delay_secs", config.RequestDelaySecs)
	cl.Set("rate_limit_delay_secs", config.RateLimitDelaySecs)
	cl.Set("error_delay_secs", config.ErrorDelaySecs)
	cl.Set("page_size", config.PageSize)
	cl.Set("max_replays", config.MaxReplays)

	if err := cl.WriteConfig(); err != nil {
		// First run, no file on disk yet.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if errSafe := cl.SafeWriteConfigAs(Path(DefaultConfigName + ".yaml")); errSafe != nil {
				return errors.Join(errSafe, errConfigWrite)
			}

			return nil
		}

		return errors.Join(err, errConfigWrite)
	}

	return nil
}

func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.GameID == "" {
		return Config{}, errConfigRead
	}

	return config, nil
}
