package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "fcrank"
	DefaultConfigName  = "fcrank"
	DefaultDBName      = "fcrank.db"
	DefaultLogName     = "fcrank.log"
	CacheDirName       = "cache"
	EnvPrefix          = "fcrank"
	DefaultHTTPTimeout = 15 * time.Second

	DefaultAPIBaseURL = "https://www.fightcade.com/api/"
	DefaultSiteURL    = "https://www.fightcade.com/"
	DefaultGameID     = "kof2002"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
)

type Config struct {
	GameID     string `mapstructure:"game_id"`
	APIBaseURL string `mapstructure:"api_base_url,omitempty"`
	UserAgent  string `mapstructure:"user_agent,omitempty"`
	// CacheTTLSecs controls how long fetched leaderboard data stays fresh
	// before a lookup forces a refetch. Stale entries are still kept around
	// for fallback display.
	CacheTTLSecs int `mapstructure:"cache_ttl_secs"`
	// BatchSize is the number of players requested per ranking page.
	BatchSize int `mapstructure:"batch_size"`
	// MaxSearchOffset bounds how deep into the leaderboard a search walks
	// before giving up on a player.
	MaxSearchOffset    int `mapstructure:"max_search_offset"`
	RequestDelaySecs   int `mapstructure:"request_delay_secs"`
	RateLimitDelaySecs int `mapstructure:"rate_limit_delay_secs"`
	ErrorDelaySecs     int `mapstructure:"error_delay_secs"`
	PageSize           int `mapstructure:"page_size"`
	MaxReplays         int `mapstructure:"max_replays"`
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySecs) * time.Second
}

func (c Config) RateLimitDelay() time.Duration {
	return time.Duration(c.RateLimitDelaySecs) * time.Second
}

func (c Config) ErrorDelay() time.Duration {
	return time.Duration(c.ErrorDelaySecs) * time.Second
}

// BrowserHeaders returns the header set sent with every API request. The
// ranking endpoint rejects requests that do not look like they came from the
// site itself.
func (c Config) BrowserHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json, text/plain, */*",
		"Content-Type": "application/json;charset=UTF-8",
		"Origin":       "https://www.fightcade.com",
		"Referer":      "https://www.fightcade.com/",
		"User-Agent":   c.UserAgent,
	}
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return cacheDir
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
