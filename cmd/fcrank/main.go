package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/dustin/go-humanize"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	fcrank "github.com/AndersSaints/FightcadeRank/internal"
	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
	"github.com/AndersSaints/FightcadeRank/internal/replay"
	"github.com/AndersSaints/FightcadeRank/internal/store"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	rootCmd        = &cobra.Command{
		Use:   "fcrank",
		Short: "Fightcade leaderboard TUI",
		Long:  `fcrank - Look up player rankings, tiers and replay stats on the Fightcade leaderboards`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about fcrank",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Manage the local leaderboard cache",
	}

	cacheStatsCmd = &cobra.Command{
		Use:               "stats",
		Short:             "Print cache statistics",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              cacheStats,
	}

	cacheClearCmd = &cobra.Command{
		Use:               "clear",
		Short:             "Remove all cached leaderboard data",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              cacheClear,
	}
)

var errApp = errors.New("application error")

func main() {
	configPath := config.Path(config.DefaultConfigName)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", configPath, "Config file path")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("fcrank - Fightcade Rank TUI\n\n")   //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)     //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)      //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)        //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion) //nolint:forbidigo
}

func openCache() (*cache.Store, config.Config, error) {
	userConfig, errConfig := config.NewLoader(make(chan config.Config, 1)).Read()
	if errConfig != nil {
		return nil, config.Config{}, errors.Join(errConfig, errApp)
	}

	cacheStore, errCache := cache.New(userConfig.CacheTTL(), config.PathCache(config.CacheDirName))
	if errCache != nil {
		return nil, config.Config{}, errors.Join(errCache, errApp)
	}

	return cacheStore, userConfig, nil
}

func cacheStats(_ *cobra.Command, _ []string) error {
	cacheStore, _, errOpen := openCache()
	if errOpen != nil {
		return errOpen
	}

	stats := cacheStore.Stats()
	state := "fresh"
	if !stats.Fresh {
		state = "stale"
	}

	fmt.Printf("  Players:     %d\n", stats.Players)                           //nolint:forbidigo
	fmt.Printf("  Last Offset: %d\n", stats.LastOffset)                        //nolint:forbidigo
	fmt.Printf("  Size:        %s\n", humanize.Bytes(uint64(stats.SizeBytes))) //nolint:forbidigo
	fmt.Printf("  State:       %s (age %s)\n", state, stats.Age)               //nolint:forbidigo

	return nil
}

func cacheClear(_ *cobra.Command, _ []string) error {
	cacheStore, _, errOpen := openCache()
	if errOpen != nil {
		return errOpen
	}

	if err := cacheStore.Clear(); err != nil {
		return errors.Join(err, errApp)
	}

	fmt.Println("Cache cleared") //nolint:forbidigo

	return nil
}

// run is the main entry point of fcrank.
func run(cmd *cobra.Command, _ []string) error {
	// Make sure our config & cache homes exist.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}
	if err := os.MkdirAll(config.PathCache(config.CacheDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	configLoader := config.NewLoader(configUpdates)

	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return errors.Join(errApp, errConfig)
	}
	doSetup := configLoader.ConfigFileUsed() == ""

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, slog.LevelDebug)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting fcrank", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	// Setup the on-disk leaderboard cache.
	cacheStore, errCache := cache.New(userConfig.CacheTTL(), config.PathCache(config.CacheDirName))
	if errCache != nil {
		return errors.Join(errCache, errApp)
	}

	// Setup the API client responsible for fetching ranking data.
	httpClient := &http.Client{Timeout: config.DefaultHTTPTimeout}
	client := fightcade.New(userConfig, httpClient)

	// Setup the sqlite database holding search history.
	database, errDB := store.Open(cmd.Context(), config.Path(config.DefaultDBName), true)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	history := store.New(database)
	resolver := fcrank.NewResolver(userConfig, client, cacheStore, history)
	replays := replay.NewFetcher(client, userConfig.BatchSize, userConfig.RequestDelay())

	done := make(chan any)
	app := NewApp(userConfig, resolver, cacheStore, history, replays, configUpdates)
	userInterface := app.createUI(cmd.Context(), configLoader, doSetup)

	go func() {
		if err := userInterface.Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		done <- "done"
	}()

	app.Start(cmd.Context(), done)

	return nil
}
