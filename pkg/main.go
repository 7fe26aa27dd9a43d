package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	pkg "github.com/youbuidl/feedcore/pkg/internal"
	"github.com/youbuidl/feedcore/pkg/internal/cache"
	"github.com/youbuidl/feedcore/pkg/internal/database"
	"github.com/youbuidl/feedcore/pkg/internal/http"
	"github.com/youbuidl/feedcore/pkg/internal/http/api"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
	"github.com/youbuidl/feedcore/pkg/internal/provider/local"
	"github.com/youbuidl/feedcore/pkg/internal/provider/orbital"
	"github.com/youbuidl/feedcore/pkg/internal/services"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" _____             _\n|  ___|__  ___  __| | ___ ___  _ __ ___\n| |_ / _ \\/ _ \\/ _` |/ __/ _ \\| '__/ _ \\\n|  _|  __/  __/ (_| | (_| (_) | | |  __/\n|_|  \\___|\\___|\\__,_|\\___\\___/|_|  \\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Feedcore"), pkg.AppVersion)
	fmt.Printf("The community feed engine\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Prepare cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up cache.")
	}

	rootContext := viper.GetString("feed.root_context")
	if len(rootContext) == 0 {
		log.Fatal().Msg("feed.root_context must be configured.")
	}

	// Pick the content backend
	var backend provider.Provider
	var localBackend *local.Backend
	if baseURL := viper.GetString("backend.base_url"); len(baseURL) > 0 {
		backend = orbital.NewClient(baseURL, viper.GetDuration("backend.timeout"))
		log.Info().Str("base_url", baseURL).Msg("Using hosted content backend.")
	} else {
		db, err := database.NewGorm(viper.GetString("database.dsn"))
		if err != nil {
			log.Fatal().Err(err).Msg("An error occurred when connecting to database.")
		}
		localBackend, err = local.NewBackend(db, rootContext)
		if err != nil {
			log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
		}
		backend = localBackend
		log.Info().Msg("Using self-hosted content backend.")
	}

	resolver := services.NewCategoryResolver(backend, rootContext)
	deps := &api.Deps{
		Feed:      services.NewFeedController(backend, resolver, rootContext),
		Search:    services.NewSearchController(backend, rootContext),
		Resolver:  resolver,
		Reactions: services.NewReactionRegistry(backend),
		Local:     localBackend,
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if localBackend != nil {
		quartz.AddFunc("@every 30m", localBackend.RecomputeRanking)
	}
	quartz.Start()

	// Server
	go http.NewServer(deps).Listen()

	// Warm the category table so the first feed page is labeled
	go func() {
		warmup, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := resolver.Load(warmup); err != nil {
			log.Warn().Err(err).Msg("An error occurred when preloading categories...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
