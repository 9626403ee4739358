package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/showyourheart/data-api/internal/api"
	"github.com/showyourheart/data-api/internal/pkg/cache"
	"github.com/showyourheart/data-api/internal/pkg/constants"
	"github.com/showyourheart/data-api/internal/pkg/logger"
	"github.com/showyourheart/data-api/internal/pkg/store"
	"github.com/showyourheart/data-api/internal/pkg/store/xpgx"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initConfig()
	logger.Init(viper.GetString(constants.ViperKeyLogLevel))
	defer logger.Sync()

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperKeyDatabaseDSN))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	var responseCache *cache.Cache
	if viper.GetBool(constants.ViperKeyCacheEnabled) {
		responseCache = cache.New(
			viper.GetString(constants.ViperKeyCacheAddr),
			viper.GetDuration(constants.ViperKeyCacheTTL),
		)
		defer func() { _ = responseCache.Close() }()
	}

	svc, err := api.NewAPIService(store.NewStore(pool), responseCache)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		svc.Serve(viper.GetString(constants.ViperKeyHTTPAddr))
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return svc.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal(ctx, err)
	}
}

func initConfig() {
	viper.SetDefault(constants.ViperKeyHTTPAddr, ":8080")
	viper.SetDefault(constants.ViperKeyLogLevel, "info")
	viper.SetDefault(constants.ViperKeyCacheEnabled, false)
	viper.SetDefault(constants.ViperKeyCacheTTL, 5*time.Minute)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	viper.SetEnvPrefix("dataapi")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}
