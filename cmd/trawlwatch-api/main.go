package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trawlwatch/internal/adapters/cache"
	"trawlwatch/internal/adapters/registry/gfw"
	"trawlwatch/internal/api"
	"trawlwatch/internal/platform/config"
	"trawlwatch/internal/platform/logger"
	resolvesvc "trawlwatch/internal/services/resolve/service"
	screensvc "trawlwatch/internal/services/screen/service"
)

func main() {
	root := config.New()
	gfwCfg := root.Prefix("GFW_")
	apiCfg := root.Prefix("API_")

	l := logger.Get()

	client := gfw.NewClient(gfw.Options{
		BaseURL:    gfwCfg.MayString("BASE_URL", ""),
		Token:      gfwCfg.MustString("API_TOKEN"),
		Timeout:    gfwCfg.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries: gfwCfg.MayInt("MAX_RETRIES", 4),
	})
	idCache := cache.NewFile(apiCfg.MayString("CACHE_PATH", "data/reference/vessel_identity_cache.json"))
	resolver := resolvesvc.New(idCache, client)
	screener := screensvc.New(resolver, client)

	srv := &api.Server{
		Resolver:         resolver,
		Classifier:       screener,
		Cache:            idCache,
		DefaultFilter:    apiCfg.MayString("FLAG", "SEN"),
		DefaultThreshold: apiCfg.MayFloat64("THRESHOLD_HOURS", 500),
	}

	httpSrv := &http.Server{
		Addr:              apiCfg.MustPort("PORT"),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		l.Info().Str("addr", httpSrv.Addr).Msg("ops api listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("shutdown failed")
	}
}
