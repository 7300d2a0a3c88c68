package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbsinteractive/edl/config"
	"github.com/cbsinteractive/edl/db"
	"github.com/cbsinteractive/edl/service"
	"github.com/cbsinteractive/edl/service/exceptions"
	"github.com/cbsinteractive/edl/source"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		log.Fatal(err)
	}

	reporter, err := exceptions.New(cfg.Sentry.DSN, cfg.Sentry.Env)
	if err != nil {
		logger.Fatalf("configuring sentry: %v", err)
	}

	client, err := db.NewClient(&db.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		logger.Fatal("unable to initialize redis client: ", err)
	}
	defer client.Close()
	if err := client.Ping(); err != nil {
		logger.Warn("redis not reachable, lists will fail to store: ", err)
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: service.Server{
			Config:      cfg,
			DB:          db.Repository{Store: client},
			Source:      &source.Opener{Region: cfg.AWSRegion},
			Logger:      logger,
			ErrReporter: reporter,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown: ", err)
		}
	}()

	logger.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server encountered a fatal error: ", err)
	}
	<-done
}
