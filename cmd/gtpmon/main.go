package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/protei/gtp/internal/logger"
	"github.com/protei/gtp/pkg/cdr"
	"github.com/protei/gtp/pkg/config"
	"github.com/protei/gtp/pkg/monitor"
	"github.com/protei/gtp/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "path to gtpmon.yaml")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := web.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Path:       cfg.Logs.Path,
		Level:      cfg.Logs.Level,
		Format:     cfg.Logs.Format,
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
		MaxAgeDays: cfg.Logs.MaxAgeDays,
		Compress:   cfg.Logs.Compress,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Get()
	log.Info("starting", "application", cfg.Application.Name, "version", cfg.Application.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon := monitor.New(cfg, log)

	if cfg.CDR.Enabled {
		var tracker cdr.Tracker
		if cfg.CDR.DatabaseDSN != "" {
			dbTracker, err := cdr.NewDatabaseTracker(cfg.CDR.DatabaseDSN)
			if err != nil {
				log.Fatal("cdr database tracker", err)
			}
			defer dbTracker.Close()
			tracker = dbTracker
		}
		writer, err := cdr.NewWriter(cdr.Config{
			BaseDir: cfg.CDR.Path,
			Format:  cdr.Format(cfg.CDR.Format),
			Rotation: cdr.Rotation{
				MaxSizeMB:   cfg.CDR.MaxSizeMB,
				MaxDuration: cfg.CDR.MaxDuration,
				Compress:    cfg.CDR.Compress,
			},
			Tracker: tracker,
		})
		if err != nil {
			log.Fatal("cdr writer", err)
		}
		defer writer.Close()
		mon.AddSink(writer)
	}

	if cfg.Web.Enabled {
		server, err := web.NewServer(cfg, log)
		if err != nil {
			log.Fatal("web server", err)
		}
		mon.AddSink(server)
		go func() {
			if err := server.Run(ctx); err != nil {
				log.Error("web server stopped", err)
				stop()
			}
		}()
	}

	if err := mon.Run(ctx); err != nil {
		log.Fatal("monitor", err)
	}
	log.Info("shutdown complete")
}
