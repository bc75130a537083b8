package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/transcript-sheet/audio"
	"github.com/mrsingh-rishi/transcript-sheet/auth"
	"github.com/mrsingh-rishi/transcript-sheet/config"
	"github.com/mrsingh-rishi/transcript-sheet/server"
	"github.com/mrsingh-rishi/transcript-sheet/stt"
	"github.com/mrsingh-rishi/transcript-sheet/worker"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func main() {
	defaultConfig := os.Getenv("CONFIG_FILE")
	if defaultConfig == "" {
		defaultConfig = "transcriber.ini"
	}
	configPath := flag.String("config", defaultConfig, "optional ini config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logrus.NewEntry(newLogger(cfg))

	// One client for every outbound call: system roots plus the provider certificate.
	httpClient, err := stt.NewHTTPClient(cfg.CertPath, cfg.HTTPTimeout)
	if err != nil {
		log.WithError(err).Fatal("failed to create http client")
	}

	fetcher := audio.NewFetcher(
		audio.NewDiskResolver(cfg.DiskURL, httpClient),
		audio.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath),
		httpClient,
		cfg.MaxAudioBytes,
		log,
	)

	transcriber, err := worker.NewTranscriberWorker(worker.Config{
		Credential: cfg.AudioToken,
		NewClient: func() worker.SpeechClient {
			return stt.NewClient(stt.Options{
				OAuthURL:   cfg.OAuthURL,
				APIURL:     cfg.APIURL,
				Scope:      cfg.Scope,
				HTTPClient: httpClient,
				Logger:     log,
			})
		},
		Fetcher: fetcher,
		Policy:  worker.PollPolicy{Attempts: cfg.PollAttempts, Divisor: cfg.PollDivisor},
		Logger:  log,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create transcriber")
	}

	srv := server.New(server.Options{
		Transcriber: transcriber,
		Checker:     auth.NewChecker(cfg.PassHash),
		RunTimeout:  cfg.RunTimeout,
		Logger:      log,
	})

	go func() {
		if err := srv.Listen(cfg.Listen); err != nil {
			log.WithError(err).Fatal("server error")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	if err := srv.Shutdown(10 * time.Second); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
