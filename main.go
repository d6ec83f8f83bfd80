package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gullak-ai/gullak/internal/config"
	"github.com/gullak-ai/gullak/internal/consumer"
	"github.com/gullak-ai/gullak/internal/repository"
	"github.com/gullak-ai/gullak/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		logrus.Fatalf("couldn't parse config: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(os.Getenv("TG_TOKEN"))
	if err != nil {
		logrus.Fatal(err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout
	updatesChan := bot.GetUpdatesChan(u)

	cities, err := repository.NewLocalCityIndexFromFile(cfg.CitiesFile)
	if err != nil {
		logrus.Fatalf("couldn't load city index: %v", err)
	}

	ledger := repository.NewLocalLedger(cfg.ExpiryWindow)
	validate := validator.New()
	recorder := service.NewRecorder(ledger, validate)
	reporter := service.NewReporter(ledger, cfg.BillLookahead)
	power := service.NewPower(cities)
	assistant := service.NewCanned()

	hub := consumer.NewHub(bot, updatesChan, validate, recorder, reporter, power, assistant)
	sweeper := consumer.NewSweeper(ledger, cfg.SweepInterval)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		hub.Consume(groupCtx)
		return nil
	})
	group.Go(func() error {
		sweeper.Consume(groupCtx)
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	cancel()
	if err = group.Wait(); err != nil {
		logrus.Error(err)
	}
	<-time.After(2 * time.Second)
}
