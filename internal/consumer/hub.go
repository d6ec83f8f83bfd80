// Package consumer receives telegram updates and drives the ledger services.
package consumer

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/gullak-ai/gullak/internal/service"
)

// Hub demultiplexes the shared updates channel into one channel per chat,
// each served by its own finance consumer. The chat id doubles as the stable
// user id, so a user's commands are handled in order while different users
// proceed in parallel.
type Hub struct {
	bot             *tgbotapi.BotAPI
	updatesChan     tgbotapi.UpdatesChannel
	validator       *validator.Validate
	recorder        *service.Recorder
	reporter        *service.Reporter
	power           *service.Power
	assistant       service.Assistant
	financeChannels map[int64]chan tgbotapi.Update
}

func NewHub(bot *tgbotapi.BotAPI, updatesChan tgbotapi.UpdatesChannel, validator *validator.Validate,
	recorder *service.Recorder, reporter *service.Reporter, power *service.Power, assistant service.Assistant) *Hub {
	return &Hub{
		bot:             bot,
		updatesChan:     updatesChan,
		validator:       validator,
		recorder:        recorder,
		reporter:        reporter,
		power:           power,
		assistant:       assistant,
		financeChannels: make(map[int64]chan tgbotapi.Update),
	}
}

func (h *Hub) Consume(ctx context.Context) {
	logrus.Info("hub consumer started")
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("hub consumer stopped: %v", ctx.Err())
			return
		case update := <-h.updatesChan:
			if update.Message == nil {
				continue
			}
			chatID := update.Message.Chat.ID
			financeCh, ok := h.financeChannels[chatID]
			if !ok {
				logrus.Infof("first touch with the user with chat id %d", chatID)
				financeCh = make(chan tgbotapi.Update)
				h.financeChannels[chatID] = financeCh
				userID := strconv.FormatInt(chatID, 10)
				go NewFinance(h.bot, userID, financeCh, h.validator, h.recorder, h.reporter, h.power, h.assistant).Consume(ctx)
			}
			financeCh <- update
		}
	}
}
