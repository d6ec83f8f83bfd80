package consumer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/gullak-ai/gullak/internal/command"
	"github.com/gullak-ai/gullak/internal/repository"
	"github.com/gullak-ai/gullak/internal/service"
)

const maxMessageLength = 512

const tryAgainMessage = "something went wrong, please try again"

// Finance serves one user's chat: parse the message, apply it to the ledger
// or answer from a collaborator, reply with plain text.
type Finance struct {
	bot         *tgbotapi.BotAPI
	userID      string
	updatesChan chan tgbotapi.Update
	validator   *validator.Validate
	recorder    *service.Recorder
	reporter    *service.Reporter
	power       *service.Power
	assistant   service.Assistant
}

func NewFinance(bot *tgbotapi.BotAPI, userID string, updatesChan chan tgbotapi.Update, validator *validator.Validate,
	recorder *service.Recorder, reporter *service.Reporter, power *service.Power, assistant service.Assistant) *Finance {
	return &Finance{
		bot:         bot,
		userID:      userID,
		updatesChan: updatesChan,
		validator:   validator,
		recorder:    recorder,
		reporter:    reporter,
		power:       power,
		assistant:   assistant,
	}
}

func (f *Finance) Consume(ctx context.Context) {
	logrus.Infof("finance consumer started for user %s", f.userID)
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("finance consumer for user %s stopped: %v", f.userID, ctx.Err())
			return
		case update := <-f.updatesChan:
			reply := f.handle(ctx, update.Message.Text)
			if err := f.sendMessage(update.Message, reply); err != nil {
				logrus.Errorf("finance consumer send message error: %v", err)
			}
		}
	}
}

func (f *Finance) handle(ctx context.Context, text string) string {
	if err := f.validator.Var(text, fmt.Sprintf("required,max=%d", maxMessageLength)); err != nil {
		logrus.Debugf("finance consumer for user %s rejected message: %v", f.userID, err)
		return fmt.Sprintf("I can only handle non-empty messages up to %d characters", maxMessageLength)
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(lower, "compare ") {
		return f.handleCompare(ctx, strings.TrimSpace(text[len("compare "):]))
	}
	if strings.HasPrefix(lower, "news ") {
		return f.handleNews(ctx, strings.TrimSpace(text[len("news "):]))
	}

	cmd, err := command.Parse(text)
	if err != nil {
		return f.handleParseError(ctx, text, err)
	}

	switch c := cmd.(type) {
	case command.SetBudget:
		return f.handleSetBudget(ctx, c)
	case command.Spend:
		return f.handleSpend(ctx, c)
	case command.Owe:
		return f.handleOwe(ctx, c)
	case command.Bill:
		return f.handleBill(ctx, c)
	case command.Summary:
		return f.handleSummary(ctx, c)
	}
	logrus.Errorf("finance consumer got unhandled command type %T", cmd)
	return tryAgainMessage
}

func (f *Finance) handleParseError(ctx context.Context, text string, err error) string {
	var parseErr *command.ParseError
	if !errors.As(err, &parseErr) {
		logrus.Errorf("finance consumer parse error: %v", err)
		return tryAgainMessage
	}
	switch parseErr.Reason {
	case command.Unrecognized:
		newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		answer, aerr := f.assistant.Answer(newCtx, text)
		if aerr != nil {
			logrus.Errorf("finance consumer couldn't get answer: %v", aerr)
			return tryAgainMessage
		}
		return answer
	case command.InvalidAmount:
		return fmt.Sprintf("that doesn't look like an amount: %s. Amounts must be non-negative numbers", parseErr.Token)
	case command.InvalidDate:
		return fmt.Sprintf("couldn't read the date %s. Use YYYY-MM-DD, e.g. 2024-07-01", parseErr.Token)
	case command.MissingField:
		return fmt.Sprintf("format error. Use: %s", parseErr.Usage)
	}
	logrus.Errorf("finance consumer got unknown parse reason: %v", parseErr.Reason)
	return tryAgainMessage
}

func (f *Finance) handleSetBudget(ctx context.Context, c command.SetBudget) string {
	if err := f.recorder.SetBudget(ctx, f.userID, c.Month, c.Items); err != nil {
		logrus.Errorf("finance consumer couldn't set budget: %v", err)
		return tryAgainMessage
	}
	parts := make([]string, len(c.Items))
	for i, item := range c.Items {
		parts[i] = fmt.Sprintf("%s %s", item.Category, item.Amount.StringFixed(2))
	}
	logrus.Infof("user %s set budget for %s: %s", f.userID, c.Month, strings.Join(parts, ", "))
	return fmt.Sprintf("budget set for %s: %s", c.Month, strings.Join(parts, ", "))
}

func (f *Finance) handleSpend(ctx context.Context, c command.Spend) string {
	status, err := f.recorder.Spend(ctx, f.userID, c.Amount, c.Category)
	if err != nil {
		logrus.Errorf("finance consumer couldn't record spending: %v", err)
		return tryAgainMessage
	}
	logrus.Infof("user %s spent %s on %s", f.userID, c.Amount.StringFixed(2), c.Category)
	if !status.Budgeted {
		return fmt.Sprintf("recorded spending %s on %s (no budget set for %s in %s)",
			status.Amount.StringFixed(2), status.Category, status.Category, status.Month)
	}
	if status.Spent.GreaterThan(status.Budget) {
		return fmt.Sprintf("you have exceeded your %s budget by %s. Total spent: %s",
			status.Category, status.Over().StringFixed(2), status.Spent.StringFixed(2))
	}
	return fmt.Sprintf("recorded spending %s on %s. Total spent: %s / %s",
		status.Amount.StringFixed(2), status.Category, status.Spent.StringFixed(2), status.Budget.StringFixed(2))
}

func (f *Finance) handleOwe(ctx context.Context, c command.Owe) string {
	if err := f.recorder.Owe(ctx, f.userID, c.Description, c.Amount); err != nil {
		logrus.Errorf("finance consumer couldn't record debt: %v", err)
		return tryAgainMessage
	}
	logrus.Infof("user %s recorded debt: %s %s", f.userID, c.Description, c.Amount.StringFixed(2))
	return fmt.Sprintf("debt recorded: owe %s %s", c.Description, c.Amount.StringFixed(2))
}

func (f *Finance) handleBill(ctx context.Context, c command.Bill) string {
	if err := f.recorder.AddBill(ctx, f.userID, c.Description, c.Amount, c.DueDate); err != nil {
		logrus.Errorf("finance consumer couldn't record bill: %v", err)
		return tryAgainMessage
	}
	logrus.Infof("user %s recorded bill: %s %s due %s", f.userID, c.Description, c.Amount.StringFixed(2), c.DueDate.Format("2006-01-02"))
	return fmt.Sprintf("bill recorded: %s %s, due %s", c.Description, c.Amount.StringFixed(2), c.DueDate.Format("2006-01-02"))
}

func (f *Finance) handleSummary(ctx context.Context, c command.Summary) string {
	report, err := f.reporter.Summarize(ctx, f.userID, c.Month)
	if err != nil {
		logrus.Errorf("finance consumer couldn't summarize: %v", err)
		return tryAgainMessage
	}
	return formatReport(report)
}

func (f *Finance) handleCompare(ctx context.Context, rest string) string {
	cityA, cityB, ok := splitCities(rest)
	if !ok {
		return "format error. Use: compare <cityA> vs <cityB>"
	}
	comparison, err := f.power.Compare(ctx, cityA, cityB)
	if errors.Is(err, repository.ErrCityNotFound) {
		return fmt.Sprintf("%v", err)
	}
	if err != nil {
		logrus.Errorf("finance consumer couldn't compare cities: %v", err)
		return tryAgainMessage
	}
	return comparison.Statement()
}

func (f *Finance) handleNews(ctx context.Context, text string) string {
	newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	summary, err := f.assistant.SimplifyNews(newCtx, text)
	if err != nil {
		logrus.Errorf("finance consumer couldn't simplify news: %v", err)
		return tryAgainMessage
	}
	return summary
}

func splitCities(rest string) (string, string, bool) {
	lower := strings.ToLower(rest)
	sep := " vs "
	idx := strings.Index(lower, sep)
	if idx < 0 {
		sep = " and "
		idx = strings.Index(lower, sep)
	}
	if idx < 0 {
		return "", "", false
	}
	cityA := strings.TrimSpace(rest[:idx])
	cityB := strings.TrimSpace(rest[idx+len(sep):])
	if cityA == "" || cityB == "" {
		return "", "", false
	}
	return cityA, cityB, true
}

func (f *Finance) sendMessage(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID

	_, err := f.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("sendMessage, telegram bot couldn't send message: %v", err)
	}
	return nil
}
