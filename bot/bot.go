package bot

import (
	"errors"
	"fmt"
	"log/slog"

	"telegram-event-roster-bot/roster"
	"telegram-event-roster-bot/storage"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	"github.com/patrickmn/go-cache"
)

var (
	ErrGetMe          = errors.New("cannot retrieve api user")
	ErrUpdatesChannel = errors.New("cannot get updates channel")
	ErrHandlerInit    = errors.New("cannot initialize handler")
)

// Callback payloads carried by the roster message buttons.
const (
	callbackApply  = "ADD"
	callbackRevoke = "REMOVE"
)

// sender is the slice of the Telegram API the handlers talk through;
// long polling still needs the concrete client.
type sender interface {
	SendMessage(params *telego.SendMessageParams) (*telego.Message, error)
	EditMessageText(params *telego.EditMessageTextParams) (*telego.Message, error)
	EditMessageReplyMarkup(params *telego.EditMessageReplyMarkupParams) (*telego.Message, error)
	AnswerCallbackQuery(params *telego.AnswerCallbackQueryParams) error
}

type Bot struct {
	client   *telego.Bot
	api      sender
	storage  *storage.Storage
	roster   *roster.Composer
	username string

	// knownChats memoizes chats already registered in the storage, so the
	// per-message registration hits the database once per chat per process.
	knownChats *cache.Cache
}

func New(token string, store *storage.Storage) (*Bot, error) {
	client, err := telego.NewBot(token, telego.WithDefaultLogger(false, true))
	if err != nil {
		slog.Error("bot: Failed to create Telegram bot", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		client:     client,
		api:        client,
		storage:    store,
		roster:     roster.New(store),
		knownChats: cache.New(cache.NoExpiration, 0),
	}, nil
}

// Run starts long polling and blocks until the update channel closes.
func (b *Bot) Run() error {
	botUser, err := b.client.GetMe()
	if err != nil {
		slog.Error("bot: Cannot retrieve api user", "error", err)
		return ErrGetMe
	}
	b.username = botUser.Username

	slog.Info("bot: Running as", "id", botUser.ID, "username", botUser.Username,
		"name", botUser.FirstName, "is_bot", botUser.IsBot)

	updates, err := b.client.UpdatesViaLongPolling(nil)
	if err != nil {
		slog.Error("bot: Cannot get update channel", "error", err)
		return ErrUpdatesChannel
	}

	bh, err := th.NewBotHandler(b.client, updates)
	if err != nil {
		slog.Error("bot: Cannot initialize bot handler", "error", err)
		return ErrHandlerInit
	}

	defer bh.Stop()
	defer b.client.StopLongPolling()

	bh.Use(b.userFillMiddleware)

	bh.Handle(b.eventAddHandler, th.CommandEqual("event_add"))
	bh.Handle(b.eventRemoveHandler, th.CommandEqual("event_remove"))
	bh.Handle(b.eventUpdateHandler, th.CommandEqual("event_update"))
	bh.Handle(b.limitHandler, th.CommandEqual("limit"))
	bh.Handle(b.datetimeHandler, th.CommandEqual("event_datetime"))
	bh.Handle(b.infoHandler, th.CommandEqual("info"))
	bh.Handle(b.addHandler, th.CommandEqual("add"))
	bh.Handle(b.removeHandler, th.CommandEqual("remove"))
	bh.Handle(b.penaltyHandler, th.CommandEqual("penalty"))
	bh.Handle(b.fixHandler, th.CommandEqual("fix"))
	bh.Handle(b.statHandler, th.CommandEqual("stat"))
	bh.Handle(b.helpHandler, th.CommandEqual("help"))
	bh.HandleCallbackQuery(b.rosterButtonHandler, th.AnyCallbackQueryWithMessage())
	bh.Handle(b.fallbackHandler, th.AnyMessage())

	bh.Start()

	return nil
}
