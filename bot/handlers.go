package bot

import (
	"errors"
	"html"
	"log/slog"
	"strconv"
	"time"

	"telegram-event-roster-bot/eventtime"
	"telegram-event-roster-bot/storage"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// eventAddHandler opens a new registration round. Any previous Open event
// for the chat is closed by the gateway in the same transaction that
// creates the new one.
func (b *Bot) eventAddHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /event_add")
	message := update.Message
	chatID := message.Chat.ID
	lang := languageOf(message)
	b.ensureChat(chatID, lang)
	if lang != "" {
		if err := b.storage.SetChatLang(chatID, lang); err != nil {
			slog.Error("bot: Failed to set chat language", "error", err, "chat_id", chatID)
		}
	}
	tr := b.translator(chatID)

	description := b.commandArgOf(message)
	if description == "" {
		// An event without a description would be indistinguishable from
		// having no open event at all.
		slog.Warn("bot: /event_add without description", "chat_id", chatID)
		b.sendText(chatID, helpText)
		return
	}
	startsAt := eventtime.Parse(description, time.Now())

	b.dropKeyboard(chatID)

	text := tr("New event created") + ":\n\n⚽️<b> " + html.EscapeString(description) + " </b>⚽️"
	sent, err := b.api.SendMessage(tu.Message(tu.ID(chatID), text).
		WithParseMode(telego.ModeHTML).
		WithReplyMarkup(b.rosterKeyboard(tr)))
	if err != nil {
		slog.Error("bot: Failed to announce new event", "error", err, "chat_id", chatID)
		return
	}

	if err := b.storage.AddEvent(chatID, description, startsAt, 0, sent.MessageID, text); err != nil {
		slog.Error("bot: Failed to store new event", "error", err, "chat_id", chatID)
	}
}

func (b *Bot) eventRemoveHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /event_remove")
	chatID := update.Message.Chat.ID
	b.ensureChat(chatID, languageOf(update.Message))

	b.dropKeyboard(chatID)
	if err := b.storage.CloseOpenEvents(chatID); err != nil {
		slog.Error("bot: Failed to close open events", "error", err, "chat_id", chatID)
	}
}

func (b *Bot) eventUpdateHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /event_update")
	message := update.Message
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))
	tr := b.translator(chatID)

	newText := b.commandArgOf(message)
	if newText == "" {
		return
	}
	if err := b.storage.SetOpenEventText(chatID, newText); err != nil {
		slog.Error("bot: Failed to update event text", "error", err, "chat_id", chatID)
		return
	}

	b.publishRoster(chatID, tr, false)
}

func (b *Bot) limitHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /limit")
	message := update.Message
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))
	tr := b.translator(chatID)

	arg := b.commandArgOf(message)
	limit, err := strconv.Atoi(arg)
	if err != nil || limit < 0 {
		slog.Warn("bot: Invalid limit argument", "arg", arg, "chat_id", chatID)
		return
	}
	if err := b.storage.SetOpenEventLimit(chatID, limit); err != nil {
		slog.Error("bot: Failed to set players limit", "error", err, "chat_id", chatID)
		return
	}

	b.publishRoster(chatID, tr, false)
}

func (b *Bot) datetimeHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /event_datetime")
	message := update.Message
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))
	tr := b.translator(chatID)

	if startsAt := eventtime.Parse(b.commandArgOf(message), time.Now()); startsAt != nil {
		if err := b.storage.SetOpenEventTime(chatID, *startsAt); err != nil {
			slog.Error("bot: Failed to set event time", "error", err, "chat_id", chatID)
			return
		}
	}

	b.publishRoster(chatID, tr, false)
}

func (b *Bot) infoHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /info")
	chatID := update.Message.Chat.ID
	b.ensureChat(chatID, languageOf(update.Message))

	b.publishRoster(chatID, b.translator(chatID), true)
}

func (b *Bot) addHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /add")
	message := update.Message
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))
	tr := b.translator(chatID)

	if message.From == nil {
		return
	}
	err := b.storage.Apply(chatID, message.From.ID)
	switch {
	case errors.Is(err, storage.ErrNoOpenEvent):
		b.sendText(chatID, tr("No events"))
		return
	case err != nil:
		slog.Error("bot: Failed to apply for participation", "error", err,
			"chat_id", chatID, "user_id", message.From.ID)
		return
	}

	b.publishRoster(chatID, tr, false)
}

func (b *Bot) removeHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /remove")
	message := update.Message
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))
	tr := b.translator(chatID)

	if message.From == nil {
		return
	}
	err := b.storage.Revoke(chatID, message.From.ID)
	switch {
	case errors.Is(err, storage.ErrNoOpenEvent):
		b.sendText(chatID, tr("No events"))
		return
	case err != nil:
		slog.Error("bot: Failed to revoke application", "error", err,
			"chat_id", chatID, "user_id", message.From.ID)
		return
	}

	b.publishRoster(chatID, tr, false)
}

func (b *Bot) penaltyHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /penalty")
	message := update.Message
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))
	tr := b.translator(chatID)

	if message.From == nil {
		return
	}
	arg := b.commandArgOf(message)
	targetID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || targetID <= 0 {
		slog.Warn("bot: Invalid penalty target", "arg", arg, "chat_id", chatID)
		return
	}
	if err := b.storage.RecordPenalty(chatID, targetID, message.From.ID); err != nil {
		slog.Error("bot: Failed to record penalty", "error", err,
			"chat_id", chatID, "user_id", targetID)
		return
	}

	// Penalties change the warning cards on the roster.
	b.publishRoster(chatID, tr, false)
}

func (b *Bot) fixHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /fix")
	chatID := update.Message.Chat.ID
	b.ensureChat(chatID, languageOf(update.Message))
	tr := b.translator(chatID)

	if b.storage.OpenEventText(chatID) == "" {
		b.sendText(chatID, tr("No events to fix stat for"))
		return
	}

	// The squad must be read before the event is fixed; Fixed events drop
	// out of the open-event queries.
	statsText := b.roster.SquadStats(chatID, tr)

	b.dropKeyboard(chatID)
	b.sendText(chatID, statsText)

	if err := b.storage.FixOpenEvent(chatID); err != nil {
		slog.Error("bot: Failed to fix event", "error", err, "chat_id", chatID)
	}
}

func (b *Bot) statHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /stat")
	chatID := update.Message.Chat.ID
	b.ensureChat(chatID, languageOf(update.Message))
	tr := b.translator(chatID)

	text := b.roster.ChatStats(chatID, tr)
	if text == "" {
		return
	}
	b.sendText(chatID, text)
}

func (b *Bot) helpHandler(bot *telego.Bot, update telego.Update) {
	slog.Info("bot: /help")
	chatID := update.Message.Chat.ID
	b.ensureChat(chatID, languageOf(update.Message))

	b.sendText(chatID, helpText)
}

// rosterButtonHandler processes the join/leave buttons under the roster
// message and edits it in place when the roster changed.
func (b *Bot) rosterButtonHandler(bot *telego.Bot, query telego.CallbackQuery) {
	slog.Info("bot: Roster button", "data", query.Data, "user_id", query.From.ID)
	if query.Message == nil {
		return
	}
	chatID := query.Message.GetChat().ID

	from := query.From
	if err := b.storage.UpsertUser(from.ID, from.FirstName, from.LastName, from.Username); err != nil {
		slog.Error("bot: Failed to upsert user", "error", err, "user_id", from.ID)
	}
	b.ensureChat(chatID, from.LanguageCode)
	tr := b.translator(chatID)

	var opErr error
	switch query.Data {
	case callbackApply:
		opErr = b.storage.Apply(chatID, from.ID)
	case callbackRevoke:
		opErr = b.storage.Revoke(chatID, from.ID)
	}
	if opErr != nil && !errors.Is(opErr, storage.ErrNoOpenEvent) {
		slog.Error("bot: Failed to process roster button", "error", opErr,
			"chat_id", chatID, "user_id", from.ID)
	}

	if opErr == nil {
		b.refreshRosterInPlace(chatID, query.Message.GetMessageID(), tr)
	}

	if err := b.api.AnswerCallbackQuery(tu.CallbackQuery(query.ID)); err != nil {
		slog.Warn("bot: Failed to answer callback query", "error", err)
	}
}

// fallbackHandler greets new chat members with the current roster and logs
// anything else it does not understand.
func (b *Bot) fallbackHandler(bot *telego.Bot, update telego.Update) {
	message := update.Message
	if message == nil {
		return
	}
	chatID := message.Chat.ID
	b.ensureChat(chatID, languageOf(message))

	if len(message.NewChatMembers) > 0 {
		b.publishRoster(chatID, b.translator(chatID), true)
		return
	}

	if message.Text != "" {
		slog.Debug("bot: Unhandled message", "chat_id", chatID, "text", message.Text)
	}
}

const helpText = `Available BOT commands:

/event_add TEXT
Register new event

/event_remove
Remove open event

/event_update TEXT
Change event description

/limit XX
Set players limit

/event_datetime DATE TIME
Set event date and time in any format. It will be parsed automatically.
Example 1: 2026-01-30, 18:00
Example 2: tomorrow, 14:30

/info
Show event details

/add
Register yourself to the event

/remove
Revoke your application

/fix
Fix event statistics (archive the event into participants counters)

/penalty USERID
Increase someone's PENALTY counter for unreasonable skipping of the event
without notifying others. You can find USERID by command /stat

/stat
This group members statistics (registrations and penalties)`
