package bot

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"telegram-event-roster-bot/locale"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// commandArg returns everything after the command verb, with any mention of
// the given bot username stripped out.
func commandArg(messageText, botUsername string) string {
	_, arg, found := strings.Cut(messageText, " ")
	if !found {
		return ""
	}
	if botUsername != "" {
		arg = strings.ReplaceAll(arg, "@"+botUsername, "")
	}
	return strings.TrimSpace(arg)
}

func (b *Bot) commandArgOf(message *telego.Message) string {
	return commandArg(message.Text, b.username)
}

func languageOf(message *telego.Message) string {
	if message.From != nil {
		return message.From.LanguageCode
	}
	return ""
}

// ensureChat registers the chat (with the reporter's language) the first
// time it is seen in this process.
func (b *Bot) ensureChat(chatID int64, lang string) {
	key := strconv.FormatInt(chatID, 10)
	if _, seen := b.knownChats.Get(key); seen {
		return
	}

	if err := b.storage.RegisterChat(chatID, lang); err != nil {
		slog.Error("bot: Failed to register chat", "error", err, "chat_id", chatID)
		return
	}
	b.knownChats.SetDefault(key, struct{}{})
}

func (b *Bot) translator(chatID int64) locale.Translator {
	return locale.ForLanguage(b.storage.ChatLang(chatID))
}

func (b *Bot) rosterKeyboard(tr locale.Translator) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(tr("+ Apply for participation")).WithCallbackData(callbackApply)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(tr("- Revoke application")).WithCallbackData(callbackRevoke)),
	)
}

// dropKeyboard removes the join/leave buttons from the previous roster
// message; the buttons live on the latest message only.
func (b *Bot) dropKeyboard(chatID int64) {
	messageID, _ := b.storage.LatestBotMessage(chatID)
	if messageID == 0 {
		return
	}

	_, err := b.api.EditMessageReplyMarkup(&telego.EditMessageReplyMarkupParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
	})
	if err != nil {
		slog.Warn("bot: Failed to drop keyboard from previous message", "error", err,
			"chat_id", chatID, "message_id", messageID)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	_, err := b.api.SendMessage(tu.Message(tu.ID(chatID), text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true}))
	if err != nil {
		slog.Error("bot: Failed to send message", "error", err, "chat_id", chatID)
	}
}

// publishRoster recomposes the roster and sends it as a fresh message with
// the join/leave keyboard, stripping the keyboard from the previous one.
// Unless force is set, nothing is sent when the text matches the cached
// last message. With force set and no open event, a "No events" notice is
// sent instead.
func (b *Bot) publishRoster(chatID int64, tr locale.Translator, force bool) {
	text, ok := b.roster.Compose(chatID, tr, time.Now())
	if !ok {
		if force {
			b.sendText(chatID, tr("No events"))
		}
		return
	}

	_, lastText := b.storage.LatestBotMessage(chatID)
	if !force && text == lastText {
		return
	}

	b.dropKeyboard(chatID)

	message, err := b.api.SendMessage(tu.Message(tu.ID(chatID), text).
		WithParseMode(telego.ModeHTML).
		WithReplyMarkup(b.rosterKeyboard(tr)).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true}))
	if err != nil {
		slog.Error("bot: Failed to send roster message", "error", err, "chat_id", chatID)
		return
	}

	if err := b.storage.SaveLatestBotMessage(chatID, message.MessageID, text); err != nil {
		slog.Error("bot: Failed to save latest message", "error", err, "chat_id", chatID)
	}
}

// refreshRosterInPlace edits the roster message the buttons live on, but
// only when the composed text actually changed.
func (b *Bot) refreshRosterInPlace(chatID int64, messageID int, tr locale.Translator) {
	text, ok := b.roster.Compose(chatID, tr, time.Now())
	if !ok {
		return
	}

	_, lastText := b.storage.LatestBotMessage(chatID)
	if text == lastText {
		return
	}

	_, err := b.api.EditMessageText(&telego.EditMessageTextParams{
		ChatID:             tu.ID(chatID),
		MessageID:          messageID,
		Text:               text,
		ParseMode:          telego.ModeHTML,
		ReplyMarkup:        b.rosterKeyboard(tr),
		LinkPreviewOptions: &telego.LinkPreviewOptions{IsDisabled: true},
	})
	if err != nil {
		slog.Error("bot: Failed to edit roster message", "error", err,
			"chat_id", chatID, "message_id", messageID)
		return
	}

	if err := b.storage.SaveLatestBotMessage(chatID, messageID, text); err != nil {
		slog.Error("bot: Failed to save latest message", "error", err, "chat_id", chatID)
	}
}
