package bot

import (
	"log/slog"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegohandler"
)

// userFillMiddleware refreshes the sender's user row before any handler
// runs, so display names in the roster stay current without per-handler
// bookkeeping. Callback queries carry their sender separately and are
// handled in the button handler.
func (b *Bot) userFillMiddleware(bot *telego.Bot, update telego.Update, next telegohandler.Handler) {
	if update.Message != nil && update.Message.From != nil {
		from := update.Message.From
		if err := b.storage.UpsertUser(from.ID, from.FirstName, from.LastName, from.Username); err != nil {
			slog.Error("bot: Failed to upsert user", "error", err, "user_id", from.ID)
		}
	}

	next(bot, update)
}
