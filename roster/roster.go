// Package roster renders the live roster message for a chat's open event.
// Composition is read-only: the same storage state, translator and clock
// always produce the same text, which callers diff against the previously
// sent message before editing.
package roster

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"telegram-event-roster-bot/locale"
	"telegram-event-roster-bot/storage"
)

const dateTimeLayout = "2006-01-02, 15:04"

// cancelLayout drops seconds from revocation timestamps.
const cancelLayout = "2006-01-02 15:04"

type Composer struct {
	store *storage.Storage
}

func New(store *storage.Storage) *Composer {
	return &Composer{store: store}
}

// Compose builds the full roster text for the chat's Open event as Telegram
// HTML. ok is false when the chat has no Open event.
func (c *Composer) Compose(chatID int64, tr locale.Translator, now time.Time) (text string, ok bool) {
	description := c.store.OpenEventText(chatID)
	if description == "" {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("⚽️\"<b>" + html.EscapeString(description) + "</b>\"⚽️\n")

	limit := c.store.OpenEventLimit(chatID)
	if limit > 0 {
		sb.WriteString(tr("Players limit") + fmt.Sprintf(": %d\n", limit))
	}

	if startsAt := c.store.OpenEventTime(chatID); startsAt != nil {
		sb.WriteString("📅  " + tr("Event date and time") + ": " + startsAt.Format(dateTimeLayout) + "\n")
		sb.WriteString(timeLeftLine(*startsAt, now, tr))
	}

	sb.WriteString(tr("Players list") + ":\n")

	players := c.store.OpenEventParticipants(chatID)
	var playerLines strings.Builder
	for i, userID := range players {
		position := i + 1
		if limit > 0 && position == limit+1 {
			playerLines.WriteString("\t\t\n" + tr("Reserve") + ":\n")
		}
		marker := "👟"
		if limit > 0 && position > limit {
			marker = "      "
		}
		name := html.EscapeString(c.store.FullName(userID))
		registrations, penalties := c.store.AttendanceCounts(chatID, userID)
		playerLines.WriteString(marker + fmt.Sprintf("%d. %s\n", position, decorateName(name, registrations, penalties, tr)))
	}
	sb.WriteString("\n" + playerLines.String())

	revoked := c.store.OpenEventRevoked(chatID)
	var tail strings.Builder
	if len(revoked) > 0 {
		sb.WriteString("\n" + tr("Revoked applications") + ":")
		for _, userID := range revoked {
			line := "      <s>" + html.EscapeString(c.store.FullName(userID))
			if revokedAt, found := c.store.CancellationTime(chatID, userID); found {
				line += " - " + revokedAt.Format(cancelLayout)
			}
			tail.WriteString(line + "</s>\n")
		}
	}

	if len(players) == 0 && len(revoked) == 0 {
		tail.WriteString(tr("No applications yet"))
	}

	sb.WriteString("\n" + tail.String())
	return sb.String(), true
}

// SquadStats renders the post-event attendance summary for the players who
// made the squad. Lifetime counts already include the event being archived,
// so no extra increment is applied here.
func (c *Composer) SquadStats(chatID int64, tr locale.Translator) string {
	limit := c.store.OpenEventLimit(chatID)

	var sb strings.Builder
	sb.WriteString(tr("Current statistics for this chat room members:") + "\n<code>")
	for i, userID := range c.store.OpenEventParticipants(chatID) {
		if limit > 0 && i+1 > limit {
			break
		}
		registrations, penalties := c.store.AttendanceCounts(chatID, userID)
		sb.WriteString(fmt.Sprintf("%s %d/%d\n", html.EscapeString(c.store.FullName(userID)), registrations, penalties))
	}
	sb.WriteString("</code>")
	return sb.String()
}

// ChatStats renders lifetime registration/penalty counters for everyone who
// ever applied to an event in the chat. Empty string when nobody has.
func (c *Composer) ChatStats(chatID int64, tr locale.Translator) string {
	userIDs := c.store.ChatParticipants(chatID)
	if len(userIDs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(tr("Current statistics for this chat room members:") + "\n")
	sb.WriteString("<tg-spoiler>" + tr("Registrations / Penalties") + "</tg-spoiler>\n<code>")
	for _, userID := range userIDs {
		registrations, penalties := c.store.AttendanceCounts(chatID, userID)
		sb.WriteString(fmt.Sprintf("ID:%d, %2d/%d, Full Name: %s\n",
			userID, registrations, penalties, html.EscapeString(c.store.FullName(userID))))
	}
	sb.WriteString("</code>")
	return sb.String()
}

// decorateName stacks warning cards onto a player's name once their history
// is long enough to judge: five registrations minimum and at least one
// penalty. Tiers are strict and only the most severe one applies.
func decorateName(name string, registrations, penalties int, tr locale.Translator) string {
	if registrations < 5 || penalties == 0 {
		return name
	}

	played := registrations - penalties
	ratio := float64(played) / float64(registrations)

	var cards string
	switch {
	case ratio < 0.7:
		cards = "🟨🟨🟨"
	case ratio < 0.8:
		cards = "🟨🟨"
	case ratio < 0.9:
		cards = "🟨"
	default:
		return name
	}

	return fmt.Sprintf("%s%s (%s %d %s %d)", name, cards, tr("Played"), played, tr("from"), registrations)
}

func timeLeftLine(startsAt, now time.Time, tr locale.Translator) string {
	if startsAt.Before(now) {
		return "⏳ " + tr("Event time out") + ".\n"
	}

	delta := startsAt.Sub(now)
	days := int(delta / (24 * time.Hour))
	hours := int(math.Round((delta % (24 * time.Hour)).Hours()))
	return "⏳ " + tr("Time left") + fmt.Sprintf(": %d ", days) + tr("days") + " " + tr("and") +
		fmt.Sprintf(" %d ", hours) + tr("hours") + "\n"
}
