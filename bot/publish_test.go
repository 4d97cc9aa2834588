package bot

import (
	"path/filepath"
	"testing"

	"telegram-event-roster-bot/locale"
	"telegram-event-roster-bot/roster"
	"telegram-event-roster-bot/storage"

	"github.com/mymmrac/telego"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChatID int64 = -9000

// apiRecorder stands in for the Telegram client and records every
// outgoing call.
type apiRecorder struct {
	sent          []string
	edits         []string
	markupDrops   int
	answered      int
	nextMessageID int
}

func (r *apiRecorder) SendMessage(params *telego.SendMessageParams) (*telego.Message, error) {
	r.sent = append(r.sent, params.Text)
	r.nextMessageID++
	return &telego.Message{MessageID: r.nextMessageID}, nil
}

func (r *apiRecorder) EditMessageText(params *telego.EditMessageTextParams) (*telego.Message, error) {
	r.edits = append(r.edits, params.Text)
	return &telego.Message{MessageID: params.MessageID}, nil
}

func (r *apiRecorder) EditMessageReplyMarkup(*telego.EditMessageReplyMarkupParams) (*telego.Message, error) {
	r.markupDrops++
	return nil, nil
}

func (r *apiRecorder) AnswerCallbackQuery(*telego.AnswerCallbackQueryParams) error {
	r.answered++
	return nil
}

func newTestBot(t *testing.T) (*Bot, *apiRecorder, *storage.Storage) {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	require.NoError(t, store.RegisterChat(testChatID, ""))

	api := &apiRecorder{}
	b := &Bot{
		api:        api,
		storage:    store,
		roster:     roster.New(store),
		knownChats: cache.New(cache.NoExpiration, 0),
	}
	return b, api, store
}

func commandUpdate(text string, userID int64) telego.Update {
	return telego.Update{Message: &telego.Message{
		Chat: telego.Chat{ID: testChatID},
		From: &telego.User{ID: userID, FirstName: "Alice"},
		Text: text,
	}}
}

func TestPublishRosterSkipsUnchangedText(t *testing.T) {
	b, api, store := newTestBot(t)
	english := locale.ForLanguage("")

	require.NoError(t, store.AddEvent(testChatID, "Friday match", nil, 0, 1, "announce"))
	require.NoError(t, store.UpsertUser(1, "Alice", "", ""))
	require.NoError(t, store.Apply(testChatID, 1))

	b.publishRoster(testChatID, english, false)
	require.Len(t, api.sent, 1)
	assert.Equal(t, 1, api.markupDrops)

	// Recomposing an unchanged roster must not send anything.
	b.publishRoster(testChatID, english, false)
	assert.Len(t, api.sent, 1)
	assert.Equal(t, 1, api.markupDrops)

	require.NoError(t, store.UpsertUser(2, "Bob", "", ""))
	require.NoError(t, store.Apply(testChatID, 2))

	b.publishRoster(testChatID, english, false)
	assert.Len(t, api.sent, 2)
}

func TestPublishRosterForceResendsUnchangedText(t *testing.T) {
	b, api, store := newTestBot(t)
	english := locale.ForLanguage("")

	require.NoError(t, store.AddEvent(testChatID, "Friday match", nil, 0, 1, "announce"))

	b.publishRoster(testChatID, english, false)
	require.Len(t, api.sent, 1)

	// /info re-posts the roster even when nothing changed.
	b.publishRoster(testChatID, english, true)
	assert.Len(t, api.sent, 2)
}

func TestRemoveTwiceSendsRosterOnce(t *testing.T) {
	b, api, store := newTestBot(t)

	require.NoError(t, store.AddEvent(testChatID, "Friday match", nil, 0, 1, "announce"))
	require.NoError(t, store.UpsertUser(7, "Alice", "", ""))
	require.NoError(t, store.Apply(testChatID, 7))

	update := commandUpdate("/remove", 7)
	b.removeHandler(nil, update)
	require.Len(t, api.sent, 1)

	// The repeated /remove only refreshes the cancellation timestamp;
	// with timestamps truncated to minutes the roster text is identical,
	// so no duplicate message goes out.
	b.removeHandler(nil, update)
	assert.Len(t, api.sent, 1)
	assert.Equal(t, 1, api.markupDrops)
}

func TestAddWithoutOpenEventNotifies(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.addHandler(nil, commandUpdate("/add", 7))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "No events", api.sent[0])
	assert.Zero(t, api.markupDrops)
}

func TestRefreshRosterInPlaceSkipsUnchangedText(t *testing.T) {
	b, api, store := newTestBot(t)
	english := locale.ForLanguage("")

	require.NoError(t, store.AddEvent(testChatID, "Friday match", nil, 0, 1, "announce"))

	b.publishRoster(testChatID, english, false)
	require.Len(t, api.sent, 1)
	messageID := api.nextMessageID

	b.refreshRosterInPlace(testChatID, messageID, english)
	assert.Empty(t, api.edits)

	require.NoError(t, store.UpsertUser(1, "Alice", "", ""))
	require.NoError(t, store.Apply(testChatID, 1))

	b.refreshRosterInPlace(testChatID, messageID, english)
	assert.Len(t, api.edits, 1)
}
