package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatLangDefaultsToEnglish(t *testing.T) {
	s := newTestStorage(t)

	assert.Equal(t, DefaultLang, s.ChatLang(testChatID), "unknown chat")

	require.NoError(t, s.RegisterChat(testChatID, ""))
	assert.Equal(t, DefaultLang, s.ChatLang(testChatID), "empty language code")
}

func TestRegisterChatRefreshesLanguage(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.RegisterChat(testChatID, "uk"))
	assert.Equal(t, "uk", s.ChatLang(testChatID))

	require.NoError(t, s.RegisterChat(testChatID, "ru"))
	assert.Equal(t, "ru", s.ChatLang(testChatID))

	require.NoError(t, s.SetChatLang(testChatID, "pt-br"))
	assert.Equal(t, "pt-br", s.ChatLang(testChatID))
}

func TestLatestBotMessageRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.RegisterChat(testChatID, "en"))

	messageID, text := s.LatestBotMessage(testChatID)
	assert.Equal(t, 0, messageID)
	assert.Equal(t, "", text)

	require.NoError(t, s.SaveLatestBotMessage(testChatID, 77, "roster"))

	messageID, text = s.LatestBotMessage(testChatID)
	assert.Equal(t, 77, messageID)
	assert.Equal(t, "roster", text)
}
