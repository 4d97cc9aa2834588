package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultLang is used when a chat never reported a language code.
const DefaultLang = "en"

// RegisterChat records the chat on first contact and refreshes its language
// code on later calls.
func (s *Storage) RegisterChat(chatID int64, lang string) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	chat := Chat{ID: chatID, Lang: lang}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{"lang": lang}),
	}).Create(&chat)
	if result.Error != nil {
		slog.Error("storage: Failed to register chat", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to register chat: %w", result.Error)
	}
	return nil
}

// ChatLang returns the chat's saved language code, falling back to
// DefaultLang for unknown chats or an unset code.
func (s *Storage) ChatLang(chatID int64) string {
	var chat Chat
	if err := s.db.First(&chat, "id = ?", chatID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("storage: Failed to get chat language", "error", err, "chat_id", chatID)
		}
		return DefaultLang
	}
	if chat.Lang == "" {
		return DefaultLang
	}
	return chat.Lang
}

func (s *Storage) SetChatLang(chatID int64, lang string) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	result := s.db.Model(&Chat{ID: chatID}).Update("lang", lang)
	if result.Error != nil {
		slog.Error("storage: Failed to set chat language", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to set chat language: %w", result.Error)
	}
	return nil
}

// LatestBotMessage returns the id and text of the last roster message the
// bot rendered in the chat; zero values when none was saved yet.
func (s *Storage) LatestBotMessage(chatID int64) (int, string) {
	var chat Chat
	if err := s.db.First(&chat, "id = ?", chatID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("storage: Failed to get latest bot message", "error", err, "chat_id", chatID)
		}
		return 0, ""
	}
	return chat.LatestMessageID, chat.LatestMessageText
}

// SaveLatestBotMessage caches the roster message just sent or edited, so the
// next composition can be diffed against it.
func (s *Storage) SaveLatestBotMessage(chatID int64, messageID int, text string) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	result := s.db.Model(&Chat{ID: chatID}).Updates(map[string]any{
		"latest_message_id":   messageID,
		"latest_message_text": text,
	})
	if result.Error != nil {
		slog.Error("storage: Failed to save latest bot message", "error", result.Error,
			"chat_id", chatID, "message_id", messageID)
		return fmt.Errorf("failed to save latest bot message: %w", result.Error)
	}
	return nil
}
