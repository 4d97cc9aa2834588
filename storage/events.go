package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// CloseOpenEvents transitions every Open event of the chat to Closed. It is
// a no-op when the chat has none.
func (s *Storage) CloseOpenEvents(chatID int64) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	result := s.db.Model(&Event{}).
		Where("chat_id = ? AND status = ?", chatID, StatusOpen).
		Update("status", StatusClosed)
	if result.Error != nil {
		slog.Error("storage: Failed to close open events", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to close open events: %w", result.Error)
	}
	return nil
}

// AddEvent opens a new registration round for the chat and records the
// roster message announcing it. Any event still Open for the chat is closed
// in the same transaction, so at most one Open event per chat can exist.
func (s *Storage) AddEvent(chatID int64, description string, startsAt *time.Time, playerLimit int, messageID int, messageText string) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}
	if playerLimit < 0 {
		return fmt.Errorf("%w: player limit must not be negative, got %d", ErrInvalidArgument, playerLimit)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Event{}).
			Where("chat_id = ? AND status = ?", chatID, StatusOpen).
			Update("status", StatusClosed).Error
		if err != nil {
			return err
		}

		event := Event{
			ChatID:      chatID,
			Status:      StatusOpen,
			Description: description,
			StartsAt:    startsAt,
			PlayerLimit: playerLimit,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Model(&Chat{ID: chatID}).Updates(map[string]any{
			"latest_event_id":     event.ID,
			"latest_message_id":   messageID,
			"latest_message_text": messageText,
		}).Error
	})
	if err != nil {
		slog.Error("storage: Failed to add event", "error", err, "chat_id", chatID)
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

// OpenEventText returns the description of the chat's Open event, or the
// empty string when none is open.
func (s *Storage) OpenEventText(chatID int64) string {
	event, err := openEvent(s.db, chatID)
	if err != nil {
		if !errors.Is(err, ErrNoOpenEvent) {
			slog.Error("storage: Failed to get open event text", "error", err, "chat_id", chatID)
		}
		return ""
	}
	return event.Description
}

func (s *Storage) SetOpenEventText(chatID int64, text string) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	result := s.db.Model(&Event{}).
		Where("chat_id = ? AND status = ?", chatID, StatusOpen).
		Update("description", text)
	if result.Error != nil {
		slog.Error("storage: Failed to set open event text", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to set open event text: %w", result.Error)
	}
	return nil
}

// OpenEventLimit returns the player capacity of the chat's Open event.
// Zero means unlimited, and also stands in when no event is open.
func (s *Storage) OpenEventLimit(chatID int64) int {
	event, err := openEvent(s.db, chatID)
	if err != nil {
		if !errors.Is(err, ErrNoOpenEvent) {
			slog.Error("storage: Failed to get open event limit", "error", err, "chat_id", chatID)
		}
		return 0
	}
	return event.PlayerLimit
}

func (s *Storage) SetOpenEventLimit(chatID int64, limit int) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("%w: player limit must not be negative, got %d", ErrInvalidArgument, limit)
	}

	result := s.db.Model(&Event{}).
		Where("chat_id = ? AND status = ?", chatID, StatusOpen).
		Update("player_limit", limit)
	if result.Error != nil {
		slog.Error("storage: Failed to set open event limit", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to set open event limit: %w", result.Error)
	}
	return nil
}

// OpenEventTime returns the scheduled date-time of the chat's Open event,
// nil when the event has none or no event is open.
func (s *Storage) OpenEventTime(chatID int64) *time.Time {
	event, err := openEvent(s.db, chatID)
	if err != nil {
		if !errors.Is(err, ErrNoOpenEvent) {
			slog.Error("storage: Failed to get open event time", "error", err, "chat_id", chatID)
		}
		return nil
	}
	return event.StartsAt
}

func (s *Storage) SetOpenEventTime(chatID int64, startsAt time.Time) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	result := s.db.Model(&Event{}).
		Where("chat_id = ? AND status = ?", chatID, StatusOpen).
		Update("starts_at", startsAt)
	if result.Error != nil {
		slog.Error("storage: Failed to set open event time", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to set open event time: %w", result.Error)
	}
	return nil
}

// FixOpenEvent archives the chat's Open event after its attendance has been
// tallied. Fixed events drop out of all open-event queries, so callers must
// read the participant list first.
func (s *Storage) FixOpenEvent(chatID int64) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}

	result := s.db.Model(&Event{}).
		Where("chat_id = ? AND status = ?", chatID, StatusOpen).
		Update("status", StatusFixed)
	if result.Error != nil {
		slog.Error("storage: Failed to fix open event", "error", result.Error, "chat_id", chatID)
		return fmt.Errorf("failed to fix open event: %w", result.Error)
	}
	return nil
}
