package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Apply registers the user for the chat's Open event and removes any
// standing revocation for the pair in the same transaction. Re-applying
// refreshes the registration timestamp, which moves the user to the end of
// the first-come order.
func (s *Storage) Apply(chatID, userID int64) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		event, err := openEvent(tx, chatID)
		if err != nil {
			return err
		}

		row := Participant{EventID: event.ID, UserID: userID, AppliedAt: time.Now()}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"applied_at"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		return tx.Where("event_id = ? AND user_id = ?", event.ID, userID).Delete(&Revocation{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNoOpenEvent) {
			return ErrNoOpenEvent
		}
		slog.Error("storage: Failed to apply for participation", "error", err,
			"chat_id", chatID, "user_id", userID)
		return fmt.Errorf("failed to apply for participation: %w", err)
	}
	return nil
}

// Revoke cancels the user's application for the chat's Open event, mirroring
// Apply: upsert into Revocation, delete from Participant, one transaction.
func (s *Storage) Revoke(chatID, userID int64) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		event, err := openEvent(tx, chatID)
		if err != nil {
			return err
		}

		row := Revocation{EventID: event.ID, UserID: userID, RevokedAt: time.Now()}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"revoked_at"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		return tx.Where("event_id = ? AND user_id = ?", event.ID, userID).Delete(&Participant{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNoOpenEvent) {
			return ErrNoOpenEvent
		}
		slog.Error("storage: Failed to revoke application", "error", err,
			"chat_id", chatID, "user_id", userID)
		return fmt.Errorf("failed to revoke application: %w", err)
	}
	return nil
}

// OpenEventParticipants lists user ids registered for the chat's Open event
// in first-come order. Position in this list drives roster numbering and the
// reserve cutoff.
func (s *Storage) OpenEventParticipants(chatID int64) []int64 {
	var ids []int64
	sub := s.db.Model(&Event{}).Select("id").Where("chat_id = ? AND status = ?", chatID, StatusOpen)
	err := s.db.Model(&Participant{}).
		Where("event_id IN (?)", sub).
		Order("applied_at").
		Pluck("user_id", &ids).Error
	if err != nil {
		slog.Error("storage: Failed to get event participants", "error", err, "chat_id", chatID)
		return nil
	}
	return ids
}

// OpenEventRevoked lists user ids that cancelled their application for the
// chat's Open event, in cancellation order.
func (s *Storage) OpenEventRevoked(chatID int64) []int64 {
	var ids []int64
	sub := s.db.Model(&Event{}).Select("id").Where("chat_id = ? AND status = ?", chatID, StatusOpen)
	err := s.db.Model(&Revocation{}).
		Where("event_id IN (?)", sub).
		Order("revoked_at").
		Pluck("user_id", &ids).Error
	if err != nil {
		slog.Error("storage: Failed to get revoked users", "error", err, "chat_id", chatID)
		return nil
	}
	return ids
}

// ChatParticipants lists distinct user ids across every event ever opened
// for the chat, current and historical.
func (s *Storage) ChatParticipants(chatID int64) []int64 {
	var ids []int64
	sub := s.db.Model(&Event{}).Select("id").Where("chat_id = ?", chatID)
	err := s.db.Model(&Participant{}).
		Distinct("user_id").
		Where("event_id IN (?)", sub).
		Pluck("user_id", &ids).Error
	if err != nil {
		slog.Error("storage: Failed to get chat participants", "error", err, "chat_id", chatID)
		return nil
	}
	return ids
}

// AttendanceCounts returns the user's lifetime registration and penalty
// counts for the chat. Registrations span every event ever opened for the
// chat, the one currently Open included.
func (s *Storage) AttendanceCounts(chatID, userID int64) (registrations, penalties int) {
	var regs, pens int64

	sub := s.db.Model(&Event{}).Select("id").Where("chat_id = ?", chatID)
	err := s.db.Model(&Participant{}).
		Where("event_id IN (?) AND user_id = ?", sub, userID).
		Count(&regs).Error
	if err != nil {
		slog.Error("storage: Failed to count registrations", "error", err,
			"chat_id", chatID, "user_id", userID)
	}

	err = s.db.Model(&Penalty{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&pens).Error
	if err != nil {
		slog.Error("storage: Failed to count penalties", "error", err,
			"chat_id", chatID, "user_id", userID)
	}

	return int(regs), int(pens)
}

// CancellationTime returns when the user revoked their application for the
// chat's current Open event. found is false when there is no such row.
func (s *Storage) CancellationTime(chatID, userID int64) (revokedAt time.Time, found bool) {
	event, err := openEvent(s.db, chatID)
	if err != nil {
		if !errors.Is(err, ErrNoOpenEvent) {
			slog.Error("storage: Failed to get open event for cancellation time", "error", err, "chat_id", chatID)
		}
		return time.Time{}, false
	}

	var row Revocation
	err = s.db.Where("event_id = ? AND user_id = ?", event.ID, userID).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("storage: Failed to get cancellation time", "error", err,
				"chat_id", chatID, "user_id", userID)
		}
		return time.Time{}, false
	}
	return row.RevokedAt, true
}

// RecordPenalty appends one penalty mark against the user. There is no
// dedup: repeated calls accrue.
func (s *Storage) RecordPenalty(chatID, userID, operatorID int64) error {
	if err := validateChatID(chatID); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateUserID(operatorID); err != nil {
		return err
	}

	row := Penalty{ChatID: chatID, UserID: userID, OperatorID: operatorID, CreatedAt: time.Now()}
	if result := s.db.Create(&row); result.Error != nil {
		slog.Error("storage: Failed to record penalty", "error", result.Error,
			"chat_id", chatID, "user_id", userID, "operator_id", operatorID)
		return fmt.Errorf("failed to record penalty: %w", result.Error)
	}
	return nil
}
