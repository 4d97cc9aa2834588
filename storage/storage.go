package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	// ErrInvalidArgument marks caller input rejected before touching the
	// database. It is never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoOpenEvent is returned by writes that need an Open event when the
	// chat has none.
	ErrNoOpenEvent = errors.New("no open event for chat")
)

type Storage struct {
	db *gorm.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		slog.Error("storage: Failed to connect to database", "error", err, "path", dbPath)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate() error {
	err := s.db.AutoMigrate(&User{}, &Chat{}, &Event{}, &Participant{}, &Revocation{}, &Penalty{})
	if err != nil {
		slog.Error("storage: Failed to migrate database", "error", err)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// openEvent finds the single Open event of a chat within the given session.
func openEvent(db *gorm.DB, chatID int64) (*Event, error) {
	var event Event
	err := db.Where("chat_id = ? AND status = ?", chatID, StatusOpen).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOpenEvent
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func validateChatID(chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("%w: chat id must not be zero", ErrInvalidArgument)
	}
	return nil
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be positive, got %d", ErrInvalidArgument, userID)
	}
	return nil
}
