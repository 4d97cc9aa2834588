package storage

import "time"

// Event statuses. Transitions are one-directional: Open -> Closed or
// Open -> Fixed. Closed and Fixed rows are history and are never deleted.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
	StatusFixed  = "Fixed"
)

// User is a Telegram account the bot has seen. The primary key is the
// Telegram user id; name fields are refreshed on every sighting.
type User struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	FirstName string
	LastName  string
	Username  string
}

// Chat holds per-chat settings plus the cache of the latest roster message
// the bot rendered there, used for diffing before the next edit.
type Chat struct {
	ID                int64 `gorm:"primaryKey;autoIncrement:false"`
	Lang              string
	LatestEventID     uint
	LatestMessageID   int
	LatestMessageText string
}

// Event is one registration round for a chat. At most one event per chat is
// Open at any time; AddEvent enforces that at the write site.
type Event struct {
	ID          uint   `gorm:"primaryKey"`
	ChatID      int64  `gorm:"index"`
	Status      string `gorm:"default:Open"`
	Description string
	StartsAt    *time.Time
	PlayerLimit int // 0 means unlimited

	Participants []Participant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Revocations  []Revocation  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// Participant is a standing application for an event. A user is in at most
// one of Participant and Revocation for a given event.
type Participant struct {
	EventID   uint  `gorm:"uniqueIndex:idx_event_participant"`
	UserID    int64 `gorm:"uniqueIndex:idx_event_participant"`
	AppliedAt time.Time
}

// Revocation mirrors Participant for users who cancelled their application.
type Revocation struct {
	EventID   uint  `gorm:"uniqueIndex:idx_event_revocation"`
	UserID    int64 `gorm:"uniqueIndex:idx_event_revocation"`
	RevokedAt time.Time
}

// Penalty is an append-only mark for an unexcused no-show. A user may
// accrue any number of them per chat.
type Penalty struct {
	ID         uint  `gorm:"primaryKey"`
	ChatID     int64 `gorm:"index"`
	UserID     int64 `gorm:"index"`
	OperatorID int64
	CreatedAt  time.Time
}
