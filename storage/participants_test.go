package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorageWithEvent(t *testing.T) *Storage {
	t.Helper()

	s := newTestStorage(t)
	require.NoError(t, s.RegisterChat(testChatID, "en"))
	require.NoError(t, s.AddEvent(testChatID, "match", nil, 0, 1, "a"))
	return s
}

func TestApplyAndRevokeAreMutuallyExclusive(t *testing.T) {
	s := newTestStorageWithEvent(t)

	require.NoError(t, s.Apply(testChatID, 1))
	assert.Equal(t, []int64{1}, s.OpenEventParticipants(testChatID))
	assert.Empty(t, s.OpenEventRevoked(testChatID))

	require.NoError(t, s.Revoke(testChatID, 1))
	assert.Empty(t, s.OpenEventParticipants(testChatID))
	assert.Equal(t, []int64{1}, s.OpenEventRevoked(testChatID))

	// Re-applying moves the row back.
	require.NoError(t, s.Apply(testChatID, 1))
	assert.Equal(t, []int64{1}, s.OpenEventParticipants(testChatID))
	assert.Empty(t, s.OpenEventRevoked(testChatID))
}

func TestApplyIsIdempotent(t *testing.T) {
	s := newTestStorageWithEvent(t)

	require.NoError(t, s.Apply(testChatID, 1))
	require.NoError(t, s.Apply(testChatID, 1))

	assert.Equal(t, []int64{1}, s.OpenEventParticipants(testChatID))
}

func TestApplyRefreshesFirstComeOrder(t *testing.T) {
	s := newTestStorageWithEvent(t)

	require.NoError(t, s.Apply(testChatID, 1))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Apply(testChatID, 2))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Apply(testChatID, 1))

	assert.Equal(t, []int64{2, 1}, s.OpenEventParticipants(testChatID))
}

func TestApplyWithoutOpenEvent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.RegisterChat(testChatID, "en"))

	assert.ErrorIs(t, s.Apply(testChatID, 1), ErrNoOpenEvent)
	assert.ErrorIs(t, s.Revoke(testChatID, 1), ErrNoOpenEvent)
}

func TestAttendanceCountsSpanAllChatEvents(t *testing.T) {
	s := newTestStorageWithEvent(t)

	require.NoError(t, s.Apply(testChatID, 1))
	require.NoError(t, s.FixOpenEvent(testChatID))

	require.NoError(t, s.AddEvent(testChatID, "next match", nil, 0, 2, "b"))
	require.NoError(t, s.Apply(testChatID, 1))

	registrations, penalties := s.AttendanceCounts(testChatID, 1)
	assert.Equal(t, 2, registrations, "historical and current registrations both count")
	assert.Equal(t, 0, penalties)

	require.NoError(t, s.RecordPenalty(testChatID, 1, 2))
	_, penalties = s.AttendanceCounts(testChatID, 1)
	assert.Equal(t, 1, penalties)
}

func TestPenaltiesAreAppendOnly(t *testing.T) {
	s := newTestStorageWithEvent(t)

	require.NoError(t, s.RecordPenalty(testChatID, 1, 2))
	require.NoError(t, s.RecordPenalty(testChatID, 1, 2))

	_, penalties := s.AttendanceCounts(testChatID, 1)
	assert.Equal(t, 2, penalties)
}

func TestRecordPenaltyValidation(t *testing.T) {
	s := newTestStorageWithEvent(t)

	assert.ErrorIs(t, s.RecordPenalty(testChatID, 0, 2), ErrInvalidArgument)
	assert.ErrorIs(t, s.RecordPenalty(testChatID, 1, -1), ErrInvalidArgument)
	assert.ErrorIs(t, s.RecordPenalty(0, 1, 2), ErrInvalidArgument)
}

func TestCancellationTime(t *testing.T) {
	s := newTestStorageWithEvent(t)

	_, found := s.CancellationTime(testChatID, 1)
	assert.False(t, found)

	before := time.Now()
	require.NoError(t, s.Revoke(testChatID, 1))

	revokedAt, found := s.CancellationTime(testChatID, 1)
	require.True(t, found)
	assert.WithinDuration(t, before, revokedAt, time.Minute)
}

func TestChatParticipantsAreDistinctAcrossEvents(t *testing.T) {
	s := newTestStorageWithEvent(t)

	require.NoError(t, s.Apply(testChatID, 1))
	require.NoError(t, s.Apply(testChatID, 2))
	require.NoError(t, s.FixOpenEvent(testChatID))

	require.NoError(t, s.AddEvent(testChatID, "next", nil, 0, 2, "b"))
	require.NoError(t, s.Apply(testChatID, 1))

	assert.ElementsMatch(t, []int64{1, 2}, s.ChatParticipants(testChatID))
}
