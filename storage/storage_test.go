package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	return s
}

func openEventCount(t *testing.T, s *Storage, chatID int64) int64 {
	t.Helper()

	var n int64
	err := s.db.Model(&Event{}).
		Where("chat_id = ? AND status = ?", chatID, StatusOpen).
		Count(&n).Error
	require.NoError(t, err)
	return n
}
