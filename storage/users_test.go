package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertUserRejectsBadID(t *testing.T) {
	s := newTestStorage(t)

	assert.ErrorIs(t, s.UpsertUser(0, "A", "B", "ab"), ErrInvalidArgument)
	assert.ErrorIs(t, s.UpsertUser(-5, "A", "B", "ab"), ErrInvalidArgument)
}

func TestUpsertUserWritesOnlyOnChange(t *testing.T) {
	s := newTestStorage(t)

	var writes int
	count := func(*gorm.DB) { writes++ }
	require.NoError(t, s.db.Callback().Create().After("gorm:create").Register("test_count_create", count))
	require.NoError(t, s.db.Callback().Update().After("gorm:update").Register("test_count_update", count))

	require.NoError(t, s.UpsertUser(1, "Ann", "Lee", "ann"))
	assert.Equal(t, 1, writes, "first sighting inserts")

	require.NoError(t, s.UpsertUser(1, "Ann", "Lee", "ann"))
	assert.Equal(t, 1, writes, "identical data writes nothing")

	require.NoError(t, s.UpsertUser(1, "Ann", "Lee", "annie"))
	assert.Equal(t, 2, writes, "changed field updates")
}

func TestFullName(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.UpsertUser(1, "Ann", "Lee", "ann"))
	require.NoError(t, s.UpsertUser(2, "Bob", "", ""))
	require.NoError(t, s.UpsertUser(3, "", "", "carol"))
	require.NoError(t, s.UpsertUser(4, "", "", ""))

	assert.Equal(t, "Ann Lee (ann)", s.FullName(1))
	assert.Equal(t, "Bob", s.FullName(2))
	assert.Equal(t, "carol", s.FullName(3))
	assert.Equal(t, "4", s.FullName(4))
	assert.Equal(t, "99", s.FullName(99), "unknown users render as their id")
}
