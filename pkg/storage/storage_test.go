package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sports-scheduler/config"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "exports/2024/03/15/spring-games-u12-1710496800.xlsx",
		ObjectKey("exports", "Spring Games U12.xlsx", at))
	assert.Equal(t, "2024/03/15/export-1710496800.csv", ObjectKey("", "!!!.csv", at))
}

func TestNewArchiver_Disabled(t *testing.T) {
	a, err := NewArchiver(context.Background(), &config.ArchiveConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, a.Enabled())

	key, err := a.Put(context.Background(), "games.xlsx", "application/octet-stream", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, key)
}
