package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/vehicle_api/internal/db"
	"github.com/Skotchmaster/vehicle_api/internal/hash"
	"github.com/Skotchmaster/vehicle_api/internal/models"
)

// NewTestDB opens a migrated in-memory sqlite database closed on cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}

func CreateAdmin(t *testing.T, gdb *gorm.DB, email, password, role string) models.Administrator {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	adm := models.Administrator{Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(t, gdb.Create(&adm).Error)
	return adm
}

// Event is one captured domain event.
type Event struct {
	Topic string
	Key   string
	Body  map[string]any
}

// RecordingPublisher captures events instead of sending them to a broker.
type RecordingPublisher struct {
	Events []Event
	Err    error
}

func (p *RecordingPublisher) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	p.Events = append(p.Events, Event{Topic: topic, Key: key, Body: event})
	return p.Err
}

func (p *RecordingPublisher) Close() error { return nil }
