package plan

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chis-dev/chisbot/common/testutils"
)

// connectTestStore skips the test unless a postgres test database is
// configured through the CHISBOT_TEST_PQ_* environment variables.
func connectTestStore(t *testing.T) *GORMStore {
	t.Helper()

	db, configured, err := testutils.ConnectPQ()
	if !configured {
		t.Skip("no test database configured")
	}
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Plan{}, &UserTzConfig{}).Error)

	t.Cleanup(func() {
		testutils.ClearTables(db, "plan", "user_tz_config")
		db.Close()
	})

	return &GORMStore{DB: db}
}

func TestGORMStorePlanRoundTrip(t *testing.T) {
	store := connectTestStore(t)

	p, err := store.Find(testGuild)
	require.NoError(t, err)
	assert.Nil(t, p)

	when := time.Date(2023, 5, 1, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(&Plan{
		ID:           testGuild,
		Title:        "stored",
		Spots:        5,
		Time:         &when,
		Participants: pq.StringArray{"u1", "u2"},
	}))

	p, err = store.Find(testGuild)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "stored", p.Title)
	assert.Equal(t, pq.StringArray{"u1", "u2"}, p.Participants)
	require.NotNil(t, p.Time)
	assert.True(t, p.Time.Equal(when))

	p.Participants = append(p.Participants, "u3")
	require.NoError(t, store.Save(p))

	p, err = store.Find(testGuild)
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"u1", "u2", "u3"}, p.Participants)

	require.NoError(t, store.Delete(testGuild))
	p, err = store.Find(testGuild)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGORMStoreUserTzUpsert(t *testing.T) {
	store := connectTestStore(t)

	tz, err := store.GetTz("u1")
	require.NoError(t, err)
	assert.Empty(t, tz)

	require.NoError(t, store.SaveTz("u1", "America/New_York"))
	require.NoError(t, store.SaveTz("u1", "Asia/Tokyo"))

	tz, err = store.GetTz("u1")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", tz)

	var count int
	require.NoError(t, store.DB.Model(&UserTzConfig{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.Equal(t, 1, count)
}
