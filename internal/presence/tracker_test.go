package presence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTouchIgnoresEmptyID(t *testing.T) {
	Reset()
	Touch("")
	assert.Empty(t, Snapshot())
}

func TestTouchAndSnapshot(t *testing.T) {
	Reset()
	Touch("client-a")

	snap := Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "client-a", snap[0].ClientID)
	assert.GreaterOrEqual(t, snap[0].SecondsAgo, 0)
	assert.Less(t, snap[0].SecondsAgo, 5)

	seen, err := time.Parse(time.RFC3339, snap[0].LastSeen)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), seen, 5*time.Second)
}

func TestTouchRefreshesExistingEntry(t *testing.T) {
	Reset()
	Touch("client-a")
	Touch("client-a")
	assert.Len(t, Snapshot(), 1)
}

func TestEvictionPastCap(t *testing.T) {
	Reset()
	for i := 0; i < maxClients+10; i++ {
		Touch(fmt.Sprintf("client-%05d", i))
	}

	snap := Snapshot()
	assert.Len(t, snap, maxClients)

	ids := make(map[string]bool, len(snap))
	for _, c := range snap {
		ids[c.ClientID] = true
	}
	assert.True(t, ids[fmt.Sprintf("client-%05d", maxClients+9)], "newest client must survive")
	assert.False(t, ids["client-00000"], "oldest client must be evicted")
}
