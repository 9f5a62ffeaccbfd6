package presence

import (
	"sort"
	"sync"
	"time"
)

// maxClients caps the tracker so a churning client population cannot grow
// it without bound; the oldest entry is evicted past the cap.
const maxClients = 1024

type Client struct {
	ClientID   string `json:"client_id"`
	LastSeen   string `json:"last_seen"`
	SecondsAgo int    `json:"seconds_ago"`
}

var (
	mu       sync.Mutex
	lastSeen = map[string]time.Time{}
)

// Touch records contact from a client. Empty ids are ignored, so requests
// without the header cost nothing. Pure observability; the store never
// depends on this.
func Touch(clientID string) {
	if clientID == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if _, known := lastSeen[clientID]; !known && len(lastSeen) >= maxClients {
		evictOldestLocked()
	}
	lastSeen[clientID] = time.Now().UTC()
}

func evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, ts := range lastSeen {
		if oldestID == "" || ts.Before(oldest) {
			oldestID, oldest = id, ts
		}
	}
	delete(lastSeen, oldestID)
}

// Snapshot lists known clients, most recently seen first. Elapsed time is
// computed at call time.
func Snapshot() []Client {
	now := time.Now().UTC()

	mu.Lock()
	out := make([]Client, 0, len(lastSeen))
	for id, ts := range lastSeen {
		out = append(out, Client{
			ClientID:   id,
			LastSeen:   ts.Format(time.RFC3339),
			SecondsAgo: int(now.Sub(ts).Seconds()),
		})
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SecondsAgo != out[j].SecondsAgo {
			return out[i].SecondsAgo < out[j].SecondsAgo
		}
		return out[i].ClientID < out[j].ClientID
	})
	return out
}

// Reset clears the tracker. Test helper.
func Reset() {
	mu.Lock()
	lastSeen = map[string]time.Time{}
	mu.Unlock()
}
