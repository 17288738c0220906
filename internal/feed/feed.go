// Package feed implements the producer side of the status contract: the
// counters, connection labels, and bounded recent-activity log that a
// relay bot exposes through its status endpoint.
//
// The dashboard only consumes snapshots; this package exists so the repo
// carries a real collaborator for demos (the simulate command) and for
// end-to-end tests of the poll/render pipeline.
package feed

import (
	"strings"
	"sync"
	"time"

	"botwatch"
)

// maxActivity bounds the recent-activity log; oldest entries fall off.
const maxActivity = 10

// Status labels recorded by the feed. The emoji prefixes are part of the
// label domain the classifier is built against.
const (
	StatusSuccess      = "✅ Success"
	StatusFailed       = "❌ Failed"
	StatusConnected    = "Connected"
	StatusConnecting   = "Connecting"
	StatusDisconnected = "Disconnected"
	StatusResumed      = "Connected (Resumed)"
)

// Feed is a thread-safe accumulator of bot status: relay counters,
// connection state, external-API state, and a most-recent-first activity
// log capped at 10 entries.
type Feed struct {
	mu sync.Mutex

	discordStatus string
	xapiStatus    string
	xapiTimestamp float64

	attempted int64
	succeeded int64
	failed    int64

	channel  string
	activity []botwatch.ActivityEntry

	// now is swappable for tests
	now func() time.Time
}

// New creates a Feed monitoring the given channel label.
func New(channel string) *Feed {
	return &Feed{
		discordStatus: "Initializing",
		xapiStatus:    "Unknown",
		channel:       channel,
		now:           time.Now,
	}
}

// SetConnectionStatus updates the connection-state label and records an
// activity entry for transitions that carry one.
func (f *Feed) SetConnectionStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discordStatus = status

	switch status {
	case StatusConnected:
		f.record("Discord", "✅ Connected", "")
	case StatusDisconnected:
		f.record("Discord", "❌ Disconnected", "")
	case StatusResumed:
		f.record("Discord", "✅ Resumed", "")
	}
}

// RecordPost registers one relay attempt. A successful attempt increments
// the succeeded counter; a failed one increments failed and folds the
// error description into the API status label.
func (f *Feed) RecordPost(success bool, details string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ts := epochSeconds(f.now())
	f.attempted++
	f.xapiTimestamp = ts

	if success {
		f.succeeded++
		f.xapiStatus = StatusSuccess
		f.record("X Post", StatusSuccess, details)
		return
	}

	f.failed++
	f.xapiStatus = StatusFailed + " (" + details + ")"
	f.record("X Post", StatusFailed, details)
}

// RecordEvent appends an arbitrary activity entry (system events, skips,
// warnings).
func (f *Feed) RecordEvent(entryType, status, details string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(entryType, status, details)
}

// record appends newest-first and trims to maxActivity.
// Caller must hold f.mu.
func (f *Feed) record(entryType, status, details string) {
	entry := botwatch.ActivityEntry{
		Timestamp: epochSeconds(f.now()),
		Type:      entryType,
		Status:    status,
		Details:   details,
	}
	f.activity = append([]botwatch.ActivityEntry{entry}, f.activity...)
	if len(f.activity) > maxActivity {
		f.activity = f.activity[:maxActivity]
	}
}

// Snapshot assembles the current status payload.
//
// The overall bot status is derived from component states: an API failure
// degrades it to a warning, and the connection state overrides that:
// disconnected reads as an error, connecting as a warning. Otherwise the
// bot reports healthy.
func (f *Feed) Snapshot() botwatch.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	botStatus := "Running ✅"
	if strings.Contains(f.xapiStatus, StatusFailed) {
		botStatus = "Running with API Errors ⚠️"
	}
	if strings.Contains(f.discordStatus, StatusDisconnected) {
		botStatus = "Discord Disconnected ❌"
	} else if strings.Contains(f.discordStatus, StatusConnecting) {
		botStatus = "Discord Connecting ⚠️"
	}

	var xapiTS *float64
	if f.xapiTimestamp != 0 {
		ts := f.xapiTimestamp
		xapiTS = &ts
	}

	var channel any
	if f.channel != "" {
		channel = f.channel
	}

	activity := make([]botwatch.ActivityEntry, len(f.activity))
	copy(activity, f.activity)

	return botwatch.Snapshot{
		BotStatus:         botStatus,
		DiscordStatus:     f.discordStatus,
		LastXAPIStatus:    f.xapiStatus,
		LastXAPITimestamp: xapiTS,
		PostsAttempted:    f.attempted,
		PostsSucceeded:    f.succeeded,
		PostsFailed:       f.failed,
		MonitoringChannel: channel,
		RecentActivity:    activity,
	}
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
