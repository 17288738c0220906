package feed

import (
	"testing"
	"time"
)

func newTestFeed(channel string) *Feed {
	f := New(channel)
	// deterministic clock
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	f.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return f
}

func TestFeed_InitialSnapshot(t *testing.T) {
	f := newTestFeed("announcements")
	snap := f.Snapshot()

	if snap.BotStatus != "Running ✅" {
		t.Errorf("BotStatus = %q, want Running ✅", snap.BotStatus)
	}
	if snap.DiscordStatus != "Initializing" {
		t.Errorf("DiscordStatus = %q, want Initializing", snap.DiscordStatus)
	}
	if snap.LastXAPIStatus != "Unknown" {
		t.Errorf("LastXAPIStatus = %q, want Unknown", snap.LastXAPIStatus)
	}
	if snap.LastXAPITimestamp != nil {
		t.Error("LastXAPITimestamp set before any post")
	}
	if snap.MonitoringChannel != "announcements" {
		t.Errorf("MonitoringChannel = %v", snap.MonitoringChannel)
	}
	if len(snap.RecentActivity) != 0 {
		t.Errorf("RecentActivity has %d entries, want 0", len(snap.RecentActivity))
	}
}

func TestFeed_RecordPost(t *testing.T) {
	f := newTestFeed("announcements")

	f.RecordPost(true, "relayed message 1")
	f.RecordPost(false, "rate limit exceeded")
	f.RecordPost(true, "relayed message 2")

	snap := f.Snapshot()

	if snap.PostsAttempted != 3 || snap.PostsSucceeded != 2 || snap.PostsFailed != 1 {
		t.Errorf("counters = %d/%d/%d, want 3/2/1",
			snap.PostsAttempted, snap.PostsSucceeded, snap.PostsFailed)
	}
	if snap.LastXAPIStatus != StatusSuccess {
		t.Errorf("LastXAPIStatus = %q, want %q", snap.LastXAPIStatus, StatusSuccess)
	}
	if snap.LastXAPITimestamp == nil {
		t.Fatal("LastXAPITimestamp not set after posts")
	}

	// newest first
	if snap.RecentActivity[0].Details != "relayed message 2" {
		t.Errorf("newest entry = %q, want relayed message 2", snap.RecentActivity[0].Details)
	}
	if snap.RecentActivity[2].Details != "relayed message 1" {
		t.Errorf("oldest entry = %q, want relayed message 1", snap.RecentActivity[2].Details)
	}
}

func TestFeed_FailedPostFoldsDetails(t *testing.T) {
	f := newTestFeed("announcements")
	f.RecordPost(false, "TweepyException: rate limit exceeded")

	snap := f.Snapshot()
	want := StatusFailed + " (TweepyException: rate limit exceeded)"
	if snap.LastXAPIStatus != want {
		t.Errorf("LastXAPIStatus = %q, want %q", snap.LastXAPIStatus, want)
	}
}

func TestFeed_ActivityCap(t *testing.T) {
	f := newTestFeed("announcements")

	for i := 0; i < maxActivity+5; i++ {
		f.RecordEvent("System", "⚪ Skipped", "no mapping")
	}

	snap := f.Snapshot()
	if len(snap.RecentActivity) != maxActivity {
		t.Errorf("activity length = %d, want %d", len(snap.RecentActivity), maxActivity)
	}

	// newest-first: the top entry carries the latest timestamp
	if snap.RecentActivity[0].Timestamp <= snap.RecentActivity[1].Timestamp {
		t.Error("activity not ordered newest-first")
	}
}

func TestFeed_BotStatusDerivation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *Feed)
		want  string
	}{
		{
			name:  "healthy",
			setup: func(f *Feed) { f.SetConnectionStatus(StatusConnected) },
			want:  "Running ✅",
		},
		{
			name:  "api errors",
			setup: func(f *Feed) { f.SetConnectionStatus(StatusConnected); f.RecordPost(false, "nope") },
			want:  "Running with API Errors ⚠️",
		},
		{
			name:  "disconnected",
			setup: func(f *Feed) { f.SetConnectionStatus(StatusDisconnected) },
			want:  "Discord Disconnected ❌",
		},
		{
			name: "disconnected overrides api errors",
			setup: func(f *Feed) {
				f.RecordPost(false, "nope")
				f.SetConnectionStatus(StatusDisconnected)
			},
			want: "Discord Disconnected ❌",
		},
		{
			name:  "connecting",
			setup: func(f *Feed) { f.SetConnectionStatus(StatusConnecting) },
			want:  "Discord Connecting ⚠️",
		},
		{
			name: "connecting overrides api errors",
			setup: func(f *Feed) {
				f.RecordPost(false, "nope")
				f.SetConnectionStatus(StatusConnecting)
			},
			want: "Discord Connecting ⚠️",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFeed("announcements")
			tt.setup(f)
			if got := f.Snapshot().BotStatus; got != tt.want {
				t.Errorf("BotStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeed_ConnectionTransitionsRecorded(t *testing.T) {
	f := newTestFeed("announcements")

	f.SetConnectionStatus(StatusConnecting) // no activity entry
	f.SetConnectionStatus(StatusConnected)
	f.SetConnectionStatus(StatusDisconnected)
	f.SetConnectionStatus(StatusResumed)

	snap := f.Snapshot()
	if len(snap.RecentActivity) != 3 {
		t.Fatalf("activity length = %d, want 3", len(snap.RecentActivity))
	}
	if snap.RecentActivity[0].Status != "✅ Resumed" {
		t.Errorf("newest status = %q, want ✅ Resumed", snap.RecentActivity[0].Status)
	}
	if snap.DiscordStatus != StatusResumed {
		t.Errorf("DiscordStatus = %q, want %q", snap.DiscordStatus, StatusResumed)
	}
}

// TestFeed_SnapshotIsolated verifies the snapshot's activity slice is a
// copy; later recording must not mutate an already-taken snapshot.
func TestFeed_SnapshotIsolated(t *testing.T) {
	f := newTestFeed("announcements")
	f.RecordEvent("System", "▶️ Starting", "bot startup")

	snap := f.Snapshot()
	f.RecordEvent("System", "⏹️ Stopping", "bot shutdown")

	if len(snap.RecentActivity) != 1 {
		t.Fatalf("snapshot grew after later recording, length = %d", len(snap.RecentActivity))
	}
	if snap.RecentActivity[0].Status != "▶️ Starting" {
		t.Errorf("snapshot entry mutated: %q", snap.RecentActivity[0].Status)
	}
}

func TestFeed_EmptyChannelOmitted(t *testing.T) {
	f := newTestFeed("")
	if snap := f.Snapshot(); snap.MonitoringChannel != nil {
		t.Errorf("MonitoringChannel = %v, want nil", snap.MonitoringChannel)
	}
}
