package botwatch

import (
	"strconv"
	"time"
)

// Placeholder text used by the projection layer. These are part of the
// display contract: tests and renderers match on them.
const (
	// UnknownLabel replaces missing text fields in an otherwise valid
	// snapshot.
	UnknownLabel = "Unknown"

	// NotAvailable replaces missing nullable fields (channel, timestamps).
	NotAvailable = "N/A"

	// NoActivityPlaceholder is the single row shown when the activity log
	// is empty.
	NoActivityPlaceholder = "No recent activity"

	// FetchErrorPlaceholder is the single activity row shown when a poll
	// cycle fails.
	FetchErrorPlaceholder = "Error loading activity"

	// ErrorIndicator is the bot-status label shown when a poll cycle
	// fails.
	ErrorIndicator = "❌ Error fetching status"
)

// Field is one named display region: a text value plus the category used
// to style it.
type Field struct {
	Text     string
	Category Category
}

// Row is one rendered line of the activity log.
type Row struct {
	// Time is the formatted event timestamp (date + clock, viewer's
	// local zone).
	Time string

	// Text is the entry's type and details concatenated as "type: details".
	Text string

	// Status is the entry's raw status label.
	Status string

	// Category styles the status label.
	Category Category
}

// State is the complete display surface for one poll cycle.
//
// State is an explicit owned value: the projection functions build a fresh
// State per cycle and the display host overwrites everything it shows from
// it. It carries no references back into the snapshot it was built from.
type State struct {
	// Seq is the sequence number of the cycle that produced this state.
	// Stale states (lower Seq than the last applied one) are discarded
	// rather than rendered.
	Seq uint64

	BotStatus     Field
	DiscordStatus Field
	XAPIStatus    Field

	// XAPILastAttempt is the formatted time of the last external-API
	// attempt, or [NotAvailable].
	XAPILastAttempt string

	PostsAttempted string
	PostsSucceeded string
	PostsFailed    string

	// Channel is the monitored-channel label, or [NotAvailable].
	Channel string

	// Activity holds one row per log entry, in producer order, or exactly
	// one placeholder row when the log is empty or the cycle failed.
	Activity []Row

	// ActivityCount is the number of real rows rendered; 0 when Activity
	// holds only a placeholder.
	ActivityCount int

	// LastUpdated is the wall-clock time the cycle started, recorded
	// regardless of the fetch outcome.
	LastUpdated string

	// Err is set when the cycle failed (transport, non-2xx, or parse).
	Err error
}

// Project maps a snapshot onto a fresh display [State].
//
// started is the wall-clock time the poll cycle began. Missing text fields
// default to [UnknownLabel], missing counters to "0", and missing nullable
// fields to [NotAvailable], per the snapshot's defaulting rules.
func Project(started time.Time, snap Snapshot) State {
	return State{
		BotStatus:       textField(snap.BotStatus),
		DiscordStatus:   textField(snap.DiscordStatus),
		XAPIStatus:      textField(snap.LastXAPIStatus),
		XAPILastAttempt: FormatEpoch(snap.LastXAPITimestamp, true),
		PostsAttempted:  strconv.FormatInt(snap.PostsAttempted, 10),
		PostsSucceeded:  strconv.FormatInt(snap.PostsSucceeded, 10),
		PostsFailed:     strconv.FormatInt(snap.PostsFailed, 10),
		Channel:         channelField(snap.Channel()),
		Activity:        RenderActivity(snap.RecentActivity),
		ActivityCount:   len(snap.RecentActivity),
		LastUpdated:     started.Format(clockLayout),
	}
}

// ProjectError builds the degraded display [State] for a failed cycle.
//
// The bot-status region shows [ErrorIndicator], dependent regions are
// cleared to [UnknownLabel] / [NotAvailable], and the activity log shows a
// single [FetchErrorPlaceholder] row with a count of zero. The last-updated
// time is still recorded from the cycle start.
func ProjectError(started time.Time, err error) State {
	return State{
		BotStatus:       Field{Text: ErrorIndicator, Category: CategoryError},
		DiscordStatus:   Field{Text: UnknownLabel, Category: CategoryUnknown},
		XAPIStatus:      Field{Text: UnknownLabel, Category: CategoryUnknown},
		XAPILastAttempt: NotAvailable,
		PostsAttempted:  "0",
		PostsSucceeded:  "0",
		PostsFailed:     "0",
		Channel:         NotAvailable,
		Activity: []Row{{
			Time:     NotAvailable,
			Text:     FetchErrorPlaceholder,
			Status:   ErrorIndicator,
			Category: CategoryError,
		}},
		ActivityCount: 0,
		LastUpdated:   started.Format(clockLayout),
		Err:           err,
	}
}

// RenderActivity converts the activity log into display rows.
//
// One row per entry, in the given order, no re-sorting. An empty log
// yields exactly one [NoActivityPlaceholder] row; callers use
// [State.ActivityCount], not len(rows), for the count label.
func RenderActivity(entries []ActivityEntry) []Row {
	if len(entries) == 0 {
		return []Row{{
			Time:     NotAvailable,
			Text:     NoActivityPlaceholder,
			Status:   "",
			Category: CategoryNeutral,
		}}
	}

	rows := make([]Row, len(entries))
	for i, e := range entries {
		ts := e.Timestamp
		rows[i] = Row{
			Time:     FormatEpoch(&ts, true),
			Text:     entryText(e),
			Status:   e.Status,
			Category: Classify(e.Status),
		}
	}
	return rows
}

func entryText(e ActivityEntry) string {
	typ := e.Type
	if typ == "" {
		typ = UnknownLabel
	}
	return typ + ": " + e.Details
}

func textField(label string) Field {
	if label == "" {
		return Field{Text: UnknownLabel, Category: CategoryUnknown}
	}
	return Field{Text: label, Category: Classify(label)}
}

func channelField(ch string) string {
	if ch == "" {
		return NotAvailable
	}
	return ch
}
