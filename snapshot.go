package botwatch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is one complete status payload returned by the bot's status
// endpoint at a point in time.
//
// Every field is optional from the consumer's point of view: the producer
// may omit any of them and the projection layer applies defaulting rules
// (missing text becomes "Unknown", missing counters become zero, missing
// nullable fields render as a "not available" placeholder). A Snapshot is
// immutable once decoded; each poll cycle replaces the previous snapshot
// wholesale, it never merges into it.
type Snapshot struct {
	// BotStatus is the overall free-text status label, optionally carrying
	// a leading emoji or keyword (e.g. "Running ✅").
	BotStatus string `json:"bot_status"`

	// DiscordStatus describes the bot's connection state
	// (e.g. "Connected", "Disconnected").
	DiscordStatus string `json:"discord_status"`

	// LastXAPIStatus is the status label of the most recent external-API
	// attempt.
	LastXAPIStatus string `json:"last_x_api_status"`

	// LastXAPITimestamp is the Unix-epoch-seconds time of the most recent
	// external-API attempt. Nil when no attempt has been made.
	LastXAPITimestamp *float64 `json:"last_x_api_timestamp"`

	// PostsAttempted, PostsSucceeded and PostsFailed are non-negative
	// relay counters.
	PostsAttempted int64 `json:"posts_attempted"`
	PostsSucceeded int64 `json:"posts_succeeded"`
	PostsFailed    int64 `json:"posts_failed"`

	// MonitoringChannel identifies the monitored channel. The producer may
	// send it as a string or a numeric ID; use [Snapshot.Channel] for a
	// display string. Nil when absent.
	MonitoringChannel any `json:"monitoring_channel"`

	// RecentActivity is the activity log, most-recent-first, bounded by
	// the producer (cap 10). Ordering is the producer's and must be
	// preserved by renderers.
	RecentActivity []ActivityEntry `json:"recent_activity"`
}

// ActivityEntry is a single row of the bot's recent-activity log.
type ActivityEntry struct {
	// Timestamp is the Unix-epoch-seconds time of the event.
	Timestamp float64 `json:"timestamp"`

	// Type is a short category label such as "X Post" or "Discord".
	Type string `json:"type"`

	// Details is a free-text description of the event.
	Details string `json:"details"`

	// Status is a free-text status label in the same classification
	// domain as [Snapshot.BotStatus].
	Status string `json:"status"`
}

// Channel returns the monitoring channel as a display string, or "" when
// the field is absent. Numeric channel IDs are rendered without an
// exponent or trailing zeros.
func (s Snapshot) Channel() string {
	switch v := s.MonitoringChannel.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		// snapshots built without [DecodeSnapshot]; IDs are integral
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// DecodeSnapshot parses a status endpoint response body.
//
// Returns an error if the body is not valid JSON or does not match the
// snapshot shape. Callers treat a decode failure identically to a
// transport failure.
//
// Untyped numbers decode as [json.Number] rather than float64: a numeric
// channel ID is a Discord snowflake, which overflows float64 precision.
func DecodeSnapshot(body []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse status response: %w", err)
	}
	return snap, nil
}
