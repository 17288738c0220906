package botwatch

// Category represents the semantic class of a free-text status label.
//
// Category is a string type that can hold one of six predefined values:
// [CategoryOK], [CategoryWarning], [CategoryError], [CategoryInfo],
// [CategoryNeutral], or [CategoryUnknown]. Categories exist purely for
// display styling; they carry no behavior of their own. Using a string
// type allows for easy JSON serialization and human-readable logging
// while maintaining type safety through the defined constants.
type Category string

const (
	// CategoryOK indicates a healthy or successful state
	// (connected, posted, resumed).
	CategoryOK Category = "ok"

	// CategoryWarning indicates a transient or degraded state
	// (connecting, API errors while still running).
	CategoryWarning Category = "warning"

	// CategoryError indicates a failed or disconnected state.
	CategoryError Category = "error"

	// CategoryInfo indicates a progress or lifecycle state
	// (starting, initializing).
	CategoryInfo Category = "info"

	// CategoryNeutral indicates a deliberate non-event
	// (skipped, stopped).
	CategoryNeutral Category = "neutral"

	// CategoryUnknown indicates the label matched no classification rule.
	// Unknown labels receive no category styling.
	CategoryUnknown Category = "unknown"
)

// String returns the string representation of the category.
// This implements the fmt.Stringer interface.
func (c Category) String() string {
	return string(c)
}
