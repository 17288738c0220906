package botwatch

import "time"

// Layouts for the viewer's local time zone. Clock portions are 24-hour.
const (
	dateClockLayout = "2006-01-02 15:04:05"
	clockLayout     = "15:04:05"
)

// FormatEpoch renders a Unix-epoch-seconds value for display.
//
// When withDate is true the output combines calendar date and clock time
// in one string; otherwise it is clock time only. Times are rendered in
// the viewer's local time zone. A nil or zero timestamp returns
// [NotAvailable], never an epoch-zero 1970 date.
func FormatEpoch(epoch *float64, withDate bool) string {
	if epoch == nil || *epoch == 0 {
		return NotAvailable
	}

	sec := int64(*epoch)
	nsec := int64((*epoch - float64(sec)) * float64(time.Second))
	t := time.Unix(sec, nsec)

	if withDate {
		return t.Format(dateClockLayout)
	}
	return t.Format(clockLayout)
}
