// Package countdown breaks the time left until a target into display units.
package countdown

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Parts is the remaining time split into whole units.
type Parts struct {
	Days, Hours, Minutes, Seconds int
	// Complete is set once the target has been reached
	Complete bool
}

// Remaining returns the breakdown of target - now, truncated to whole
// seconds. At or past the target every unit is zero and Complete is true.
func Remaining(now, target time.Time) Parts {
	d := target.Sub(now)
	if d <= 0 {
		return Parts{Complete: true}
	}
	return Parts{
		Days:    int(d / day),
		Hours:   int(d % day / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// String renders DD:HH:MM:SS with each unit zero-padded to two digits.
// Days grow past two digits when needed.
func (p Parts) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", p.Days, p.Hours, p.Minutes, p.Seconds)
}

// Labels returns each unit as a padded string, largest first.
func (p Parts) Labels() [4]string {
	return [4]string{
		fmt.Sprintf("%02d", p.Days),
		fmt.Sprintf("%02d", p.Hours),
		fmt.Sprintf("%02d", p.Minutes),
		fmt.Sprintf("%02d", p.Seconds),
	}
}
