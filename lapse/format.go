package lapse

import (
	"fmt"
	"time"
)

// FormatDuration renders d as H:MM:SS, followed by a six digit microsecond
// fraction when it is not zero. Days are rolled into hours and precision
// below the microsecond is truncated, e.g.:
//
//	FormatDuration(1500 * time.Millisecond) // "0:00:01.500000"
//	FormatDuration(26 * time.Hour)          // "26:00:00"
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	us := int64(d / time.Microsecond)
	secs := us / 1e6
	frac := us % 1e6

	s := fmt.Sprintf("%s%d:%02d:%02d", sign, secs/3600, secs/60%60, secs%60)
	if frac != 0 {
		s += fmt.Sprintf(".%06d", frac)
	}
	return s
}
