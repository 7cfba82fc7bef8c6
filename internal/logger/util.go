package logger

import "time"

// Status maps an error to a log status value.
func Status(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}

// Took returns the elapsed time since start.
func Took(start time.Time) time.Duration {
	return time.Since(start)
}

// RoundMS rounds a duration to whole milliseconds for compact log output.
func RoundMS(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
