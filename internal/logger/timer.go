package logger

import "time"

// Timer measures elapsed time for a named operation.
type Timer struct {
	StartTime time.Time
	Name      string
	Console   *Console
}

// End reports the elapsed time through the console and returns it.
func (t *Timer) End() time.Duration {
	duration := time.Since(t.StartTime)
	t.Console.Debug("%s completed in %v", t.Name, duration.Round(time.Millisecond))
	return duration
}
