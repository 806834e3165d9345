package metrics

import (
	"time"
)

type Timer struct {
	client Client
	start  time.Time
	name   string
	tags   Tags
}

func NewTimer(client Client, name string, tags Tags) *Timer {
	return &Timer{
		client: client,
		start:  time.Now(),
		name:   name,
		tags:   tags,
	}
}

// Stop the timer and send the elapsed time as milliseconds as a distribution metric
func (t *Timer) Stop() {
	elapsed := time.Since(t.start)
	t.client.Distribution(t.name, t.tags, float64(elapsed/time.Millisecond))
}
