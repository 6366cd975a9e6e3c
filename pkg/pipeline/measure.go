package pipeline

import "time"

type measure struct {
	stages      map[string]time.Duration
	endDuration time.Duration
}

func newMeasure() *measure {
	return &measure{
		stages: make(map[string]time.Duration),
	}
}

func (m *measure) add(name string, elapsed time.Duration) {
	m.stages[name] += elapsed
}

func (m *measure) end(endDuration time.Duration) {
	m.endDuration = endDuration
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Hour:
		d = d.Round(time.Hour)
	}
	return d
}
