package metrics

import "github.com/san-kum/powertrain/internal/dynamo"

// Metric accumulates one scalar over the rows of a run.
type Metric interface {
	Name() string
	Observe(r dynamo.Row)
	Value() float64
	Reset()
}

// Recorder fans rows out to metrics; it satisfies dynamo.Observer.
type Recorder struct {
	metrics []Metric
}

func NewRecorder(ms ...Metric) *Recorder {
	return &Recorder{metrics: ms}
}

func (r *Recorder) OnRow(row dynamo.Row) {
	for _, m := range r.metrics {
		m.Observe(row)
	}
}

func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Default is the metric set attached to CLI runs.
func Default() []Metric {
	return []Metric{
		NewEnergyPerKm(),
		NewPeak("peak_battery_current", func(r dynamo.Row) float64 { return r.BatteryCurrent }),
		NewPeak("peak_tractive", func(r dynamo.Row) float64 { return r.Tractive }),
		NewClimbShare(),
	}
}
