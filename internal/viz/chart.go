package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// Trace is a named column of the table that can be charted.
type Trace struct {
	Name    string
	Caption string
	Pick    func(dynamo.Row) float64
}

var Traces = []Trace{
	{"speed", "vehicle speed (km/h)", func(r dynamo.Row) float64 { return r.SpeedKmh }},
	{"accel", "acceleration (m/s²)", func(r dynamo.Row) float64 { return r.Accel }},
	{"rpm", "motor speed (rpm)", func(r dynamo.Row) float64 { return r.MotorRPM }},
	{"torque", "total motor torque (Nm)", func(r dynamo.Row) float64 { return r.TotalTorque }},
	{"power", "per motor power (W)", func(r dynamo.Row) float64 { return r.PerMotorPower }},
	{"tractive", "tractive force (N)", func(r dynamo.Row) float64 { return r.Tractive }},
	{"resistance", "load resistance (N)", func(r dynamo.Row) float64 { return r.Resistance }},
	{"energy", "shaft energy (Wh)", func(r dynamo.Row) float64 { return r.Energy }},
	{"current", "battery current (A)", func(r dynamo.Row) float64 { return r.BatteryCurrent }},
}

// GetTrace looks a trace up by name.
func GetTrace(name string) (Trace, bool) {
	for _, t := range Traces {
		if t.Name == name {
			return t, true
		}
	}
	return Trace{}, false
}

func TraceNames() []string {
	names := make([]string, len(Traces))
	for i, t := range Traces {
		names[i] = t.Name
	}
	return names
}

// Chart plots one trace of the table.
func Chart(t *dynamo.Table, tr Trace, width, height int) string {
	data := t.Series(tr.Pick)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(tr.Caption),
	)
}

// CompareChart overlays the same trace of several tables.
func CompareChart(tables []*dynamo.Table, tr Trace, width, height int) string {
	var series [][]float64
	for _, t := range tables {
		if t.Len() > 0 {
			series = append(series, t.Series(tr.Pick))
		}
	}
	if len(series) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Red, asciigraph.Blue}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(tr.Caption),
	}
	if len(series) <= len(colors) {
		opts = append(opts, asciigraph.SeriesColors(colors[:len(series)]...))
	}
	return asciigraph.PlotMany(series, opts...)
}
