package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/powertrain/internal/dynamo"
)

type series struct {
	name string
	pick func(dynamo.Row) float64
}

// Chart is one of the standard run graphs.
type Chart struct {
	File   string
	Title  string
	XLabel string
	YLabel string
	x      func(dynamo.Row) float64
	lines  []series
}

// Charts lists the graphs written by WritePNGs.
func Charts(t *dynamo.Table) []Chart {
	n := float64(t.Params.Motors)
	byTime := func(r dynamo.Row) float64 { return r.Time }
	return []Chart{
		{
			File: "speed.png", Title: "Vehicle Speed", XLabel: "Time (s)", YLabel: "Speed (km/h)", x: byTime,
			lines: []series{{"speed", func(r dynamo.Row) float64 { return r.SpeedKmh }}},
		},
		{
			File: "power.png", Title: "Motor Power", XLabel: "Time (s)", YLabel: "Power (W)", x: byTime,
			lines: []series{
				{"per motor", func(r dynamo.Row) float64 { return r.PerMotorPower }},
				{"total", func(r dynamo.Row) float64 { return r.PerMotorPower * n }},
			},
		},
		{
			File: "forces.png", Title: "Forces", XLabel: "Time (s)", YLabel: "Force (N)", x: byTime,
			lines: []series{
				{"tractive", func(r dynamo.Row) float64 { return r.Tractive }},
				{"resistance", func(r dynamo.Row) float64 { return r.Resistance }},
				{"drag", func(r dynamo.Row) float64 { return r.Drag }},
				{"rolling", func(r dynamo.Row) float64 { return r.Roll }},
				{"climb", func(r dynamo.Row) float64 { return r.Climb }},
			},
		},
		{
			File: "motor.png", Title: "Motor Torque vs Speed", XLabel: "Motor speed (RPM)", YLabel: "Torque (Nm)",
			x:     func(r dynamo.Row) float64 { return r.MotorRPM },
			lines: []series{{"per motor", func(r dynamo.Row) float64 { return r.PerMotorTorque }}},
		},
	}
}

func (c Chart) Plot(t *dynamo.Table) (*plot.Plot, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("export: %s: empty table", c.File)
	}
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range c.lines {
		pts := make(plotter.XYs, t.Len())
		for j, r := range t.Rows {
			pts[j].X = c.x(r)
			pts[j].Y = s.pick(r)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		if len(c.lines) > 1 {
			p.Legend.Add(s.name, line)
		}
	}
	return p, nil
}

// WritePNG renders the chart to w.
func (c Chart) WritePNG(w io.Writer, t *dynamo.Table) error {
	p, err := c.Plot(t)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// WritePNGs writes every chart into dir and returns the paths written.
func WritePNGs(dir string, t *dynamo.Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, c := range Charts(t) {
		path := filepath.Join(dir, c.File)
		f, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		err = c.WritePNG(f, t)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, fmt.Errorf("%s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
