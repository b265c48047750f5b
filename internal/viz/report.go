package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/powertrain/internal/metrics"
	"github.com/san-kum/powertrain/internal/optim"
	"github.com/san-kum/powertrain/internal/sizing"
)

type kv struct {
	label string
	value string
}

func kvBlock(rows []kv) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		label := MetricLabel.Render(r.label + strings.Repeat(" ", width-lipgloss.Width(r.label)))
		lines[i] = label + "  " + MetricValue.Render(r.value)
	}
	return strings.Join(lines, "\n")
}

func f1(v float64, unit string) string { return fmt.Sprintf("%.1f %s", v, unit) }
func f2(v float64, unit string) string { return fmt.Sprintf("%.2f %s", v, unit) }

// RenderSummary lays out the headline figures of one run.
func RenderSummary(title string, s metrics.Summary) string {
	plateau := "not reached"
	if s.Plateau {
		plateau = fmt.Sprintf("from %.1f s", s.PlateauTime)
	}
	return Box(title, kvBlock([]kv{
		{"final speed", f2(s.FinalSpeedKmh, "km/h")},
		{"max speed", f2(s.MaxSpeedKmh, "km/h")},
		{"avg speed", f2(s.AvgSpeedKmh, "km/h")},
		{"max acceleration", f2(s.MaxAccel, "m/s²")},
		{"max motor speed", f1(s.MaxMotorRPM, "rpm")},
		{"max total torque", f1(s.MaxTotalTorque, "Nm")},
		{"max power / motor", f1(s.MaxPerMotorPower, "W")},
		{"distance", fmt.Sprintf("%.3f km", s.DistanceKm)},
		{"shaft energy", f2(s.EnergyWh, "Wh")},
		{"battery energy", f2(s.BatteryEnergyWh, "Wh")},
		{"energy per km", f2(s.EnergyPerKm, "Wh/km")},
		{"peak current", f1(s.PeakCurrent, "A")},
		{"climb share", fmt.Sprintf("%.0f %%", s.ClimbShare*100)},
		{"plateau", plateau},
	}))
}

// RenderSuitability lists each check with its pass marker.
func RenderSuitability(s sizing.Suitability) string {
	lines := make([]string, 0, len(s.Checks)+1)
	for _, c := range s.Checks {
		line := fmt.Sprintf("%s  %s  %s", Status(c.Pass), MetricLabel.Render(c.Name),
			MetricValue.Render(fmt.Sprintf("%.1f / %.1f %s", c.Required, c.Available, c.Unit)))
		if !c.Pass && c.Achievable != 0 {
			line += Subtle.Render(fmt.Sprintf("  achievable %.1f", c.Achievable))
		}
		lines = append(lines, line)
	}
	verdict := StatusPass.Render("suitable")
	if !s.Suitable {
		verdict = StatusFail.Render("not suitable")
	}
	lines = append(lines, "", verdict)
	title := fmt.Sprintf("%s × %d (%s)", s.Motor, s.Motors, s.Mode)
	return Box(title, strings.Join(lines, "\n"))
}

// RenderSizing lays out the design calculator report.
func RenderSizing(r *sizing.Report) string {
	var sections []string

	sections = append(sections, Box("forces at targets", kvBlock([]kv{
		{"drag at max speed", f2(r.Forces.DragAtMax, "N")},
		{"drag at slope speed", f2(r.Forces.DragAtSlope, "N")},
		{"rolling", f2(r.Forces.Roll, "N")},
		{"climb at gradeability", f2(r.Forces.ClimbAtGrade, "N")},
	})))

	sections = append(sections, Box("acceleration power", kvBlock([]kv{
		{"instant total", f1(r.Instant.Total, "W")},
		{"averaged kinetic", f1(r.Averaged.Kinetic, "W")},
		{"averaged drag", f1(r.Averaged.Drag, "W")},
		{"averaged rolling", f1(r.Averaged.Rolling, "W")},
		{"averaged total", f1(r.Averaged.Total, "W")},
		{"required motor input", f1(r.RequiredPower, "W")},
	})))

	var req []kv
	for _, q := range r.Requirements {
		req = append(req, kv{q.Name, fmt.Sprintf("%.0f W wheel, %.0f W input, %.0f rpm, %.2f Nm",
			q.Power.Wheel, q.Power.MotorInput, q.MotorRPM, q.MotorTorque)})
	}
	sections = append(sections, Box("requirements", kvBlock(req)))

	b := r.Battery
	sections = append(sections, Box("battery", kvBlock([]kv{
		{"current", f2(b.Current, "A")},
		{"true energy", f1(b.TrueWh, "Wh")},
		{"true capacity", f2(b.TrueAh, "Ah")},
		{"peukert capacity", f2(b.PeukertAh, "Ah")},
		{"weight", f2(b.Weight, "kg")},
		{"with margin", f2(b.Margin.FinalAh, "Ah")},
	})))

	var slabs []kv
	for _, s := range r.Pattern.Slabs {
		slabs = append(slabs, kv{
			fmt.Sprintf("%.0f km/h @ %.0f°", s.Slab.Speed, s.Slab.Gradient),
			fmt.Sprintf("%.1f km, %.1f Wh, %.2f Ah", s.DistanceKm, s.EnergyWh, s.FinalAh),
		})
	}
	slabs = append(slabs, kv{"total", fmt.Sprintf("%.1f Wh, %.2f Ah true, %.2f Ah final",
		r.Pattern.TotalWh, r.Pattern.TotalTrueAh, r.Pattern.TotalFinalAh)})
	sections = append(sections, Box("drive pattern", kvBlock(slabs)))

	if r.UGV != nil {
		u := r.UGV
		sections = append(sections, Box("skid steer", kvBlock([]kv{
			{"skid force", f2(u.Turning.SkidForce, "N")},
			{"per powered wheel", f2(u.Turning.SkidPerWheel, "N")},
			{"wheel speed", f2(u.Turning.WheelSpeed, "m/s")},
			{"power per motor", f2(u.Turning.PowerPerMotor, "W")},
			{"yaw rate", f2(u.Turning.YawRateDeg, "deg/s")},
			{"motor torque", f2(u.Turning.MotorTorque, "Nm")},
			{"step load / wheel", f2(u.Step.LoadPerWheel, "kg")},
			{"step torque", f2(u.Step.Torque, "Nm")},
		})))
	}

	return strings.Join(sections, "\n")
}

// RenderSelection ranks motor candidates, best first.
func RenderSelection(sel *optim.Selection) string {
	var rows []kv
	for _, c := range sel.Candidates {
		mark := Status(c.Suitability.Suitable)
		rows = append(rows, kv{
			fmt.Sprintf("%s/%s", c.Motor, c.Mode),
			fmt.Sprintf("%.2f Wh/km  %.1f km/h  ", c.EnergyPerKm, c.Summary.FinalSpeedKmh) + mark,
		})
	}
	body := kvBlock(rows)
	if sel.Best.Motor != "" {
		body += "\n\n" + Title.Render(fmt.Sprintf("best: %s in %s", sel.Best.Motor, sel.Best.Mode))
	}
	return Box("motor selection", body)
}
