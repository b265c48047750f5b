package dynamo

// Column headers of the simulation table, in output order.
var BaseColumns = []string{
	"Time",
	"Vehicle Speed (m/s)",
	"Vehicle Speed (Kmph)",
	"Motor Speed (RPM)",
	"Gradient (Degree)",
	"Mode",
	"Total Motor Torque (Nm)",
	"Total Number of Power Wheels",
	"PerMotor Torque (Nm)",
	"PerMotor Power (Watts)",
	"Motoring Tractive Force F_Tractive (N)",
	"Froll (N)",
	"Fdrag (N)",
	"Fclimb (N)",
	"F_Load Resistance (N)",
	"Net Force F_Net (N)",
	"Vehicle Acceleration (m/s)",
}

// AccumulatorColumns follow the base columns in full-precision exports.
var AccumulatorColumns = []string{
	"Distance (m)",
	"Energy (Wh)",
	"Battery Energy (Wh)",
	"Battery Current (A)",
}

// TurningColumns are appended for UGV runs.
var TurningColumns = []string{
	"Skid Friction Force (N)",
	"Skid Force per Powered Wheel (N)",
	"Turning Wheel Speed (m/s)",
	"Turning Power per Motor (W)",
}

// Turning holds the constant skid-steer figures of a UGV.
type Turning struct {
	SkidForce     float64 `json:"skid_force"`
	SkidPerWheel  float64 `json:"skid_per_wheel"`
	WheelSpeed    float64 `json:"wheel_speed"`
	PowerPerMotor float64 `json:"power_per_motor"`
}

// Row is one time step of the simulation table.
type Row struct {
	Time           float64 `json:"time"`
	Speed          float64 `json:"speed"`
	SpeedKmh       float64 `json:"speed_kmh"`
	MotorRPM       float64 `json:"motor_rpm"`
	Gradient       float64 `json:"gradient"`
	Mode           Mode    `json:"mode"`
	TotalTorque    float64 `json:"total_torque"`
	DrivenWheels   int     `json:"driven_wheels"`
	PerMotorTorque float64 `json:"per_motor_torque"`
	PerMotorPower  float64 `json:"per_motor_power"`
	Tractive       float64 `json:"tractive"`
	Roll           float64 `json:"roll"`
	Drag           float64 `json:"drag"`
	Climb          float64 `json:"climb"`
	Resistance     float64 `json:"resistance"`
	Net            float64 `json:"net"`
	Accel          float64 `json:"accel"`

	Distance       float64 `json:"distance"`
	Energy         float64 `json:"energy"`
	BatteryEnergy  float64 `json:"battery_energy"`
	BatteryCurrent float64 `json:"battery_current"`

	Turning *Turning `json:"turning,omitempty"`
}

// Cells returns the row in column order. Accumulators are included when
// extended is set; turning columns whenever the row carries them.
func (r Row) Cells(extended bool) []any {
	cells := []any{
		r.Time, r.Speed, r.SpeedKmh, r.MotorRPM, r.Gradient, r.Mode.Display(),
		r.TotalTorque, r.DrivenWheels, r.PerMotorTorque, r.PerMotorPower,
		r.Tractive, r.Roll, r.Drag, r.Climb, r.Resistance, r.Net, r.Accel,
	}
	if extended {
		cells = append(cells, r.Distance, r.Energy, r.BatteryEnergy, r.BatteryCurrent)
	}
	if r.Turning != nil {
		cells = append(cells, r.Turning.SkidForce, r.Turning.SkidPerWheel, r.Turning.WheelSpeed, r.Turning.PowerPerMotor)
	}
	return cells
}

// Table is the immutable result of one run.
type Table struct {
	Params Params    `json:"params"`
	Config RunConfig `json:"config"`
	Rows   []Row     `json:"rows"`
}

func (t *Table) Len() int { return len(t.Rows) }

// Columns returns the headers matching Row.Cells.
func (t *Table) Columns(extended bool) []string {
	cols := append([]string(nil), BaseColumns...)
	if extended {
		cols = append(cols, AccumulatorColumns...)
	}
	if t.Params.IsUGV() {
		cols = append(cols, TurningColumns...)
	}
	return cols
}

// Last returns the final row, or a zero Row for an empty table.
func (t *Table) Last() Row {
	if len(t.Rows) == 0 {
		return Row{}
	}
	return t.Rows[len(t.Rows)-1]
}

// Series extracts one float column for plotting.
func (t *Table) Series(pick func(Row) float64) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = pick(r)
	}
	return out
}
