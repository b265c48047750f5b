package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/powertrain/internal/dynamo"
)

func evVehicle() VehicleConfig {
	return VehicleConfig{
		Type:              "ev",
		DragCoefficient:   0.8,
		RollingResistance: 0.02,
		AirDensity:        1.164,
		FrontalArea:       0.5,
		WheelRadius:       0.559 / 2,
		GearRatio:         5.221,
		GearEfficiency:    0.95,
		MotorEfficiency:   0.85,
		Motors:            2,
		BatteryVoltage:    24,
		RotaryInertia:     1.06,
		Weights:           Weights{Vehicle: 150, Battery: 10.5},
		Motor:             "default",
	}
}

func DefaultUGV() dynamo.UGV {
	return *dynamo.DefaultUGVParams().UGV
}

// Vehicles are the built-in vehicle presets.
var Vehicles = map[string]VehicleConfig{
	"ev": evVehicle(),
	"ugv": func() VehicleConfig {
		v := evVehicle()
		v.Type = "ugv"
		u := DefaultUGV()
		v.UGV = &u
		return v
	}(),
}

// Motors is the traction motor catalog.
var Motors = map[string]dynamo.Motor{
	"default": dynamo.DefaultMotor(),
	"gpm35": {
		Name: "GPM35 (4kW/8kW)", EcoTorque: 17.5, BoostTorque: 35,
		EcoPower: 4000, BoostPower: 8000, BaseRPM: 500, MaxRPM: 7500, Weight: 13.5,
	},
	"gpm50": {
		Name: "GPM50 (6kW/11kW)", EcoTorque: 26, BoostTorque: 52,
		EcoPower: 6000, BoostPower: 11000, BaseRPM: 500, MaxRPM: 7500, Weight: 14.5,
	},
	"gpm70": {
		Name: "GPM70 (8kW/16kW)", EcoTorque: 35, BoostTorque: 70,
		EcoPower: 8000, BoostPower: 16000, BaseRPM: 500, MaxRPM: 7500, Weight: 18,
	},
}

// Terrains maps terrain names to road gradients in degrees.
var Terrains = map[string]float64{
	"flat":   0,
	"gentle": 7,
	"hill":   15,
	"steep":  30,
}

func GetVehicle(name string) (VehicleConfig, error) {
	v, ok := Vehicles[strings.ToLower(name)]
	if !ok {
		return VehicleConfig{}, fmt.Errorf("%w: vehicle %q", dynamo.ErrUnknownPreset, name)
	}
	return v.clone(), nil
}

// GetMotor looks a motor up by catalog key; empty selects the default motor.
func GetMotor(name string) (dynamo.Motor, error) {
	if name == "" {
		name = "default"
	}
	m, ok := Motors[strings.ToLower(name)]
	if !ok {
		return dynamo.Motor{}, fmt.Errorf("%w: motor %q", dynamo.ErrUnknownPreset, name)
	}
	return m, nil
}

func GetTerrain(name string) (float64, error) {
	g, ok := Terrains[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: terrain %q", dynamo.ErrUnknownPreset, name)
	}
	return g, nil
}

func ListVehicles() []string { return sortedKeys(Vehicles) }
func ListMotors() []string   { return sortedKeys(Motors) }
func ListTerrains() []string { return sortedKeys(Terrains) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
