package components

// Params holds the live-tunable parameters. The settings panel owns the
// record and may change it between any two ticks; the simulation reads a
// fresh copy every tick. Ranges are documented for the panel only and are
// not enforced here.
type Params struct {
	Speed         float64 `yaml:"speed"`          // [0, 200] units/s (shmup) or units/s^2 (ship)
	RotationSpeed float64 `yaml:"rotation_speed"` // [0, 360] degrees/s
	Friction      float64 `yaml:"friction"`       // [0, 0.99] fraction of velocity lost per second
	Interpolation bool    `yaml:"interpolation"`
}

// Parameter ranges exposed by the settings panel.
const (
	SpeedMin         = 0.0
	SpeedMax         = 200.0
	RotationSpeedMin = 0.0
	RotationSpeedMax = 360.0
	FrictionMin      = 0.0
	FrictionMax      = 0.99
)
