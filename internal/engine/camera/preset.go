package camera

// Preset is a bundle of controller settings applied in one step.
type Preset struct {
	Enabled           bool
	ConstrainVertical bool
	LookVertical      bool
	NoFly             bool
	Lat               float32
	Lon               float32
	LookSpeed         float32
	MovementSpeed     float32
	VerticalMin       float32
	VerticalMax       float32
}

// ViewerPreset is the configuration a render context installs on its controller.
// The controller starts disabled; the host enables it on demand.
func ViewerPreset() Preset {
	return Preset{
		Enabled:           false,
		ConstrainVertical: false,
		Lat:               120,
		Lon:               -150,
		LookSpeed:         20,
		LookVertical:      true,
		MovementSpeed:     100,
		NoFly:             true,
		VerticalMax:       2.0,
		VerticalMin:       1.0,
	}
}

// Apply overwrites the controller settings covered by the preset.
func (c *FirstPersonControls) Apply(p Preset) {
	c.Enabled = p.Enabled
	c.ConstrainVertical = p.ConstrainVertical
	c.LookVertical = p.LookVertical
	c.NoFly = p.NoFly
	c.Lat = p.Lat
	c.Lon = p.Lon
	c.LookSpeed = p.LookSpeed
	c.MovementSpeed = p.MovementSpeed
	c.VerticalMin = p.VerticalMin
	c.VerticalMax = p.VerticalMax
}
