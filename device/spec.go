package device

// Spec is the wire representation of a device descriptor as served by the
// cloud device endpoint.
type Spec struct {
	Name                 string       `json:"name"`
	MaxAtomNum           int          `json:"max_atom_num"`
	MaxRadialDistance    float64      `json:"max_radial_distance"`
	MinAtomDistance      float64      `json:"min_atom_distance"`
	AcceptsNewLayouts    bool         `json:"accepts_new_layouts"`
	PreCalibratedLayouts []LayoutSpec `json:"pre_calibrated_layouts,omitempty"`
}

// LayoutSpec is the wire representation of a trap layout.
type LayoutSpec struct {
	Slug  string       `json:"slug"`
	Traps [][2]float64 `json:"traps"`
}

// FromSpec converts a wire descriptor into a Device.
func FromSpec(s Spec) *Device {
	d := &Device{
		Name:              s.Name,
		MaxAtomNum:        s.MaxAtomNum,
		MaxRadialDistance: s.MaxRadialDistance,
		MinAtomDistance:   s.MinAtomDistance,
		AcceptsNewLayouts: s.AcceptsNewLayouts,
	}
	for _, l := range s.PreCalibratedLayouts {
		d.PreCalibratedLayouts = append(d.PreCalibratedLayouts, FreeLayout(l.Traps, l.Slug))
	}
	return d
}

// ToSpec converts a device into its wire descriptor.
func ToSpec(d *Device) Spec {
	s := Spec{
		Name:              d.Name,
		MaxAtomNum:        d.MaxAtomNum,
		MaxRadialDistance: d.MaxRadialDistance,
		MinAtomDistance:   d.MinAtomDistance,
		AcceptsNewLayouts: d.AcceptsNewLayouts,
	}
	for _, l := range d.PreCalibratedLayouts {
		s.PreCalibratedLayouts = append(s.PreCalibratedLayouts, LayoutSpec{
			Slug:  l.Slug(),
			Traps: l.Traps(),
		})
	}
	return s
}
