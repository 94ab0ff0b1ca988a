package page

// Tunable is one live setting exposed to the tuning panel.
type Tunable struct {
	Label    string
	Min, Max float64
	Get      func() float64
	Set      func(float64)
}

// Tunables returns the live settings of the page's components.
func (p *Page) Tunables() []Tunable {
	var out []Tunable
	if p.Spinner != nil {
		st := p.Spinner.State()
		out = append(out,
			Tunable{"earth sensitivity", 0.05, 2, func() float64 { return st.Sensitivity }, func(v float64) { st.Sensitivity = v }},
			Tunable{"earth damping", 0.8, 0.999, func() float64 { return st.Damping }, func(v float64) { st.Damping = v }},
			Tunable{"earth cutoff", 0.01, 1, func() float64 { return st.MinVelocity }, func(v float64) { st.MinVelocity = v }},
		)
	}
	if p.Orbit != nil {
		st := p.Orbit.State()
		out = append(out,
			Tunable{"globe sensitivity", 0.001, 0.02, func() float64 { return st.Sensitivity }, func(v float64) { st.Sensitivity = v }},
			Tunable{"globe damping", 0.8, 0.999, func() float64 { return st.Damping }, func(v float64) { st.Damping = v }},
			Tunable{"globe cutoff", 0.00001, 0.001, func() float64 { return st.MinVelocity }, func(v float64) { st.MinVelocity = v }},
		)
	}
	if p.Parallax != nil {
		tr := p.Parallax.Tracker()
		out = append(out, Tunable{"parallax smoothing", 0.01, 1, tr.Smoothing, tr.SetSmoothing})
	}
	if p.Snowfall != nil {
		sf := p.Snowfall
		out = append(out, Tunable{"snow wind", -3, 3, func() float64 { return sf.Config().Wind }, sf.SetWind})
	}
	if p.Starfield != nil {
		sf := p.Starfield
		out = append(out, Tunable{"star speed", 0, 2, func() float64 { return sf.Config().Speed }, sf.SetSpeed})
	}
	return out
}
