package viewer

// Status is a snapshot of session state for remote clients.
type Status struct {
	Color         string   `json:"color"`
	View          string   `json:"view,omitempty"`
	Camera        string   `json:"camera"`
	Rotating      bool     `json:"rotating"`
	RotationLabel string   `json:"rotation_label"`
	Clip          string   `json:"clip,omitempty"`
	Clips         []string `json:"clips"`
	Views         []string `json:"views"`
	Swatches      []string `json:"swatches"`
	BodyTier      string   `json:"body_tier"`
	BodyMaterials int      `json:"body_materials"`
	Error         string   `json:"error,omitempty"`
}

// Status reports the current session state.
func (s *Session) Status() Status {
	st := Status{
		Color:         s.color,
		View:          s.lastView,
		Camera:        s.sequencer.State().String(),
		Rotating:      s.rotating,
		RotationLabel: s.RotationLabel(),
		Views:         s.sequencer.Catalog().Names(),
		Swatches:      s.opts.Swatches,
		BodyTier:      s.tier.String(),
		BodyMaterials: s.body.Len(),
	}
	if cur := s.mixer.Current(); cur != nil {
		st.Clip = cur.Name
	}
	st.Clips = make([]string, 0, len(s.mixer.Clips()))
	for _, c := range s.mixer.Clips() {
		st.Clips = append(st.Clips, c.Name)
	}
	return st
}
