package viewer

import (
	"errors"
	"fmt"

	"github.com/Faultbox/carviewer/internal/engine/animation"
)

// Control attributes accepted by HandleControl.
const (
	AttrColor     = "data-color"
	AttrView      = "data-view"
	AttrAnimation = "data-animation"
)

// Reserved data-animation values.
const (
	AnimRotate   = "rotate"
	AnimShowcase = "showcase"
)

// ErrUnknownControl is returned for attributes the session does not handle.
var ErrUnknownControl = errors.New("unknown control")

// Control is a single UI action: an attribute name and its string value.
type Control struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// HandleControl dispatches a UI action. Unknown viewpoints and animations
// are no-ops; only malformed colors and unknown attributes return errors.
func (s *Session) HandleControl(c Control) error {
	switch c.Attribute {
	case AttrColor:
		return s.SetColor(c.Value)
	case AttrView:
		s.GoTo(c.Value)
	case AttrAnimation:
		switch c.Value {
		case AnimRotate:
			s.ToggleRotation()
		case AnimShowcase:
			s.PlayShowcase()
		default:
			s.PlayAnimation(animation.ParseRequest(c.Value))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownControl, c.Attribute)
	}
	return nil
}
