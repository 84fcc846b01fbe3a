package viewer

import (
	"strconv"
)

// KeyControl maps a keyboard key name to the control it triggers:
// 1-5 pick viewpoints in catalog order, C cycles swatches, R toggles the
// turntable, S starts the showcase and N plays the next clip.
func (s *Session) KeyControl(key string) (Control, bool) {
	switch key {
	case "C", "c":
		if len(s.opts.Swatches) == 0 {
			return Control{}, false
		}
		next := s.opts.Swatches[(s.swatch+1)%len(s.opts.Swatches)]
		return Control{AttrColor, next}, true
	case "R", "r":
		return Control{AttrAnimation, AnimRotate}, true
	case "S", "s":
		return Control{AttrAnimation, AnimShowcase}, true
	case "N", "n":
		return Control{AttrAnimation, strconv.Itoa(s.NextClipRequest().Index)}, true
	}
	if n, err := strconv.Atoi(key); err == nil {
		if name, err := s.ViewName(n - 1); err == nil {
			return Control{AttrView, name}, true
		}
	}
	return Control{}, false
}
