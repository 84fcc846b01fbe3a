package animation

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/logger"
)

// Request asks for a clip by position or by name.
type Request struct {
	Name    string
	Index   int
	ByIndex bool
}

// ByName requests the first clip called name.
func ByName(name string) Request {
	return Request{Name: name}
}

// ByIndex requests the clip at position i.
func ByIndex(i int) Request {
	return Request{Index: i, ByIndex: true}
}

// ParseRequest turns a control value into a request. Integer strings are
// index requests that still carry the raw text as a name.
func ParseRequest(s string) Request {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return Request{Name: s, Index: i, ByIndex: true}
	}
	return ByName(s)
}

func (r Request) String() string {
	if r.ByIndex {
		return "#" + strconv.Itoa(r.Index)
	}
	return r.Name
}

// Select resolves req against clips: an in-range index wins, then the
// first exact name match, then the first clip. It returns false only when
// clips is empty.
func Select(req Request, clips []*Clip) (*Clip, bool) {
	if req.ByIndex && req.Index >= 0 && req.Index < len(clips) {
		return clips[req.Index], true
	}
	if req.Name != "" {
		for _, c := range clips {
			if c.Name == req.Name {
				return c, true
			}
		}
	}
	if len(clips) == 0 {
		logger.Debug("no animation clips loaded", zap.Stringer("request", req))
		return nil, false
	}
	logger.Info("animation not found, playing first clip",
		zap.Stringer("request", req), zap.String("clip", clips[0].Name))
	return clips[0], true
}
