// Package paint decides which materials form the car's paintable body and
// recolors them.
package paint

import (
	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/internal/logger"
)

// Tier identifies which fallback produced a BodySet.
type Tier int

const (
	TierNone     Tier = iota // no surface had a material
	TierKeyword              // names matched body keywords
	TierLargest              // surface with the largest bounding box
	TierAll                  // every material in the model
)

func (t Tier) String() string {
	switch t {
	case TierKeyword:
		return "keyword"
	case TierLargest:
		return "largest"
	case TierAll:
		return "all"
	default:
		return "none"
	}
}

// hullKeywords extend the body paint keywords for resolution only.
var hullKeywords = []string{"hull", "chassis"}

// BodySet is the ordered, duplicate-free set of body materials.
type BodySet struct {
	mats []*material.Params
	seen map[*material.Params]struct{}
}

// Add inserts p unless it is nil or already present.
func (s *BodySet) Add(p *material.Params) {
	if p == nil {
		return
	}
	if s.seen == nil {
		s.seen = make(map[*material.Params]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.mats = append(s.mats, p)
}

// Len returns the number of materials.
func (s *BodySet) Len() int {
	return len(s.mats)
}

// Contains reports whether p is in the set. A nil set contains nothing.
func (s *BodySet) Contains(p *material.Params) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[p]
	return ok
}

// Materials returns the set members in insertion order.
func (s *BodySet) Materials() []*material.Params {
	return s.mats
}

// Resolve picks the body materials from surfaces. Exactly one tier fires:
// keyword matches, else the single largest surface, else everything.
func Resolve(surfaces []scene.Surface) (*BodySet, Tier) {
	if set := byKeyword(surfaces); set.Len() > 0 {
		return set, TierKeyword
	}
	if set, name := byLargest(surfaces); set.Len() > 0 {
		logger.Info("no body materials by name, using largest surface", zap.String("surface", name))
		return set, TierLargest
	}
	set := &BodySet{}
	for _, s := range surfaces {
		for _, m := range s.Materials {
			set.Add(m)
		}
	}
	if set.Len() > 0 {
		logger.Info("no sized surface found, using all materials", zap.Int("count", set.Len()))
		return set, TierAll
	}
	return set, TierNone
}

func byKeyword(surfaces []scene.Surface) *BodySet {
	body := material.Keywords(material.BodyPaint)
	set := &BodySet{}
	for _, s := range surfaces {
		for _, m := range s.Materials {
			// the node name only stands in for an unnamed material
			if isBodyName(material.LookupName(m, s.Name), body) {
				set.Add(m)
			}
		}
	}
	return set
}

func isBodyName(name string, body []string) bool {
	return material.MatchesAny(name, body) || material.MatchesAny(name, hullKeywords)
}

func byLargest(surfaces []scene.Surface) (*BodySet, string) {
	var best *scene.Surface
	var bestSize float32
	for i := range surfaces {
		s := &surfaces[i]
		if len(s.Materials) == 0 || !s.Bounds.Valid() {
			continue
		}
		if d := s.Bounds.Diagonal(); d > 0 && (best == nil || d > bestSize) {
			best, bestSize = s, d
		}
	}
	set := &BodySet{}
	if best == nil {
		return set, ""
	}
	for _, m := range best.Materials {
		set.Add(m)
	}
	return set, best.Name
}
