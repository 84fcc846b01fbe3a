// Package material classifies car surfaces by name and applies the shading
// parameters each class of surface should have.
package material

import "strings"

// Category is the semantic class of a surface.
type Category int

// Categories in classification priority order.
const (
	Unclassified Category = iota
	BodyPaint
	Glass
	Chrome
	Rubber
	Plastic
	Interior
)

var categoryNames = [...]string{
	Unclassified: "unclassified",
	BodyPaint:    "body-paint",
	Glass:        "glass",
	Chrome:       "chrome",
	Rubber:       "rubber",
	Plastic:      "plastic",
	Interior:     "interior",
}

// String returns the category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// keywordRule binds a category to the substrings that select it.
type keywordRule struct {
	category Category
	keywords []string
}

// rules is tested top to bottom; the first rule with a matching keyword wins.
var rules = []keywordRule{
	{BodyPaint, []string{"body", "paint", "car", "exterior"}},
	{Glass, []string{"glass", "window"}},
	{Chrome, []string{"chrome", "metal", "steel", "aluminum"}},
	{Rubber, []string{"rubber", "tire", "tyre"}},
	{Plastic, []string{"plastic"}},
	{Interior, []string{"interior", "seat", "leather"}},
}

// Classify returns the category for a surface name. Matching is
// case-insensitive substring containment.
func Classify(name string) Category {
	name = strings.ToLower(name)
	for _, r := range rules {
		if containsAny(name, r.keywords) {
			return r.category
		}
	}
	return Unclassified
}

// Keywords returns a copy of the substrings that select c.
func Keywords(c Category) []string {
	for _, r := range rules {
		if r.category == c {
			return append([]string(nil), r.keywords...)
		}
	}
	return nil
}

// MatchesAny reports whether the lower-cased name contains any keyword.
func MatchesAny(name string, keywords []string) bool {
	return containsAny(strings.ToLower(name), keywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
