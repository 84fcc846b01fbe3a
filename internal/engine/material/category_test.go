package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Body_Main", BodyPaint},
		{"CarPaint.001", BodyPaint},
		{"EXTERIOR_shell", BodyPaint},
		{"windshield_Glass", Glass},
		{"Window_L", Glass},
		{"chrome_trim", Chrome},
		{"wheel_metal", Chrome},
		{"Steel_rim", Chrome},
		{"aluminum_plate", Chrome},
		{"Tire_FL", Rubber},
		{"tyre", Rubber},
		{"rubber_seal", Rubber},
		{"dash_plastic", Plastic},
		{"Interior_trim", Interior},
		{"seat_left", Interior},
		{"leather", Interior},
		{"headlight", Unclassified},
		{"", Unclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// body beats glass, glass beats chrome, rubber beats interior
	assert.Equal(t, BodyPaint, Classify("body_glass"))
	assert.Equal(t, BodyPaint, Classify("window_paint"))
	assert.Equal(t, Glass, Classify("glass_chrome"))
	assert.Equal(t, Rubber, Classify("seat_rubber"))
	// "carbon" contains "car"
	assert.Equal(t, BodyPaint, Classify("carbon_interior"))
}

func TestClassifyDeterministic(t *testing.T) {
	for _, name := range []string{"Body", "Glass", "tire", "unknown", "Seat_Leather"} {
		assert.Equal(t, Classify(name), Classify(name), name)
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "body-paint", BodyPaint.String())
	assert.Equal(t, "unclassified", Unclassified.String())
	assert.Equal(t, "unknown", Category(42).String())
}

func TestKeywordsReturnsCopy(t *testing.T) {
	kw := Keywords(BodyPaint)
	assert.Equal(t, []string{"body", "paint", "car", "exterior"}, kw)
	kw[0] = "changed"
	assert.Equal(t, "body", Keywords(BodyPaint)[0])
	assert.Nil(t, Keywords(Unclassified))
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, MatchesAny("Main_HULL", []string{"hull"}))
	assert.False(t, MatchesAny("wheel", []string{"hull", "chassis"}))
}
