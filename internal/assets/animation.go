package assets

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/carviewer/internal/engine/animation"
	"github.com/Faultbox/carviewer/internal/engine/scene"
)

func (a *Asset) convertAnimation(anim *gltf.Animation, index int, nodes []*scene.Node) (*animation.Clip, error) {
	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", index)
	}
	var channels []animation.Channel
	for ci, ch := range anim.Channels {
		ni, ok := indexOf(ch.Target.Node)
		if !ok || ni >= len(nodes) {
			continue
		}
		path, ok := channelPath(ch.Target.Path)
		if !ok {
			continue
		}
		si, ok := indexOf(ch.Sampler)
		if !ok || si >= len(anim.Samplers) {
			return nil, fmt.Errorf("channel %d: bad sampler", ci)
		}
		smp := anim.Samplers[si]

		times, err := a.readFloats(smp.Input)
		if err != nil {
			return nil, fmt.Errorf("channel %d input: %w", ci, err)
		}
		values, err := a.readFloats(smp.Output)
		if err != nil {
			return nil, fmt.Errorf("channel %d output: %w", ci, err)
		}
		interp := animation.Linear
		switch smp.Interpolation {
		case gltf.InterpolationStep:
			interp = animation.Step
		case gltf.InterpolationCubicSpline:
			values = splineValues(values, path.Width())
		}
		channels = append(channels, animation.Channel{
			Node:          nodes[ni],
			Path:          path,
			Interpolation: interp,
			Times:         times,
			Values:        values,
		})
	}
	return animation.NewClip(name, index, channels), nil
}

func channelPath(p gltf.TRSProperty) (animation.Path, bool) {
	switch p {
	case gltf.TRSTranslation:
		return animation.Translation, true
	case gltf.TRSRotation:
		return animation.Rotation, true
	case gltf.TRSScale:
		return animation.Scale, true
	}
	return 0, false
}

// splineValues keeps the value of each in-tangent/value/out-tangent triple.
// Playback interpolates the kept values linearly.
func splineValues(v []float32, width int) []float32 {
	stride := width * 3
	out := make([]float32, 0, len(v)/3)
	for i := 0; i+stride <= len(v); i += stride {
		out = append(out, v[i+width:i+2*width]...)
	}
	return out
}

// readFloats flattens a float accessor of any width.
func (a *Asset) readFloats(accessor any) ([]float32, error) {
	var idx int
	var ok bool
	switch v := accessor.(type) {
	case int:
		idx, ok = indexOf(v)
	case *int:
		idx, ok = indexOf(v)
	}
	if !ok || idx >= len(a.doc.Accessors) {
		return nil, fmt.Errorf("missing accessor")
	}
	data, err := modeler.ReadAccessor(a.doc, a.doc.Accessors[idx], nil)
	if err != nil {
		return nil, err
	}
	return flatten(data)
}

func flatten(data any) ([]float32, error) {
	switch d := data.(type) {
	case []float32:
		return d, nil
	case [][2]float32:
		return flattenN(d), nil
	case [][3]float32:
		return flattenN(d), nil
	case [][4]float32:
		return flattenN(d), nil
	}
	return nil, fmt.Errorf("unsupported accessor data %T", data)
}

func flattenN[A [2]float32 | [3]float32 | [4]float32](rows []A) []float32 {
	var out []float32
	for _, r := range rows {
		for i := 0; i < len(r); i++ {
			out = append(out, r[i])
		}
	}
	return out
}
