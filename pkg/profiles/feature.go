package profiles

import "github.com/unibind/unibind-go/pkg/xr"

// Feature is one measurable or controllable aspect of a subpath.
// The zero value is not a valid feature. Unrecognized tags are carried
// verbatim so the catalogue can describe inputs this layer predates.
type Feature string

const (
	// FeatureClick is a physical switch press. Always boolean.
	FeatureClick Feature = "click"
	// FeatureTouch reports contact with the input source. Always boolean.
	FeatureTouch Feature = "touch"
	// FeatureForce is a 0..1 scalar of applied force.
	FeatureForce Feature = "force"
	// FeatureValue is a 0..1 scalar, 0 at rest (triggers, throttles).
	FeatureValue Feature = "value"
	// FeaturePosition is a 2D -1..1 location (trackpads, thumbsticks).
	FeaturePosition Feature = "position"
	// FeatureTwist is a -1..1 rotation scalar (flight sticks).
	FeatureTwist Feature = "twist"
	// FeaturePose is the tracked orientation/position of the input source.
	FeaturePose Feature = "pose"
	// FeatureHaptic is a vibration output element.
	FeatureHaptic Feature = "haptic"
)

// ParseFeature returns the feature for a catalogue tag. Unrecognized tags
// round-trip unchanged; Known reports whether the tag is in the closed set.
func ParseFeature(s string) Feature {
	return Feature(s)
}

func (f Feature) String() string {
	return string(f)
}

// Known reports whether f belongs to the closed feature set.
func (f Feature) Known() bool {
	switch f {
	case FeatureClick, FeatureTouch, FeatureForce, FeatureValue,
		FeaturePosition, FeatureTwist, FeaturePose, FeatureHaptic:
		return true
	}
	return false
}

// ActionType maps a feature to its action value shape. The mapping is total
// over the closed feature set and yields ActionTypeUnknown for anything
// else; unknown features never become god actions.
func (f Feature) ActionType() xr.ActionType {
	switch f {
	case FeatureClick, FeatureTouch:
		return xr.ActionTypeBooleanInput
	case FeatureForce, FeatureValue, FeatureTwist:
		return xr.ActionTypeFloatInput
	case FeaturePosition:
		return xr.ActionTypeVector2fInput
	case FeaturePose:
		return xr.ActionTypePoseInput
	case FeatureHaptic:
		return xr.ActionTypeVibrationOutput
	default:
		return xr.ActionTypeUnknown
	}
}
