package xr

// Vector2f is a 2D input value. Axes range -1..1 with 0 at rest.
type Vector2f struct {
	X float32
	Y float32
}

// Vector3f is a 3D position in meters.
type Vector3f struct {
	X float32
	Y float32
	Z float32
}

// Quaternionf is a rotation. The identity rotation is (0,0,0,1).
type Quaternionf struct {
	X float32
	Y float32
	Z float32
	W float32
}

// IdentityQuaternion is the rest orientation.
var IdentityQuaternion = Quaternionf{W: 1}

// Posef is an orientation plus position.
type Posef struct {
	Orientation Quaternionf
	Position    Vector3f
}

// ActionStateBoolean is the last-known value of a boolean action.
type ActionStateBoolean struct {
	CurrentState         bool
	ChangedSinceLastSync bool
	LastChangeTime       int64
	IsActive             bool
}

// ActionStateFloat is the last-known value of a float action.
type ActionStateFloat struct {
	CurrentState         float32
	ChangedSinceLastSync bool
	LastChangeTime       int64
	IsActive             bool
}

// ActionStateVector2f is the last-known value of a 2D action.
type ActionStateVector2f struct {
	CurrentState         Vector2f
	ChangedSinceLastSync bool
	LastChangeTime       int64
	IsActive             bool
}

// ActionStatePose reports whether a pose action is actively tracked.
// The pose itself is located through a space, not through this state.
type ActionStatePose struct {
	IsActive bool
}
