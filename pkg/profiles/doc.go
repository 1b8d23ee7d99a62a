// Package profiles holds the interaction-profile catalogue: the immutable,
// process-wide table describing every controller class the layer knows about.
//
// # Catalogue Structure
//
// Each profile is identified by a path (e.g.
// "/interaction_profiles/khr/simple_controller") and declares:
//
//   - subaction paths: the top-level locations the hardware occupies
//     (left hand, right hand, head, gamepad)
//   - subpaths: the physical inputs and outputs (a trigger, a trackpad,
//     a haptic motor), each with a kind tag, a label, an optional side
//     restriction, and the features it exposes
//
// # Features
//
// A feature is one measurable or controllable aspect of a subpath. The
// closed set is click, touch, force, value, position, twist, pose and
// haptic; unrecognized tags are preserved verbatim and never actionable.
// Feature.ActionType is the pure, total mapping from feature to action
// value shape used both when god actions are built and when state queries
// pick a result shape.
//
// # Loading
//
// The catalogue ships embedded as YAML and is parsed once by Load.
// Parse is exposed for tooling that inspects external catalogue files.
// A Registry is immutable after load and safe for unsynchronized reads.
package profiles
