package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes layer events to an slog.Logger.
// Useful for development when you want to see intercepted calls in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer_id", event.LayerID),
		slog.String("call", event.Call.String()),
		slog.Int64("result", int64(event.Result)),
	}
	if event.Handle != 0 {
		attrs = append(attrs, slog.Uint64("handle", event.Handle))
	}

	// Add call-specific attributes
	switch {
	case event.Attach != nil:
		attrs = append(attrs,
			slog.Int("set_count", event.Attach.SetCount),
			slog.Bool("god_sets", event.Attach.GodSets),
		)
		if event.Attach.StateCount != 0 {
			attrs = append(attrs, slog.Int("state_count", event.Attach.StateCount))
		}
	case event.Sync != nil:
		attrs = append(attrs,
			slog.Int("active_sets", event.Sync.ActiveSets),
			slog.Int("forwarded_sets", event.Sync.ForwardedSets),
			slog.Int("refreshed_cells", event.Sync.RefreshedCells),
		)
	case event.Bindings != nil:
		attrs = append(attrs,
			slog.String("profile", event.Bindings.ProfilePath),
			slog.Int("binding_count", event.Bindings.BindingCount),
			slog.Bool("known_profile", event.Bindings.Known),
		)
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "intercept", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
