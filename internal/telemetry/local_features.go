package telemetry

import (
	"context"

	"github.com/petasbytes/claude-wrapper/internal/metrics"
)

// FeaturesVersion tags the shape of local_features events.
const FeaturesVersion = "1"

// EmitLocalFeatures records size features of the user's input for the current turn.
func (e *Emitter) EmitLocalFeatures(ctx context.Context, user string) {
	if e == nil || !e.Enabled {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	e.Emit("local_features", map[string]any{
		"turn_id":          turnID,
		"features_version": FeaturesVersion,
		"user":             metrics.CountFeatures(user).Fields(),
	})
}
