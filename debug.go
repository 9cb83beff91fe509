package placard

import (
	"fmt"

	"go.uber.org/zap"
)

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers only invoke it in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("placard debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxLayerSize is the placard count above which debug mode warns.
const debugMaxLayerSize = 1000

// debugCheckLayer logs a warning when a layer holds an unusually large
// number of placards.
func debugCheckLayer(logger *zap.Logger, layer *Node) {
	if len(layer.children) > debugMaxLayerSize {
		logger.Warn("layer exceeds placard threshold",
			zap.String("layer", layer.Name),
			zap.Int("children", len(layer.children)),
			zap.Int("threshold", debugMaxLayerSize))
	}
}
