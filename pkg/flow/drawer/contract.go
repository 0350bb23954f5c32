package drawer

import (
	"time"

	"github.com/askiada/go-flow/pkg/flow/model"
)

// Drawer renders the chain of nodes of a flow.
type Drawer interface {
	// AddNode records a node's current position in the chain.
	AddNode(info *model.NodeInfo) error
	// SetTrainTime records how long a node's training took.
	SetTrainTime(index int, elapsed time.Duration) error
	// Draw creates a file with the flow graph.
	Draw() error
}
