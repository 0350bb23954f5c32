package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-flow/pkg/flow/model"
)

type flowDrawer struct {
	Drawer
}

func (fd *flowDrawer) New() error {
	return nil
}

func (fd *flowDrawer) PrepareNode(info *model.NodeInfo) error {
	err := fd.AddNode(info)
	if err != nil {
		return errors.Wrap(err, "unable to add node to drawer")
	}

	return nil
}

func (fd *flowDrawer) OnTrainStart(info *model.NodeInfo) error {
	return nil
}

func (fd *flowDrawer) OnPhaseClosed(info *model.NodeInfo, phase int, elapsed time.Duration) error {
	return nil
}

func (fd *flowDrawer) OnNodeTrained(info *model.NodeInfo, samples int64, elapsed time.Duration) error {
	err := fd.SetTrainTime(info.Index, elapsed)
	if err != nil {
		return errors.Wrap(err, "unable to set node train time")
	}

	return nil
}

func (fd *flowDrawer) Finish() error {
	err := fd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw flow")
	}

	return nil
}

// FlowDrawer wraps a Drawer into a flow observer. The graph is rendered once
// training finishes.
func FlowDrawer(drw Drawer) model.FlowOption {
	return &flowDrawer{drw}
}
