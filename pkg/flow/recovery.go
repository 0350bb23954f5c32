package flow

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// crashRecovery is the per-flow crash dump setting. Disabled by default;
// when enabled with an empty path, the dump location is chosen by the engine.
type crashRecovery struct {
	enabled bool
	path    string
}

// SetCrashRecovery enables or disables crash recovery with an engine-chosen
// dump file.
//
// When a node raises an error during training, execution or inverse execution,
// the flow wraps it into a *NodeError. If crash recovery is armed, a full
// snapshot of the flow is written before the error returns and the dump
// location is recorded on the error. The original failure stays available as
// the error's cause.
func (f *Flow) SetCrashRecovery(enabled bool) {
	f.recovery = crashRecovery{enabled: enabled}
}

// SetCrashRecoveryFile enables crash recovery with a caller-chosen dump file.
func (f *Flow) SetCrashRecoveryFile(path string) {
	f.recovery = crashRecovery{enabled: true, path: path}
}

// escalate wraps a node failure into a *NodeError and, when crash recovery is
// armed, writes the crash dump. A failing dump write never masks the original
// failure: it is logged and the error returns with an empty dump path.
func (f *Flow) escalate(cause error, index int) error {
	nodeErr := &NodeError{
		Index:    index,
		NodeType: nodeName(f.nodes[index]),
		cause:    cause,
	}

	if f.recovery.enabled {
		path, err := f.writeDump()
		if err != nil {
			f.log.Warn().Err(err).Msg("unable to write crash dump")
		} else {
			nodeErr.DumpPath = path
		}
	}

	return nodeErr
}

func (f *Flow) writeDump() (string, error) {
	path := f.recovery.path
	if path == "" {
		path = filepath.Join(os.TempDir(), "flow-crash-"+uuid.NewString()+".dump")
	}

	data, err := f.Snapshot()
	if err != nil {
		return "", errors.Wrap(err, "unable to snapshot the flow")
	}

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "unable to create crash dump %s", path)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return "", errors.Wrapf(err, "unable to write crash dump %s", path)
	}

	return path, nil
}
