package drawer_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-flow/pkg/flow/drawer"
	"github.com/askiada/go-flow/pkg/flow/model"
)

func TestSVGDrawerDraw(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flow.svg")
	drw := drawer.NewSVGDrawer(path)

	require.NoError(t, drw.AddNode(&model.NodeInfo{Index: 0, Name: "statsNode", InputDim: 10, OutputDim: 8, Trainable: true}))
	require.NoError(t, drw.AddNode(&model.NodeInfo{Index: 1, Name: "scaleNode", InputDim: 8, OutputDim: 8}))
	require.NoError(t, drw.SetTrainTime(0, 2*time.Second))
	require.NoError(t, drw.SetTrainTime(1, time.Second))

	require.NoError(t, drw.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "digraph")
	assert.Contains(t, content, "#0 statsNode")
	assert.Contains(t, content, "#1 scaleNode")
	assert.Contains(t, content, "start")
	assert.Contains(t, content, "end")
}

func TestSVGDrawerUnknownIndex(t *testing.T) {
	t.Parallel()

	drw := drawer.NewSVGDrawer(filepath.Join(t.TempDir(), "flow.svg"))
	err := drw.SetTrainTime(3, time.Second)
	assert.Error(t, err)
}

func TestSVGDrawerNilInfo(t *testing.T) {
	t.Parallel()

	drw := drawer.NewSVGDrawer(filepath.Join(t.TempDir(), "flow.svg"))
	assert.Error(t, drw.AddNode(nil))
}

func TestSVGDrawerReAddOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flow.svg")
	drw := drawer.NewSVGDrawer(path)

	require.NoError(t, drw.AddNode(&model.NodeInfo{Index: 0, Name: "statsNode", InputDim: 10, OutputDim: 8}))
	require.NoError(t, drw.AddNode(&model.NodeInfo{Index: 0, Name: "scaleNode", InputDim: 10, OutputDim: 10}))

	require.NoError(t, drw.Draw())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#0 scaleNode")
	assert.NotContains(t, string(data), "#0 statsNode")
}

func TestFlowDrawerObserver(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flow.svg")
	obs := drawer.FlowDrawer(drawer.NewSVGDrawer(path))

	require.NoError(t, obs.New())
	info := &model.NodeInfo{Index: 0, Name: "statsNode", InputDim: 4, OutputDim: 4}
	require.NoError(t, obs.PrepareNode(info))
	require.NoError(t, obs.OnTrainStart(info))
	require.NoError(t, obs.OnPhaseClosed(info, 0, time.Second))
	require.NoError(t, obs.OnNodeTrained(info, 10, time.Second))
	require.NoError(t, obs.Finish())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
