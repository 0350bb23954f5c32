package flow_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-flow/pkg/flow"
	"github.com/askiada/go-flow/pkg/flow/model"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(40))
	f, err := flow.New([]model.Node{
		newStatsNode(t, 10, 8),
		newScaleNode(t, 2, 1, 8),
	})
	require.NoError(t, err)
	require.NoError(t, f.TrainMatrix(context.Background(), randomMatrix(t, rnd, 50, 10)))
	f.Meta().Set("run", "first")

	data, err := f.Snapshot()
	require.NoError(t, err)

	restored, err := flow.Restore(data)
	require.NoError(t, err)
	require.Equal(t, f.Len(), restored.Len())

	got, ok := restored.Meta().Get("run")
	require.True(t, ok)
	assert.Equal(t, "first", got)

	x := randomMatrix(t, rnd, 10, 10)
	want, err := f.Execute(x)
	require.NoError(t, err)
	have, err := restored.Execute(x)
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestCopyBehavesIdentically(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(41))
	f, err := flow.New([]model.Node{
		newStatsNode(t, 6, 4),
		newScaleNode(t, 3, -1, 4),
	})
	require.NoError(t, err)
	require.NoError(t, f.TrainMatrix(context.Background(), randomMatrix(t, rnd, 40, 6)))

	cpy, err := f.Copy()
	require.NoError(t, err)

	x := randomMatrix(t, rnd, 25, 6)
	want, err := f.Execute(x)
	require.NoError(t, err)
	have, err := cpy.Execute(x)
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestCopySharesNoMutableState(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))
	f, err := flow.New([]model.Node{
		newStatsNode(t, 4, 4),
	})
	require.NoError(t, err)
	require.NoError(t, f.TrainMatrix(context.Background(), randomMatrix(t, rnd, 30, 4)))

	cpy, err := f.Copy()
	require.NoError(t, err)

	node, err := cpy.Node(0)
	require.NoError(t, err)
	stats, ok := node.(*statsNode)
	require.True(t, ok)
	before, err := f.Node(0)
	require.NoError(t, err)
	wantMean := before.(*statsNode).Mean[0]

	// Mutating the copy's node never affects the original.
	stats.Mean[0] = 1234
	assert.Equal(t, wantMean, before.(*statsNode).Mean[0])

	// And the metadata stores are independent.
	cpy.Meta().Set("k", "v")
	_, ok = f.Meta().Get("k")
	assert.False(t, ok)
}

func TestSnapshotUntrainedFlow(t *testing.T) {
	t.Parallel()

	f, err := flow.New([]model.Node{newStatsNode(t, 4, 4)})
	require.NoError(t, err)

	data, err := f.Snapshot()
	require.NoError(t, err)
	restored, err := flow.Restore(data)
	require.NoError(t, err)

	node, err := restored.Node(0)
	require.NoError(t, err)
	assert.True(t, node.IsTraining())
}
