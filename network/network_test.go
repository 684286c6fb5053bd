package network

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"tetris/game"
)

func TestNodeEvalUnmarshalJSON(t *testing.T) {
	t.Run("parses the tuple form", func(t *testing.T) {
		var ev NodeEval
		err := json.Unmarshal([]byte(`[0, 1.5, -0.25, [[1, 0.5], [2, -1]]]`), &ev)

		require.NoError(t, err)
		require.Equal(t, int64(0), ev.Node)
		require.Equal(t, 1.5, ev.Bias)
		require.Equal(t, -0.25, ev.Response)
		require.Equal(t, []Link{{Node: 1, Weight: 0.5}, {Node: 2, Weight: -1}}, ev.Links)
	})

	t.Run("parses empty links", func(t *testing.T) {
		var ev NodeEval
		err := json.Unmarshal([]byte(`[7, 0, 1, []]`), &ev)

		require.NoError(t, err)
		require.Equal(t, int64(7), ev.Node)
		require.Empty(t, ev.Links)
	})

	t.Run("rejects wrong arity", func(t *testing.T) {
		var ev NodeEval
		err := json.Unmarshal([]byte(`[0, 1.5, -0.25]`), &ev)
		require.ErrorContains(t, err, "want 4")
	})

	t.Run("rejects malformed links", func(t *testing.T) {
		var ev NodeEval
		err := json.Unmarshal([]byte(`[0, 1.5, -0.25, [[1]]]`), &ev)
		require.ErrorContains(t, err, "links")
	})
}

func TestNew(t *testing.T) {
	t.Run("requires input nodes", func(t *testing.T) {
		_, err := New(nil, []int64{0}, nil)
		require.ErrorContains(t, err, "input")
	})

	t.Run("requires output nodes", func(t *testing.T) {
		_, err := New([]int64{1}, nil, nil)
		require.ErrorContains(t, err, "output")
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("single node forward pass", func(t *testing.T) {
		// Output node 0 reads the holes input through one link:
		// sigmoid(bias + response * (holes * weight)).
		net, err := New([]int64{1}, []int64{0}, []NodeEval{
			{Node: 0, Bias: 1, Response: 2, Links: []Link{{Node: 1, Weight: 0.5}}},
		})
		require.NoError(t, err)

		got := net.Evaluate(game.Features{Holes: 3})

		want := 1 / (1 + math.Exp(-4.0))
		require.InDelta(t, want, got, 1e-12)
	})

	t.Run("chained nodes use upstream values", func(t *testing.T) {
		// Hidden node 2 feeds output node 0.
		net, err := New([]int64{1}, []int64{0}, []NodeEval{
			{Node: 2, Bias: 0, Response: 1, Links: []Link{{Node: 1, Weight: 1}}},
			{Node: 0, Bias: 0, Response: 1, Links: []Link{{Node: 2, Weight: 2}}},
		})
		require.NoError(t, err)

		got := net.Evaluate(game.Features{Holes: 1})

		hidden := 1 / (1 + math.Exp(-1.0))
		want := 1 / (1 + math.Exp(-2*hidden))
		require.InDelta(t, want, got, 1e-12)
	})

	t.Run("inputs follow the feature vector order", func(t *testing.T) {
		features := game.Features{Holes: 1, Bumpiness: 2, AggregateHeight: 3, CompletedLines: 4}
		// Pass each input straight through a near-linear readout and check it
		// moves with the matching feature.
		for i, want := range features.Vector() {
			inputs := []int64{10, 11, 12, 13}
			net, err := New(inputs, []int64{0}, []NodeEval{
				{Node: 0, Bias: 0, Response: 1, Links: []Link{{Node: inputs[i], Weight: 1}}},
			})
			require.NoError(t, err)

			got := net.Evaluate(features)
			require.InDelta(t, 1/(1+math.Exp(-want)), got, 1e-12, "input %d", i)
		}
	})
}
