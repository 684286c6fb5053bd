// Package network evaluates the feed-forward networks produced by the
// neuroevolution trainer. A network arrives over the wire as flat node
// descriptions; this package only implements the forward pass and exposes it
// as a game.Evaluate.
package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"tetris/game"
)

// Link is one weighted incoming connection of a node.
type Link struct {
	Node   int64
	Weight float64
}

// NodeEval describes how one node computes its value from already-computed
// nodes. The trainer serializes it as the tuple
// [node, bias, response, [[in, weight], ...]].
type NodeEval struct {
	Node     int64
	Bias     float64
	Response float64
	Links    []Link
}

func (n *NodeEval) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 4 {
		return fmt.Errorf("node eval has %d elements, want 4", len(parts))
	}
	if err := json.Unmarshal(parts[0], &n.Node); err != nil {
		return fmt.Errorf("node id: %w", err)
	}
	if err := json.Unmarshal(parts[1], &n.Bias); err != nil {
		return fmt.Errorf("bias: %w", err)
	}
	if err := json.Unmarshal(parts[2], &n.Response); err != nil {
		return fmt.Errorf("response: %w", err)
	}
	var links [][2]float64
	if err := json.Unmarshal(parts[3], &links); err != nil {
		return fmt.Errorf("links: %w", err)
	}
	n.Links = make([]Link, len(links))
	for i, l := range links {
		n.Links[i] = Link{Node: int64(l[0]), Weight: l[1]}
	}
	return nil
}

// Network is a loaded feed-forward network. Node evals are assumed to be in
// dependency order, which is how the trainer emits them.
type Network struct {
	inputs  []int64
	outputs []int64
	evals   []NodeEval
}

func New(inputs, outputs []int64, evals []NodeEval) (*Network, error) {
	if len(inputs) == 0 {
		return nil, errors.New("network has no input nodes")
	}
	if len(outputs) == 0 {
		return nil, errors.New("network has no output nodes")
	}
	return &Network{inputs: inputs, outputs: outputs, evals: evals}, nil
}

// Evaluate runs the forward pass over a feature vector and returns the first
// output node's value. It satisfies game.Evaluate.
func (n *Network) Evaluate(f game.Features) float64 {
	values := make(map[int64]float64, len(n.inputs)+len(n.evals))
	inputs := f.Vector()
	for i, id := range n.inputs {
		if i < len(inputs) {
			values[id] = inputs[i]
		}
	}

	for _, ev := range n.evals {
		sum := 0.0
		for _, link := range ev.Links {
			sum += values[link.Node] * link.Weight
		}
		values[ev.Node] = sigmoid(ev.Bias + ev.Response*sum)
	}

	return values[n.outputs[0]]
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
