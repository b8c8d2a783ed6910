// Package classifier loads and evaluates the trained project outcome model.
//
// The model is a random forest exported by the offline training job as plain
// JSON. Each tree is a flat node array in the layout scikit-learn uses
// internally: a node with left == -1 is a leaf, otherwise samples with
// x[feature] <= threshold follow left. A leaf's value holds per-class sample
// weights; the forest probability is the mean of the normalized leaf values.
package classifier

import (
	"errors"
	"fmt"
)

// ErrFeatureCount is returned when a vector does not match the model width.
var ErrFeatureCount = errors.New("feature vector has wrong length")

// Node is one split or leaf of a decision tree.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// IsLeaf reports whether the node terminates traversal.
func (n Node) IsLeaf() bool {
	return n.Left == -1
}

// Tree is a flat decision tree rooted at node 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is the serialized random forest.
type Forest struct {
	NFeatures int    `json:"n_features"`
	Classes   []int  `json:"classes"`
	Trees     []Tree `json:"trees"`
}

// Check verifies the structural invariants traversal depends on: children
// point forward, split features are in range and every leaf has one weight
// per class.
func (f *Forest) Check() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("n_features must be positive")
	}
	if len(f.Classes) < 2 {
		return fmt.Errorf("need at least two classes, got %d", len(f.Classes))
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d: no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.IsLeaf() {
				if len(node.Value) != len(f.Classes) {
					return fmt.Errorf("tree %d node %d: leaf has %d weights for %d classes", ti, ni, len(node.Value), len(f.Classes))
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= f.NFeatures {
				return fmt.Errorf("tree %d node %d: feature %d out of range", ti, ni, node.Feature)
			}
			if node.Left <= ni || node.Left >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: left child %d invalid", ti, ni, node.Left)
			}
			if node.Right <= ni || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: right child %d invalid", ti, ni, node.Right)
			}
		}
	}
	return nil
}

// PredictProba returns one probability per entry of Classes.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), f.NFeatures)
	}
	proba := make([]float64, len(f.Classes))
	for i := range f.Trees {
		leaf := f.Trees[i].leaf(x)
		var total float64
		for _, w := range leaf.Value {
			total += w
		}
		for c := range proba {
			if total > 0 {
				proba[c] += leaf.Value[c] / total
			} else {
				proba[c] += 1 / float64(len(proba))
			}
		}
	}
	n := float64(len(f.Trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

// Predict returns the class label with the highest probability. Ties go to
// the class listed first.
func (f *Forest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.Classes[best], nil
}

// ClassIndex returns the position of label in Classes.
func (f *Forest) ClassIndex(label int) (int, bool) {
	for i, c := range f.Classes {
		if c == label {
			return i, true
		}
	}
	return 0, false
}

func (t Tree) leaf(x []float64) Node {
	i := 0
	for {
		node := t.Nodes[i]
		if node.IsLeaf() {
			return node
		}
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}
