// Package mlkit implements the statistical models the pipeline invokes as
// black boxes: a seeded isolation forest, an RBF one-class scorer, a robust
// scaler, and damped Holt-Winters smoothing. Every model fits and scores
// the same matrix in one call and keeps no state across calls.
package mlkit

import (
	"math"
	"math/rand"
	"sort"
)

// IsolationForestParams configures one fit-and-score invocation.
type IsolationForestParams struct {
	Trees         int
	SampleSize    int
	Contamination float64
	Seed          int64
}

// IsolationForestResult carries a decision score and outlier label per row.
// Scores follow the usual convention: negative means outlier, and roughly
// the contamination fraction of rows falls below zero.
type IsolationForestResult struct {
	Scores   []float64
	Outliers []bool
}

type iNode struct {
	feature     int
	split       float64
	left, right *iNode
	size        int
}

// FitScoreIsolationForest builds a seeded isolation forest on the matrix
// and scores every row of the same matrix.
func FitScoreIsolationForest(matrix [][]float64, p IsolationForestParams) IsolationForestResult {
	n := len(matrix)
	if n == 0 {
		return IsolationForestResult{}
	}

	trees := p.Trees
	if trees <= 0 {
		trees = 100
	}
	psi := p.SampleSize
	if psi <= 0 || psi > n {
		psi = n
	}
	if psi > 256 {
		psi = 256
	}
	contamination := p.Contamination
	if contamination <= 0 || contamination > 0.5 {
		contamination = 0.05
	}

	rng := rand.New(rand.NewSource(p.Seed))
	maxDepth := int(math.Ceil(math.Log2(float64(psi)))) + 1

	pathSums := make([]float64, n)
	for t := 0; t < trees; t++ {
		sample := make([][]float64, psi)
		for i, idx := range rng.Perm(n)[:psi] {
			sample[i] = matrix[idx]
		}
		root := buildITree(sample, 0, maxDepth, rng)
		for i, row := range matrix {
			pathSums[i] += pathLength(root, row, 0)
		}
	}

	norm := avgPathLength(psi)
	raw := make([]float64, n)
	for i := range raw {
		avg := pathSums[i] / float64(trees)
		// Anomaly score in (0, 1]; negated so higher means more normal.
		raw[i] = -math.Pow(2, -avg/norm)
	}

	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)
	offset := interpQuantile(contamination, sorted)

	res := IsolationForestResult{
		Scores:   make([]float64, n),
		Outliers: make([]bool, n),
	}
	for i, v := range raw {
		res.Scores[i] = v - offset
		res.Outliers[i] = res.Scores[i] < 0
	}
	return res
}

func buildITree(rows [][]float64, depth, maxDepth int, rng *rand.Rand) *iNode {
	if len(rows) <= 1 || depth >= maxDepth {
		return &iNode{size: len(rows)}
	}

	nFeatures := len(rows[0])
	// Pick a random splittable feature; a feature is splittable when its
	// values are not all identical within this node.
	for _, f := range rng.Perm(nFeatures) {
		lo, hi := rows[0][f], rows[0][f]
		for _, r := range rows[1:] {
			if r[f] < lo {
				lo = r[f]
			}
			if r[f] > hi {
				hi = r[f]
			}
		}
		if hi <= lo {
			continue
		}

		split := lo + rng.Float64()*(hi-lo)
		var left, right [][]float64
		for _, r := range rows {
			if r[f] < split {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
		return &iNode{
			feature: f,
			split:   split,
			left:    buildITree(left, depth+1, maxDepth, rng),
			right:   buildITree(right, depth+1, maxDepth, rng),
		}
	}

	return &iNode{size: len(rows)}
}

func pathLength(node *iNode, row []float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if row[node.feature] < node.split {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// avgPathLength is the expected path length of an unsuccessful BST search
// over n points, the standard isolation-forest normalizer.
func avgPathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		h := math.Log(fn-1) + 0.5772156649015329
		return 2*h - 2*(fn-1)/fn
	}
}
