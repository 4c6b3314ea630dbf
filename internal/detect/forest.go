package detect

import (
	"math"
	"math/rand"
)

// #region forest-config

// ForestConfig controls training of the partition-forest anomaly model.
type ForestConfig struct {
	Trees      int   `yaml:"trees"`
	SampleSize int   `yaml:"sample_size"`
	Seed       int64 `yaml:"seed"`
}

// DefaultForestConfig returns the shipped 100-tree ensemble tuning.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:      100,
		SampleSize: 64,
		Seed:       42,
	}
}

// #endregion forest-config

// #region forest

// Forest is an ensemble of random partition trees scoring isolation depth.
// Points that separate from the population in few random splits score near
// 1; typical points score near 0.5 or below. A fitted forest is immutable;
// refits produce a new Forest and swap it in whole.
type Forest struct {
	trees      []*forestNode
	sampleSize int
}

type forestNode struct {
	splitDim   int
	splitValue float64
	left       *forestNode
	right      *forestNode
	size       int // leaf population, 0 for internal nodes
}

// TrainForest fits the ensemble on the recent population of snapshot
// vectors. Returns nil when the corpus is too small to partition, which
// callers treat as "model unavailable", not as an error.
func TrainForest(data [][]float64, config ForestConfig) *Forest {
	if len(data) < 2 {
		return nil
	}
	sample := config.SampleSize
	if sample > len(data) {
		sample = len(data)
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sample)))) + 1

	rng := rand.New(rand.NewSource(config.Seed))
	trees := make([]*forestNode, config.Trees)
	for i := range trees {
		subset := make([][]float64, sample)
		for j := range subset {
			subset[j] = data[rng.Intn(len(data))]
		}
		trees[i] = buildTree(subset, 0, maxDepth, rng)
	}
	return &Forest{trees: trees, sampleSize: sample}
}

func buildTree(points [][]float64, depth, maxDepth int, rng *rand.Rand) *forestNode {
	if len(points) <= 1 || depth >= maxDepth {
		return &forestNode{size: len(points)}
	}

	dims := len(points[0])
	// Pick a dimension with spread; give up after a few draws on
	// constant data.
	var dim int
	var lo, hi float64
	found := false
	for try := 0; try < dims; try++ {
		dim = rng.Intn(dims)
		lo, hi = points[0][dim], points[0][dim]
		for _, p := range points {
			if p[dim] < lo {
				lo = p[dim]
			}
			if p[dim] > hi {
				hi = p[dim]
			}
		}
		if hi > lo {
			found = true
			break
		}
	}
	if !found {
		return &forestNode{size: len(points)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right [][]float64
	for _, p := range points {
		if p[dim] < split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &forestNode{size: len(points)}
	}

	return &forestNode{
		splitDim:   dim,
		splitValue: split,
		left:       buildTree(left, depth+1, maxDepth, rng),
		right:      buildTree(right, depth+1, maxDepth, rng),
	}
}

// #endregion forest

// #region score

// Score returns the anomaly score for a vector in [0,1].
func (f *Forest) Score(vec []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var total float64
	for _, tree := range f.trees {
		total += pathLength(tree, vec, 0)
	}
	avgPath := total / float64(len(f.trees))

	// Standard isolation scoring: 2^(-E[h]/c(n)).
	c := avgUnsuccessfulSearch(f.sampleSize)
	if c == 0 {
		return 0
	}
	return math.Pow(2, -avgPath/c)
}

func pathLength(node *forestNode, vec []float64, depth int) float64 {
	if node.left == nil { // leaf
		if node.size > 1 {
			return float64(depth) + avgUnsuccessfulSearch(node.size)
		}
		return float64(depth)
	}
	if vec[node.splitDim] < node.splitValue {
		return pathLength(node.left, vec, depth+1)
	}
	return pathLength(node.right, vec, depth+1)
}

// avgUnsuccessfulSearch is c(n), the average BST unsuccessful search depth.
func avgUnsuccessfulSearch(n int) float64 {
	if n <= 1 {
		return 0
	}
	fn := float64(n)
	harmonic := math.Log(fn-1) + 0.5772156649
	return 2*harmonic - 2*(fn-1)/fn
}

// #endregion score
