package detect

import "testing"

func clusteredData(n int) [][]float64 {
	data := make([][]float64, n)
	for i := range data {
		// Tight cluster around (8, 2, 7.5) with a deterministic wobble.
		w := float64(i%5) * 0.05
		data[i] = []float64{8.0 + w, 2.0 - w, 7.5 + w}
	}
	return data
}

func TestForestScoreInUnitRange(t *testing.T) {
	f := TrainForest(clusteredData(100), DefaultForestConfig())
	if f == nil {
		t.Fatal("forest should train on 100 points")
	}

	probes := [][]float64{
		{8.0, 2.0, 7.5},
		{0.0, 0.0, 0.0},
		{100.0, -50.0, 30.0},
	}
	for _, p := range probes {
		s := f.Score(p)
		if s < 0 || s > 1 {
			t.Errorf("score %.4f out of [0,1] for %v", s, p)
		}
	}
}

func TestForestRanksOutlierAboveInlier(t *testing.T) {
	f := TrainForest(clusteredData(200), DefaultForestConfig())
	if f == nil {
		t.Fatal("forest should train")
	}

	inlier := f.Score([]float64{8.05, 1.95, 7.55})
	outlier := f.Score([]float64{16.0, 9.0, 2.0})

	if outlier <= inlier {
		t.Errorf("outlier %.4f not above inlier %.4f", outlier, inlier)
	}
}

func TestForestTooSmallCorpus(t *testing.T) {
	if f := TrainForest(nil, DefaultForestConfig()); f != nil {
		t.Error("empty corpus should yield nil forest")
	}
	if f := TrainForest([][]float64{{1, 2}}, DefaultForestConfig()); f != nil {
		t.Error("single point should yield nil forest")
	}
}

func TestForestDeterministicForSeed(t *testing.T) {
	data := clusteredData(100)
	a := TrainForest(data, DefaultForestConfig())
	b := TrainForest(data, DefaultForestConfig())

	probe := []float64{9.0, 1.0, 6.0}
	if a.Score(probe) != b.Score(probe) {
		t.Error("same seed should produce identical forests")
	}
}
