package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	g := Summarize(nil)
	assert.Equal(t, Generated{}, g)
}

func TestSummarize_Basic(t *testing.T) {
	g := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 1.0, g.Minimum)
	assert.Equal(t, 4.0, g.Maximum)
	assert.Equal(t, 2.5, g.Mean)
	assert.Equal(t, 2.5, g.Median)
}

func TestSummarize_OddCount(t *testing.T) {
	g := Summarize([]float64{5, 1, 3})
	assert.Equal(t, 1.0, g.Minimum)
	assert.Equal(t, 5.0, g.Maximum)
	assert.Equal(t, 3.0, g.Median)
}

func TestAccumulator_RecordAndSummarize(t *testing.T) {
	acc := NewAccumulator()
	acc.Record(10)
	acc.Record(20)
	assert.Equal(t, 2, acc.Len())
	g := acc.Summarize()
	assert.Equal(t, 15.0, g.Mean)
}

func TestCombineGenerated(t *testing.T) {
	combined := CombineGenerated([]Generated{
		{Minimum: 1, Mean: 2, Median: 2, Maximum: 3},
		{Minimum: 3, Mean: 4, Median: 4, Maximum: 5},
	})
	assert.Equal(t, 2.0, combined.Minimum)
	assert.Equal(t, 3.0, combined.Mean)
	assert.Equal(t, 4.0, combined.Maximum)
}

func TestCombineTicks(t *testing.T) {
	g := CombineTicks([]int{10, 20, 30})
	assert.Equal(t, 20.0, g.Mean)
}
