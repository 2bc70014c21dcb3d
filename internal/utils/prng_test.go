package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPRNGServiceIsSeeded(t *testing.T) {
	a, b := NewPRNGService(42), NewPRNGService(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestChooseWeighted(t *testing.T) {
	rng := NewPRNGService(7)
	assert.Equal(t, -1, rng.ChooseWeighted(nil))
	assert.Equal(t, 0, rng.ChooseWeighted([]int{0, 0}))

	for i := 0; i < 50; i++ {
		assert.Equal(t, 2, rng.ChooseWeighted([]int{0, -3, 5}))
	}

	counts := make([]int, 2)
	for i := 0; i < 1000; i++ {
		counts[rng.ChooseWeighted([]int{1, 3})]++
	}
	assert.Greater(t, counts[1], counts[0])
}
