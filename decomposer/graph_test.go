package decomposer_test

import (
	"testing"

	"github.com/kegliz/qivm/decomposer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(op any) []any { return []any{op} }

func TestMaterialIsAlwaysAvailable(t *testing.T) {
	g := decomposer.New()
	g.AddItem("H", true)
	assert.True(t, g.IsAvailable("H"))
	assert.False(t, g.IsDecomposable("H"))
}

func TestUnresolvableItemIsUnavailable(t *testing.T) {
	g := decomposer.New()
	g.AddItem("T", false)
	assert.False(t, g.IsAvailable("T"))
}

func TestCycleDoesNotDiverge(t *testing.T) {
	g := decomposer.New()
	g.AddItem("A", false)
	g.AddItem("B", false)
	// A -> B and B -> A form a cycle with no material leaf: neither resolves.
	g.AddRecipe("A", []string{"B"}, 1, noop)
	g.AddRecipe("B", []string{"A"}, 1, noop)

	assert.False(t, g.IsAvailable("A"))
	assert.False(t, g.IsAvailable("B"))
}

func TestCycleWithAlternativeEscapeResolves(t *testing.T) {
	g := decomposer.New()
	g.AddItem("A", false)
	g.AddItem("B", false)
	g.AddItem("X", true)
	// A -> B (cyclic) and A -> X (material): the second recipe must still
	// resolve even though the first recipe's path revisits a cycle.
	g.AddRecipe("A", []string{"B"}, 1, noop)
	g.AddRecipe("B", []string{"A"}, 1, noop)
	g.AddRecipe("A", []string{"X"}, 5, noop)

	assert.True(t, g.IsAvailable("A"))
}

func TestLowestCostRecipeIsChosen(t *testing.T) {
	g := decomposer.New()
	g.AddItem("T", false)
	g.AddItem("MAT1", true)
	g.AddItem("MAT2", true)

	cheapCalled := false
	expensiveCalled := false
	g.AddRecipe("T", []string{"MAT1"}, 5, func(op any) []any {
		expensiveCalled = true
		return []any{op}
	})
	g.AddRecipe("T", []string{"MAT2"}, 1, func(op any) []any {
		cheapCalled = true
		return []any{op}
	})

	require.True(t, g.IsAvailable("T"))
	_, err := g.Execute("T", "op")
	require.NoError(t, err)
	assert.True(t, cheapCalled)
	assert.False(t, expensiveCalled)
}

func TestExecuteUndecomposableReturnsError(t *testing.T) {
	g := decomposer.New()
	g.AddItem("T", false)
	_, err := g.Execute("T", "op")
	assert.Error(t, err)
}
