// Package decomposer implements the gate-decomposition planner: a
// bipartite graph of items (gate identifiers) and recipes (materials +
// cost + lowering callable), with a cheapest-feasible-plan search that
// detects cycles without poisoning an item permanently until every
// recipe has been tried.
//
// Ported from the original runtime's decompose/decomposer/graph module
// (Item.search_recipe, the in-progress flag, the cached FeasibleRecipe).
// The reference keeps each item behind its own mutex for a concurrent
// caller; this pipeline is single-threaded per program context (the
// concurrency model reserves one process-wide mutex for the whole
// planner instance instead), so the Go port keeps a single mutex on the
// Graph rather than one per item — the same simplification the teacher
// applies when it guards its whole runner registry with one
// sync.RWMutex instead of per-entry locking.
package decomposer

import (
	"fmt"
	"sort"
	"sync"
)

// Lowering takes a concrete operation (opaque to the planner — it only
// ever forwards it) and returns its multi-step expansion.
type Lowering func(op any) []any

// Recipe is a directed rewrite from an item to a non-empty set of
// materials, carrying an integer cost and the lowering that performs it.
type Recipe struct {
	Materials []string
	Cost      int
	Lower     Lowering

	seq int // insertion order, for cost-tie-breaking
}

type plan struct {
	recipeIdx int
	cost      int
}

type item struct {
	material    bool
	recipes     []Recipe
	inProgress  bool
	infeasible  bool
	cached      *plan
}

// Graph is the planner: add_item/add_recipe build it up, is_decomposable/
// is_available/execute query it.
type Graph struct {
	mu    sync.Mutex
	items map[string]*item
	seq   int
}

// New returns an empty planner graph.
func New() *Graph {
	return &Graph{items: make(map[string]*item)}
}

// AddItem registers a gate identifier, flagged material iff the backend
// can execute it directly. Re-adding an existing id replaces it with a
// fresh item, dropping its recipes and any cached plan — callers
// should add each item exactly once per graph lifetime.
func (g *Graph) AddItem(id string, material bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items[id] = &item{material: material}
}

// AddRecipe registers a decomposition edge from target to materials,
// with an integer cost and its lowering callable. target must already
// exist via AddItem.
func (g *Graph) AddRecipe(target string, materials []string, cost int, lower Lowering) {
	g.mu.Lock()
	defer g.mu.Unlock()
	it, ok := g.items[target]
	if !ok {
		it = &item{}
		g.items[target] = it
	}
	g.seq++
	it.recipes = append(it.recipes, Recipe{Materials: materials, Cost: cost, Lower: lower, seq: g.seq})
}

// IsDecomposable reports whether id is a non-material item with at
// least one registered recipe (it may yet turn out infeasible).
func (g *Graph) IsDecomposable(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	it, ok := g.items[id]
	if !ok {
		return false
	}
	return !it.material && len(it.recipes) > 0
}

// IsAvailable reports whether id resolves to a feasible plan: either it
// is itself material, or search finds a recipe tree whose leaves are.
func (g *Graph) IsAvailable(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.searchPlan(id, map[string]bool{})
	return ok
}

// searchPlan implements the five-step algorithm from the spec, called
// with g.mu already held. inProgressPath tracks the current expansion
// attempt's ancestry for cycle detection (a map, not the item's own
// inProgress flag, so a cycle only poisons the *branch* it occurs in).
func (g *Graph) searchPlan(id string, inProgressPath map[string]bool) (plan, bool) {
	it, ok := g.items[id]
	if !ok {
		return plan{}, false
	}
	if it.material {
		return plan{cost: 0, recipeIdx: -1}, true
	}
	if it.cached != nil {
		return *it.cached, true
	}
	if it.infeasible {
		return plan{}, false
	}
	if inProgressPath[id] {
		// Current path revisits a cycle: this branch is infeasible, but
		// the item itself is not poisoned — a sibling recipe not going
		// through this cycle may still resolve it.
		return plan{}, false
	}

	inProgressPath[id] = true
	it.inProgress = true
	defer func() { it.inProgress = false; delete(inProgressPath, id) }()

	candidates := make([]Recipe, len(it.recipes))
	copy(candidates, it.recipes)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Cost != candidates[j].Cost {
			return candidates[i].Cost < candidates[j].Cost
		}
		return candidates[i].seq < candidates[j].seq
	})

	for ci, recipe := range candidates {
		total := recipe.Cost
		feasible := true
		for _, mat := range recipe.Materials {
			sub, ok := g.searchPlan(mat, inProgressPath)
			if !ok {
				feasible = false
				break
			}
			total += sub.cost
		}
		if !feasible {
			continue
		}
		// Recover the original index (by seq) within it.recipes for Execute.
		origIdx := indexBySeq(it.recipes, candidates[ci].seq)
		p := plan{recipeIdx: origIdx, cost: total}
		it.cached = &p
		return p, true
	}

	it.infeasible = true
	return plan{}, false
}

func indexBySeq(recipes []Recipe, seq int) int {
	for i, r := range recipes {
		if r.seq == seq {
			return i
		}
	}
	return -1
}

// Execute runs id's cached plan's lowering against op, returning its
// (possibly multi-step) expansion. Returns an error if id has no
// feasible plan (an undecomposable gate, per the planner-error taxonomy).
func (g *Graph) Execute(id string, op any) ([]any, error) {
	g.mu.Lock()
	p, ok := g.searchPlan(id, map[string]bool{})
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("decomposer: no feasible plan for %q", id)
	}
	if p.recipeIdx < 0 {
		// Material item: nothing to lower, op is already terminal.
		return []any{op}, nil
	}
	g.mu.Lock()
	recipe := g.items[id].recipes[p.recipeIdx]
	g.mu.Unlock()
	return recipe.Lower(op), nil
}
