package transform

import (
	"fmt"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// DAG is a directed acyclic graph of transformation dependencies. An edge
// "A depends on B" means B must execute before A. The topological order is
// cached until the graph is mutated again.
type DAG struct {
	nodes        map[string]models.Transformation
	order        []string // Node ids in insertion order, for deterministic sorting
	dependencies map[string]map[string]struct{}
	cachedSort   []string
}

// NewDAG creates an empty dependency graph
func NewDAG() *DAG {
	return &DAG{
		nodes:        map[string]models.Transformation{},
		dependencies: map[string]map[string]struct{}{},
	}
}

// AddTransformation adds a node to the graph. Re-adding an id replaces the
// node but keeps its dependencies.
func (d *DAG) AddTransformation(t models.Transformation) {
	if _, exists := d.nodes[t.ID]; !exists {
		d.order = append(d.order, t.ID)
		d.dependencies[t.ID] = map[string]struct{}{}
	}
	d.nodes[t.ID] = t
	d.cachedSort = nil
}

// AddDependency records that transformation id depends on dependsOn.
// Both nodes must already be in the graph.
func (d *DAG) AddDependency(id, dependsOn string) error {
	if _, ok := d.nodes[id]; !ok {
		return fmt.Errorf("transformation %s not found in DAG", id)
	}
	if _, ok := d.nodes[dependsOn]; !ok {
		return fmt.Errorf("transformation %s not found in DAG", dependsOn)
	}
	d.dependencies[id][dependsOn] = struct{}{}
	d.cachedSort = nil
	return nil
}

// TopologicalSort returns the transformations in execution order using
// Kahn's algorithm. Nodes become ready in insertion order, which makes the
// result deterministic. Fails when the graph contains a cycle.
func (d *DAG) TopologicalSort() ([]models.Transformation, error) {
	if d.cachedSort == nil {
		sorted, err := d.kahnSort()
		if err != nil {
			return nil, err
		}
		d.cachedSort = sorted
	}

	out := make([]models.Transformation, len(d.cachedSort))
	for i, id := range d.cachedSort {
		out[i] = d.nodes[id]
	}
	return out, nil
}

func (d *DAG) kahnSort() ([]string, error) {
	inDegree := make(map[string]int, len(d.nodes))
	for id := range d.nodes {
		inDegree[id] = len(d.dependencies[id])
	}

	// Seed the queue with zero in-degree nodes in insertion order
	queue := []string{}
	for _, id := range d.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(d.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		// Release dependents of the consumed node, scanning in insertion
		// order so ties break deterministically
		for _, id := range d.order {
			if _, depends := d.dependencies[id][current]; depends {
				inDegree[id]--
				if inDegree[id] == 0 {
					queue = append(queue, id)
				}
			}
		}
	}

	if len(sorted) != len(d.nodes) {
		return nil, fmt.Errorf("circular dependency detected in transformation DAG")
	}

	return sorted, nil
}

// Dependencies returns the ids the given transformation depends on
func (d *DAG) Dependencies(id string) []string {
	deps := d.dependencies[id]
	out := make([]string, 0, len(deps))
	for _, candidate := range d.order {
		if _, ok := deps[candidate]; ok {
			out = append(out, candidate)
		}
	}
	return out
}

// Dependents returns the ids that depend on the given transformation
func (d *DAG) Dependents(id string) []string {
	var out []string
	for _, candidate := range d.order {
		if _, ok := d.dependencies[candidate][id]; ok {
			out = append(out, candidate)
		}
	}
	return out
}

// Validate reports whether the graph is acyclic
func (d *DAG) Validate() bool {
	_, err := d.TopologicalSort()
	return err == nil
}

// Len returns the number of transformations in the graph
func (d *DAG) Len() int {
	return len(d.nodes)
}

// Contains checks whether a transformation id is in the graph
func (d *DAG) Contains(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// DAGBuilder assembles a DAG fluently
type DAGBuilder struct {
	dag *DAG
}

// NewDAGBuilder creates a builder around a fresh DAG
func NewDAGBuilder() *DAGBuilder {
	return &DAGBuilder{dag: NewDAG()}
}

// AddTransformation adds a single transformation
func (b *DAGBuilder) AddTransformation(t models.Transformation) *DAGBuilder {
	b.dag.AddTransformation(t)
	return b
}

// AddTransformations adds multiple transformations in order
func (b *DAGBuilder) AddTransformations(ts []models.Transformation) *DAGBuilder {
	for _, t := range ts {
		b.dag.AddTransformation(t)
	}
	return b
}

// WithDependencies records explicit dependency edges
func (b *DAGBuilder) WithDependencies(deps map[string][]string) (*DAGBuilder, error) {
	for id, dependsOn := range deps {
		for _, dep := range dependsOn {
			if err := b.dag.AddDependency(id, dep); err != nil {
				return b, err
			}
		}
	}
	return b, nil
}

// AutoBuildDependencies derives edges from column usage: each target column
// is owned by the most recently added transformation touching it, and a later
// transformation targeting the same column depends on the earlier one.
// Transformations missing from the graph are added first so derived edges
// are never dropped.
func (b *DAGBuilder) AutoBuildDependencies(ts []models.Transformation) *DAGBuilder {
	columnOwner := map[string]string{}

	for _, t := range ts {
		if !b.dag.Contains(t.ID) {
			b.dag.AddTransformation(t)
		}
		for _, col := range t.TargetColumns {
			if owner, ok := columnOwner[col]; ok {
				// Every node in ts is in the graph by now, the edge
				// cannot be rejected
				_ = b.dag.AddDependency(t.ID, owner)
			}
			columnOwner[col] = t.ID
		}
	}

	return b
}

// Build returns the assembled DAG
func (b *DAGBuilder) Build() *DAG {
	return b.dag
}
