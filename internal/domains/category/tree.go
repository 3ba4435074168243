package category

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// =====================================================
// PARENT LOOKUP
// =====================================================

// ParentLookup is the read accessor the tree walks run against. The
// second return reports whether the category exists at all; a missing
// record mid-walk is a dangling parent, not an error.
type ParentLookup interface {
	ParentID(ctx context.Context, id uuid.UUID) (parentID *uuid.UUID, found bool, err error)
}

// =====================================================
// ANCESTOR WALKS
// =====================================================

// IsAncestor reports whether ancestorID appears on nodeID's parent
// chain. The walk starts at nodeID's parent and climbs until it reaches
// a root (nil parent) or a dangling parent reference, which is treated
// as an implicit root. A chain that revisits an id is corrupted data
// and surfaces as Internal instead of looping.
func IsAncestor(ctx context.Context, lookup ParentLookup, ancestorID, nodeID uuid.UUID) (bool, error) {
	parentID, found, err := lookup.ParentID(ctx, nodeID)
	if err != nil {
		return false, NewInternal("parent lookup failed", err)
	}
	if !found {
		return false, NewNotFound("category not found", ErrCategoryNotFound)
	}

	seen := map[uuid.UUID]struct{}{nodeID: {}}
	for parentID != nil {
		current := *parentID
		if current == ancestorID {
			return true, nil
		}
		if _, revisited := seen[current]; revisited {
			return false, NewInternal("corrupted category tree", ErrCorruptedTree)
		}
		seen[current] = struct{}{}

		parentID, found, err = lookup.ParentID(ctx, current)
		if err != nil {
			return false, NewInternal("parent lookup failed", err)
		}
		if !found {
			// Dangling parent reference: implicit root.
			return false, nil
		}
	}
	return false, nil
}

// WouldCreateCycle reports whether setting proposedParentID as
// categoryID's parent would make the category its own ancestor. True
// for a direct self-parent and for any proposed parent that already
// descends from the category.
func WouldCreateCycle(ctx context.Context, lookup ParentLookup, categoryID, proposedParentID uuid.UUID) (bool, error) {
	if proposedParentID == categoryID {
		return true, nil
	}
	return IsAncestor(ctx, lookup, categoryID, proposedParentID)
}

// Depth returns the number of edges from id up to its root. Roots have
// depth 0. A dangling parent terminates the walk as if the node below
// it were a root.
func Depth(ctx context.Context, lookup ParentLookup, id uuid.UUID) (int, error) {
	ids, err := PathIDs(ctx, lookup, id)
	if err != nil {
		return 0, err
	}
	return len(ids) - 1, nil
}

// PathIDs returns the breadcrumb chain for id ordered root→node, node
// inclusive. Only existing categories appear: a dangling parent ends
// the chain at the last real node.
func PathIDs(ctx context.Context, lookup ParentLookup, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})

	current := id
	for {
		parentID, found, err := lookup.ParentID(ctx, current)
		if err != nil {
			return nil, NewInternal("parent lookup failed", err)
		}
		if !found {
			if len(ids) == 0 {
				return nil, NewNotFound("category not found", ErrCategoryNotFound)
			}
			break
		}
		if _, revisited := seen[current]; revisited {
			return nil, NewInternal("corrupted category tree", ErrCorruptedTree)
		}
		seen[current] = struct{}{}
		ids = append(ids, current)

		if parentID == nil {
			break
		}
		current = *parentID
	}

	// Collected node→root; callers want root→node.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, nil
}

// =====================================================
// ADJACENCY SNAPSHOT
// =====================================================

// Adjacency is an in-memory view of the whole tree built from one flat
// read: nodes keyed by id plus a parent→children index. Tree assembly
// and statistics run against it instead of issuing per-node queries.
type Adjacency struct {
	nodes    map[uuid.UUID]*Category
	children map[uuid.UUID][]*Category
	roots    []*Category
}

// NewAdjacency indexes a flat snapshot. Sibling lists are ordered by
// SortOrder, then name, then id so tree output is stable.
func NewAdjacency(categories []Category) *Adjacency {
	adj := &Adjacency{
		nodes:    make(map[uuid.UUID]*Category, len(categories)),
		children: make(map[uuid.UUID][]*Category),
	}

	for i := range categories {
		node := &categories[i]
		adj.nodes[node.ID] = node
	}
	for i := range categories {
		node := &categories[i]
		if node.ParentID == nil {
			adj.roots = append(adj.roots, node)
			continue
		}
		adj.children[*node.ParentID] = append(adj.children[*node.ParentID], node)
	}

	sortSiblings(adj.roots)
	for parentID := range adj.children {
		sortSiblings(adj.children[parentID])
	}
	return adj
}

func sortSiblings(nodes []*Category) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		if nodes[i].Name != nodes[j].Name {
			return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
		}
		return nodes[i].ID.String() < nodes[j].ID.String()
	})
}

// ParentID implements ParentLookup against the snapshot.
func (a *Adjacency) ParentID(_ context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	node, ok := a.nodes[id]
	if !ok {
		return nil, false, nil
	}
	return node.ParentID, true, nil
}

func (a *Adjacency) Get(id uuid.UUID) (*Category, bool) {
	node, ok := a.nodes[id]
	return node, ok
}

func (a *Adjacency) Roots() []*Category {
	return a.roots
}

// Children returns the direct children of parentID in sibling order.
func (a *Adjacency) Children(parentID uuid.UUID) []*Category {
	return a.children[parentID]
}

func (a *Adjacency) Len() int {
	return len(a.nodes)
}

// IDs returns every node id in the snapshot, in no particular order.
func (a *Adjacency) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.nodes))
	for id := range a.nodes {
		ids = append(ids, id)
	}
	return ids
}

// MaxDepth returns the depth of the deepest node plus one, so a
// single-root catalog reports 1 and an empty catalog 0. Nodes whose
// parent reference dangles count as roots. Nodes unreachable from any
// root sit on a stored cycle and surface as Internal.
func (a *Adjacency) MaxDepth() (int, error) {
	if len(a.nodes) == 0 {
		return 0, nil
	}

	depths := make(map[uuid.UUID]int, len(a.nodes))
	queue := make([]uuid.UUID, 0, len(a.nodes))
	for id, node := range a.nodes {
		if node.ParentID == nil {
			depths[id] = 0
			queue = append(queue, id)
			continue
		}
		if _, parentExists := a.nodes[*node.ParentID]; !parentExists {
			depths[id] = 0
			queue = append(queue, id)
		}
	}

	maxDepth := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if depths[id] > maxDepth {
			maxDepth = depths[id]
		}
		for _, child := range a.children[id] {
			if _, visited := depths[child.ID]; visited {
				continue
			}
			depths[child.ID] = depths[id] + 1
			queue = append(queue, child.ID)
		}
	}

	if len(depths) != len(a.nodes) {
		return 0, NewInternal("corrupted category tree", ErrCorruptedTree)
	}
	return maxDepth + 1, nil
}
