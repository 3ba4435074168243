package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parentLookupFunc adapts a function to ParentLookup for error-path tests.
type parentLookupFunc func(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error)

func (f parentLookupFunc) ParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	return f(ctx, id)
}

func node(name string, parentID *uuid.UUID, sortOrder int) Category {
	return Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      name,
		ParentID:  parentID,
		SortOrder: sortOrder,
		IsActive:  true,
	}
}

// chainFixture builds electronics → computers → laptops → gaming and
// returns the snapshot plus the four nodes in root-first order.
func chainFixture() (*Adjacency, []Category) {
	electronics := node("electronics", nil, 0)
	computers := node("computers", &electronics.ID, 0)
	laptops := node("laptops", &computers.ID, 0)
	gaming := node("gaming", &laptops.ID, 0)

	cats := []Category{electronics, computers, laptops, gaming}
	return NewAdjacency(cats), cats
}

func TestIsAncestor(t *testing.T) {
	ctx := context.Background()
	adj, chain := chainFixture()
	electronics, computers, laptops, gaming := chain[0], chain[1], chain[2], chain[3]

	t.Run("direct parent is an ancestor", func(t *testing.T) {
		got, err := IsAncestor(ctx, adj, electronics.ID, computers.ID)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("transitive ancestor", func(t *testing.T) {
		got, err := IsAncestor(ctx, adj, electronics.ID, gaming.ID)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("descendant is not an ancestor", func(t *testing.T) {
		got, err := IsAncestor(ctx, adj, gaming.ID, electronics.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("unrelated id is not an ancestor", func(t *testing.T) {
		got, err := IsAncestor(ctx, adj, uuid.New(), laptops.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("node itself is not its own ancestor", func(t *testing.T) {
		got, err := IsAncestor(ctx, adj, laptops.ID, laptops.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("missing node", func(t *testing.T) {
		_, err := IsAncestor(ctx, adj, electronics.ID, uuid.New())
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("dangling parent acts as root", func(t *testing.T) {
		ghost := uuid.New()
		orphan := node("orphan", &ghost, 0)
		snapshot := NewAdjacency([]Category{orphan})

		got, err := IsAncestor(ctx, snapshot, ghost, orphan.ID)
		require.NoError(t, err)
		assert.True(t, got, "the dangling id itself still counts as the direct parent")

		got, err = IsAncestor(ctx, snapshot, uuid.New(), orphan.ID)
		require.NoError(t, err)
		assert.False(t, got, "the walk stops at the dangling reference")
	})

	t.Run("stored two node cycle surfaces as internal", func(t *testing.T) {
		xID, yID := uuid.New(), uuid.New()
		snapshot := NewAdjacency([]Category{
			{ID: xID, Name: "x", ParentID: &yID},
			{ID: yID, Name: "y", ParentID: &xID},
		})

		_, err := IsAncestor(ctx, snapshot, uuid.New(), xID)
		require.Error(t, err)
		assert.Equal(t, ErrCodeInternal, AsError(err).Code)
		assert.ErrorIs(t, err, ErrCorruptedTree)
	})

	t.Run("lookup failure wraps as internal", func(t *testing.T) {
		boom := errors.New("connection reset")
		lookup := parentLookupFunc(func(context.Context, uuid.UUID) (*uuid.UUID, bool, error) {
			return nil, false, boom
		})

		_, err := IsAncestor(ctx, lookup, uuid.New(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, ErrCodeInternal, AsError(err).Code)
		assert.ErrorIs(t, err, boom)
	})
}

func TestWouldCreateCycle(t *testing.T) {
	ctx := context.Background()
	adj, chain := chainFixture()
	electronics, computers, gaming := chain[0], chain[1], chain[3]

	t.Run("self parent", func(t *testing.T) {
		got, err := WouldCreateCycle(ctx, adj, computers.ID, computers.ID)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("reparenting under own descendant", func(t *testing.T) {
		got, err := WouldCreateCycle(ctx, adj, electronics.ID, gaming.ID)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("reparenting under an ancestor is fine", func(t *testing.T) {
		got, err := WouldCreateCycle(ctx, adj, gaming.ID, electronics.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("reparenting under a sibling tree is fine", func(t *testing.T) {
		other := node("books", nil, 0)
		fiction := node("fiction", &other.ID, 0)
		snapshot := NewAdjacency([]Category{other, fiction, electronics, computers})

		got, err := WouldCreateCycle(ctx, snapshot, computers.ID, fiction.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestPathIDs(t *testing.T) {
	ctx := context.Background()
	adj, chain := chainFixture()
	electronics, computers, laptops, gaming := chain[0], chain[1], chain[2], chain[3]

	t.Run("root first, node inclusive", func(t *testing.T) {
		got, err := PathIDs(ctx, adj, gaming.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{electronics.ID, computers.ID, laptops.ID, gaming.ID}, got)
	})

	t.Run("root path is just the root", func(t *testing.T) {
		got, err := PathIDs(ctx, adj, electronics.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{electronics.ID}, got)
	})

	t.Run("missing node", func(t *testing.T) {
		_, err := PathIDs(ctx, adj, uuid.New())
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("dangling parent truncates the chain", func(t *testing.T) {
		ghost := uuid.New()
		orphan := node("orphan", &ghost, 0)
		child := node("child", &orphan.ID, 0)
		snapshot := NewAdjacency([]Category{orphan, child})

		got, err := PathIDs(ctx, snapshot, child.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{orphan.ID, child.ID}, got)
	})

	t.Run("stored cycle surfaces as internal", func(t *testing.T) {
		xID, yID := uuid.New(), uuid.New()
		snapshot := NewAdjacency([]Category{
			{ID: xID, Name: "x", ParentID: &yID},
			{ID: yID, Name: "y", ParentID: &xID},
		})

		_, err := PathIDs(ctx, snapshot, xID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptedTree)
	})
}

func TestDepth(t *testing.T) {
	ctx := context.Background()
	adj, chain := chainFixture()

	for want, cat := range chain {
		got, err := Depth(ctx, adj, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "depth of %s", cat.Name)
	}

	t.Run("dangling parent means depth zero", func(t *testing.T) {
		ghost := uuid.New()
		orphan := node("orphan", &ghost, 0)
		snapshot := NewAdjacency([]Category{orphan})

		got, err := Depth(ctx, snapshot, orphan.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})
}

func TestNewAdjacency_SiblingOrder(t *testing.T) {
	parent := node("parent", nil, 0)
	// Deliberately unordered: sort_order first, then case-insensitive
	// name, then id string as the final tie break.
	third := node("Accessories", &parent.ID, 2)
	second := node("Zebra Print", &parent.ID, 1)
	first := node("accessories", &parent.ID, 1)

	twinA := node("Twin", &parent.ID, 5)
	twinB := node("Twin", &parent.ID, 5)
	if twinB.ID.String() < twinA.ID.String() {
		twinA, twinB = twinB, twinA
	}

	adj := NewAdjacency([]Category{parent, third, twinB, second, twinA, first})

	gotNames := []string{}
	gotIDs := []uuid.UUID{}
	for _, child := range adj.Children(parent.ID) {
		gotNames = append(gotNames, child.Name)
		gotIDs = append(gotIDs, child.ID)
	}

	assert.Equal(t, []string{"accessories", "Zebra Print", "Accessories", "Twin", "Twin"}, gotNames)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID, twinA.ID, twinB.ID}, gotIDs)
}

func TestNewAdjacency_Roots(t *testing.T) {
	rootB := node("books", nil, 1)
	rootA := node("appliances", nil, 1)
	rootC := node("clothing", nil, 0)
	child := node("fiction", &rootB.ID, 0)

	ghost := uuid.New()
	orphan := node("orphan", &ghost, 0)

	adj := NewAdjacency([]Category{rootB, orphan, rootA, child, rootC})

	gotNames := []string{}
	for _, root := range adj.Roots() {
		gotNames = append(gotNames, root.Name)
	}

	// Orphans keep their dangling parent id: they are implicit roots for
	// depth math but do not join the Roots slice.
	assert.Equal(t, []string{"clothing", "appliances", "books"}, gotNames)
	assert.Equal(t, 5, adj.Len())
	assert.ElementsMatch(t, []uuid.UUID{rootA.ID, rootB.ID, rootC.ID, child.ID, orphan.ID}, adj.IDs())

	got, ok := adj.Get(child.ID)
	require.True(t, ok)
	assert.Equal(t, "fiction", got.Name)

	_, ok = adj.Get(uuid.New())
	assert.False(t, ok)

	parentID, found, err := adj.ParentID(context.Background(), child.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rootB.ID, *parentID)

	_, found, err = adj.ParentID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAdjacency_MaxDepth(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		got, err := NewAdjacency(nil).MaxDepth()
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("single root", func(t *testing.T) {
		got, err := NewAdjacency([]Category{node("root", nil, 0)}).MaxDepth()
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("four level chain", func(t *testing.T) {
		adj, _ := chainFixture()
		got, err := adj.MaxDepth()
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	})

	t.Run("forest reports the deepest tree", func(t *testing.T) {
		shallow := node("shallow", nil, 0)
		deepRoot := node("deep", nil, 0)
		mid := node("mid", &deepRoot.ID, 0)
		leaf := node("leaf", &mid.ID, 0)

		got, err := NewAdjacency([]Category{shallow, deepRoot, mid, leaf}).MaxDepth()
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("dangling parent counts as a root", func(t *testing.T) {
		ghost := uuid.New()
		orphan := node("orphan", &ghost, 0)
		child := node("child", &orphan.ID, 0)

		got, err := NewAdjacency([]Category{orphan, child}).MaxDepth()
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("stored cycle surfaces as internal", func(t *testing.T) {
		root := node("root", nil, 0)
		xID, yID := uuid.New(), uuid.New()

		_, err := NewAdjacency([]Category{
			root,
			{ID: xID, Name: "x", ParentID: &yID},
			{ID: yID, Name: "y", ParentID: &xID},
		}).MaxDepth()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptedTree)
	})
}
