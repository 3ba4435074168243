package category

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENTITY
// =====================================================

// Category is a node in the catalog tree. ParentID nil means root.
// Children, product counts, and the ancestor path are derived, not
// stored on the entity.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	ParentID    *uuid.UUID
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory builds a category ready for persistence. Slug derivation
// and every tree-level rule (parent existence, cycle checks, slug
// uniqueness) belong to the service, not here.
func NewCategory(name, slug, description string, parentID *uuid.UUID, sortOrder int, isActive bool) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Slug:        slug,
		Description: description,
		ParentID:    parentID,
		SortOrder:   sortOrder,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Clone returns a copy for before/after audit snapshots.
func (c *Category) Clone() *Category {
	dup := *c
	if c.ParentID != nil {
		parentID := *c.ParentID
		dup.ParentID = &parentID
	}
	return &dup
}

// =====================================================
// QUERY FILTER
// =====================================================

// Filter narrows List queries. RootsOnly and ParentID are mutually
// exclusive; RootsOnly wins when both are set.
type Filter struct {
	IsActive  *bool
	ParentID  *uuid.UUID
	RootsOnly bool
}

// DeleteMethod reports how a delete was carried out.
type DeleteMethod string

const (
	DeleteMethodSoft DeleteMethod = "soft"
	DeleteMethodHard DeleteMethod = "hard"
)
