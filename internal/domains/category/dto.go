package category

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE CATEGORY REQUEST
// =====================================================
type CreateCategoryReq struct {
	Name        string     `json:"name" binding:"required"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   int        `json:"sort_order"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

func (req CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Slug, validation.Length(0, 255)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.SortOrder, validation.Min(0), validation.Max(999)),
	)
}

// =====================================================
// UPDATE CATEGORY REQUEST
// =====================================================

// UpdateCategoryReq is a partial update. Pointer fields distinguish
// "not provided" (nil) from an explicit value. parent_id needs a third
// state (absent keeps the parent, null moves to root, a value
// reparents), so it is decoded by hand and tracked with ParentSet.
type UpdateCategoryReq struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	SortOrder   *int       `json:"sort_order"`
	IsActive    *bool      `json:"is_active"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ParentSet   bool       `json:"-"`
}

func (req *UpdateCategoryReq) UnmarshalJSON(data []byte) error {
	type updateAlias struct {
		Name        *string         `json:"name"`
		Slug        *string         `json:"slug"`
		Description *string         `json:"description"`
		SortOrder   *int            `json:"sort_order"`
		IsActive    *bool           `json:"is_active"`
		ParentID    json.RawMessage `json:"parent_id"`
	}

	var aux updateAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	req.Name = aux.Name
	req.Slug = aux.Slug
	req.Description = aux.Description
	req.SortOrder = aux.SortOrder
	req.IsActive = aux.IsActive

	req.ParentID = nil
	req.ParentSet = false
	if aux.ParentID != nil {
		req.ParentSet = true
		if strings.TrimSpace(string(aux.ParentID)) != "null" {
			var id uuid.UUID
			if err := json.Unmarshal(aux.ParentID, &id); err != nil {
				return err
			}
			req.ParentID = &id
		}
	}
	return nil
}

func (req UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Slug, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.SortOrder, validation.Min(0), validation.Max(999)),
	)
}

// =====================================================
// MOVE CATEGORY REQUEST
// =====================================================

// MoveCategoryReq reparents a category. Nil parent_id moves it to root.
type MoveCategoryReq struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================
type CategoryResp struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	ParentID      *uuid.UUID `json:"parent_id"`
	SortOrder     int        `json:"sort_order"`
	IsActive      bool       `json:"is_active"`
	ProductCount  int        `json:"product_count"`
	ChildrenCount int        `json:"children_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CategoryDetailResp is the assembled view returned by mutations and
// single-node reads: the node with its immediate parent and children.
type CategoryDetailResp struct {
	CategoryResp
	Parent   *CategoryResp  `json:"parent,omitempty"`
	Children []CategoryResp `json:"children"`
}

type CategoryListResp struct {
	Items []CategoryResp `json:"items"`
	Total int            `json:"total"`
}

// CategoryTreeNodeResp is one node of the nested tree view. Children is
// nil at the depth cap; ChildrenCount still reports all direct children.
type CategoryTreeNodeResp struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Slug          string                 `json:"slug"`
	ParentID      *uuid.UUID             `json:"parent_id"`
	SortOrder     int                    `json:"sort_order"`
	IsActive      bool                   `json:"is_active"`
	ProductCount  int                    `json:"product_count"`
	ChildrenCount int                    `json:"children_count"`
	Children      []CategoryTreeNodeResp `json:"children,omitempty"`
}

type CategoryTreeResp struct {
	Nodes []CategoryTreeNodeResp `json:"nodes"`
}

type BreadcrumbItem struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Depth int       `json:"depth"`
}

// CategoryPathResp is the breadcrumb from root to the requested node.
type CategoryPathResp struct {
	Items       []BreadcrumbItem `json:"items"`
	CurrentPath string           `json:"current_path"`
}

type CategoryProductCount struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ProductCount int       `json:"product_count"`
}

type CategoryStatsResp struct {
	TotalCategories        int                    `json:"total_categories"`
	ActiveCategories       int                    `json:"active_categories"`
	InactiveCategories     int                    `json:"inactive_categories"`
	RootCategories         int                    `json:"root_categories"`
	CategoriesWithProducts int                    `json:"categories_with_products"`
	MaxTreeDepth           int                    `json:"max_tree_depth"`
	AvgProductsPerActive   decimal.Decimal        `json:"avg_products_per_active"`
	TopByProductCount      []CategoryProductCount `json:"top_by_product_count"`
}

// DeleteCategoryResp reports which removal method ran: "soft" when
// active products still reference the category, "hard" otherwise.
type DeleteCategoryResp struct {
	ID     uuid.UUID    `json:"id"`
	Method DeleteMethod `json:"method"`
}

// =====================================================
// MAPPERS
// =====================================================

func CategoryToResp(c *Category, productCount, childrenCount int) CategoryResp {
	return CategoryResp{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		ParentID:      c.ParentID,
		SortOrder:     c.SortOrder,
		IsActive:      c.IsActive,
		ProductCount:  productCount,
		ChildrenCount: childrenCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// PathToResp renders a root→node chain as breadcrumb items plus the
// "A > B > C" display string.
func PathToResp(chain []*Category) *CategoryPathResp {
	items := make([]BreadcrumbItem, 0, len(chain))
	names := make([]string, 0, len(chain))
	for depth, node := range chain {
		items = append(items, BreadcrumbItem{
			ID:    node.ID,
			Name:  node.Name,
			Slug:  node.Slug,
			Depth: depth,
		})
		names = append(names, node.Name)
	}
	return &CategoryPathResp{
		Items:       items,
		CurrentPath: strings.Join(names, " > "),
	}
}
