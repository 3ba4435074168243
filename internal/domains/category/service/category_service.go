package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/logger"
)

// treeDepthLevels is how many levels below a tree base GetTree renders.
// ChildrenCount still reports the full child count at the cap.
const treeDepthLevels = 2

// topProductCategories caps the stats leaderboard.
const topProductCategories = 10

// =====================================================
// CATEGORY SERVICE IMPLEMENTATION
// =====================================================

type categoryService struct {
	repo     category.CategoryRepository
	products category.ProductCounter
	audit    category.AuditRecorder
}

func NewCategoryService(
	repo category.CategoryRepository,
	products category.ProductCounter,
	audit category.AuditRecorder,
) category.CategoryService {
	return &categoryService{
		repo:     repo,
		products: products,
		audit:    audit,
	}
}

// txParentLookup walks parent pointers through the open transaction so
// cycle checks see the same snapshot the write will run against.
type txParentLookup struct {
	repo category.CategoryRepository
	tx   pgx.Tx
}

func (l *txParentLookup) ParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	return l.repo.GetParentIDWithTx(ctx, l.tx, id)
}

// =====================================================
// CREATE
// =====================================================

func (s *categoryService) Create(ctx context.Context, actorID uuid.UUID, req *category.CreateCategoryReq) (*category.CategoryDetailResp, error) {
	if err := req.Validate(); err != nil {
		return nil, category.NewInvalidInput(err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, category.NewInvalidInput("name cannot be blank")
	}

	slug, err := deriveSlug(req.Slug, name)
	if err != nil {
		return nil, err
	}

	// Omitted is_active means active.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	if req.ParentID != nil {
		if _, err := s.requireActiveParent(ctx, tx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	exists, err := s.repo.ExistsBySlugWithTx(ctx, tx, slug, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if exists {
		return nil, category.NewAlreadyExists(fmt.Sprintf("slug %q is already in use", slug), category.ErrDuplicateSlug)
	}

	cat := category.NewCategory(name, slug, req.Description, req.ParentID, req.SortOrder, isActive)
	if err := s.repo.CreateWithTx(ctx, tx, cat); err != nil {
		if errors.Is(err, category.ErrDuplicateSlug) {
			return nil, category.NewAlreadyExists(fmt.Sprintf("slug %q is already in use", slug), err)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.recordAudit(ctx, actorID, cat.ID, shared.AuditActionCreated, nil, nil, auditValues(cat))

	return s.GetByID(ctx, cat.ID)
}

// =====================================================
// READS
// =====================================================

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.CategoryDetailResp, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, category.NewNotFound("category not found", err)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return s.buildDetail(ctx, cat)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.CategoryDetailResp, error) {
	cat, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, category.NewNotFound("category not found", err)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return s.buildDetail(ctx, cat)
}

func (s *categoryService) List(ctx context.Context, filter *category.Filter) (*category.CategoryListResp, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	adj, err := s.loadAdjacency(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}
	productCounts, err := s.products.CountByCategories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	resp := &category.CategoryListResp{
		Items: make([]category.CategoryResp, 0, len(items)),
		Total: len(items),
	}
	for i := range items {
		item := &items[i]
		resp.Items = append(resp.Items, category.CategoryToResp(item, productCounts[item.ID], len(adj.Children(item.ID))))
	}
	return resp, nil
}

func (s *categoryService) GetPath(ctx context.Context, id uuid.UUID) (*category.CategoryPathResp, error) {
	adj, err := s.loadAdjacency(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := adj.Get(id); !ok {
		return nil, category.NewNotFound("category not found", category.ErrCategoryNotFound)
	}

	ids, err := category.PathIDs(ctx, adj, id)
	if err != nil {
		return nil, err
	}

	chain := make([]*category.Category, 0, len(ids))
	for _, nodeID := range ids {
		if node, ok := adj.Get(nodeID); ok {
			chain = append(chain, node)
		}
	}
	return category.PathToResp(chain), nil
}

func (s *categoryService) GetTree(ctx context.Context, rootID *uuid.UUID) (*category.CategoryTreeResp, error) {
	adj, err := s.loadAdjacency(ctx)
	if err != nil {
		return nil, err
	}

	var bases []*category.Category
	if rootID != nil {
		root, ok := adj.Get(*rootID)
		if !ok {
			return nil, category.NewNotFound("category not found", category.ErrCategoryNotFound)
		}
		bases = []*category.Category{root}
	} else {
		bases = adj.Roots()
	}

	productCounts, err := s.products.CountByCategories(ctx, adj.IDs())
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	resp := &category.CategoryTreeResp{
		Nodes: make([]category.CategoryTreeNodeResp, 0, len(bases)),
	}
	for _, base := range bases {
		resp.Nodes = append(resp.Nodes, buildTreeNode(adj, base, productCounts, treeDepthLevels))
	}
	return resp, nil
}

func (s *categoryService) GetStats(ctx context.Context) (*category.CategoryStatsResp, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	adj := category.NewAdjacency(all)

	stats := &category.CategoryStatsResp{
		TotalCategories:      len(all),
		RootCategories:       len(adj.Roots()),
		AvgProductsPerActive: decimal.Zero,
		TopByProductCount:    make([]category.CategoryProductCount, 0, topProductCategories),
	}

	ids := make([]uuid.UUID, 0, len(all))
	activeIDs := make([]uuid.UUID, 0, len(all))
	for i := range all {
		ids = append(ids, all[i].ID)
		if all[i].IsActive {
			activeIDs = append(activeIDs, all[i].ID)
		}
	}
	stats.ActiveCategories = len(activeIDs)
	stats.InactiveCategories = stats.TotalCategories - stats.ActiveCategories

	productCounts, err := s.products.CountByCategories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	ranked := make([]category.CategoryProductCount, 0, len(all))
	for i := range all {
		node := &all[i]
		count := productCounts[node.ID]
		if count == 0 {
			continue
		}
		stats.CategoriesWithProducts++
		ranked = append(ranked, category.CategoryProductCount{
			ID:           node.ID,
			Name:         node.Name,
			Slug:         node.Slug,
			ProductCount: count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ProductCount != ranked[j].ProductCount {
			return ranked[i].ProductCount > ranked[j].ProductCount
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})
	if len(ranked) > topProductCategories {
		ranked = ranked[:topProductCategories]
	}
	stats.TopByProductCount = ranked

	if len(activeIDs) > 0 {
		activeProductCounts, err := s.products.CountActiveByCategories(ctx, activeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to count active products: %w", err)
		}
		var sum int64
		for _, id := range activeIDs {
			sum += int64(activeProductCounts[id])
		}
		stats.AvgProductsPerActive = decimal.NewFromInt(sum).
			Div(decimal.NewFromInt(int64(len(activeIDs)))).
			Round(2)
	}

	maxDepth, err := adj.MaxDepth()
	if err != nil {
		return nil, err
	}
	stats.MaxTreeDepth = maxDepth

	return stats, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *categoryService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *category.UpdateCategoryReq) (*category.CategoryDetailResp, error) {
	if err := req.Validate(); err != nil {
		return nil, category.NewInvalidInput(err.Error())
	}

	// Self-parent fails before any store work happens.
	if req.ParentSet && req.ParentID != nil && *req.ParentID == id {
		return nil, category.NewInvalidState("category cannot be its own parent", category.ErrSelfParent, nil)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	current, err := s.repo.GetByIDWithTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, category.NewNotFound("category not found", err)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	updated := current.Clone()
	changed := make([]string, 0, 6)

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, category.NewInvalidInput("name cannot be blank")
		}
		if name != current.Name {
			updated.Name = name
			changed = append(changed, "name")
		}
	}

	switch {
	case req.Slug != nil:
		slug := utils.Slugify(*req.Slug)
		if slug == "" {
			return nil, category.NewInvalidInput(fmt.Sprintf("cannot derive a slug from %q", *req.Slug))
		}
		if slug != current.Slug {
			updated.Slug = slug
			changed = append(changed, "slug")
		}
	case updated.Name != current.Name:
		// Renaming without an explicit slug regenerates it from the new name.
		slug := utils.Slugify(updated.Name)
		if slug == "" {
			return nil, category.NewInvalidInput(fmt.Sprintf("cannot derive a slug from %q", updated.Name))
		}
		if slug != current.Slug {
			updated.Slug = slug
			changed = append(changed, "slug")
		}
	}

	if updated.Slug != current.Slug {
		exists, err := s.repo.ExistsBySlugWithTx(ctx, tx, updated.Slug, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if exists {
			return nil, category.NewAlreadyExists(fmt.Sprintf("slug %q is already in use", updated.Slug), category.ErrDuplicateSlug)
		}
	}

	if req.Description != nil && *req.Description != current.Description {
		updated.Description = *req.Description
		changed = append(changed, "description")
	}
	if req.SortOrder != nil && *req.SortOrder != current.SortOrder {
		updated.SortOrder = *req.SortOrder
		changed = append(changed, "sort_order")
	}

	if req.ParentSet && !sameParent(current.ParentID, req.ParentID) {
		if req.ParentID != nil {
			if _, err := s.requireActiveParent(ctx, tx, *req.ParentID); err != nil {
				return nil, err
			}
			lookup := &txParentLookup{repo: s.repo, tx: tx}
			cycle, err := category.WouldCreateCycle(ctx, lookup, id, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if cycle {
				return nil, category.NewCircularReference("cannot move a category under one of its descendants")
			}
			parentID := *req.ParentID
			updated.ParentID = &parentID
		} else {
			updated.ParentID = nil
		}
		changed = append(changed, "parent_id")
	}

	if req.IsActive != nil && *req.IsActive != current.IsActive {
		if *req.IsActive {
			if err := s.validateActivation(ctx, tx, updated); err != nil {
				return nil, err
			}
		} else {
			if err := s.validateDeactivation(ctx, tx, id); err != nil {
				return nil, err
			}
		}
		updated.IsActive = *req.IsActive
		changed = append(changed, "is_active")
	}

	if len(changed) == 0 {
		// Nothing to write; the deferred rollback closes the transaction.
		return s.buildDetail(ctx, current)
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateWithTx(ctx, tx, updated, current.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, category.ErrDuplicateSlug):
			return nil, category.NewAlreadyExists(fmt.Sprintf("slug %q is already in use", updated.Slug), err)
		case errors.Is(err, category.ErrUpdateConflict):
			return nil, category.NewConflict("category was modified concurrently, retry the request")
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.recordAudit(ctx, actorID, id, actionFor(changed, updated.IsActive), changed, auditValues(current), auditValues(updated))

	return s.GetByID(ctx, id)
}

// Move reparents through the same guarded write path as Update.
func (s *categoryService) Move(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *category.MoveCategoryReq) (*category.CategoryDetailResp, error) {
	return s.Update(ctx, actorID, id, &category.UpdateCategoryReq{
		ParentID:  req.ParentID,
		ParentSet: true,
	})
}

// Activate is idempotent: an already active category comes back unchanged.
func (s *categoryService) Activate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*category.CategoryDetailResp, error) {
	active := true
	return s.Update(ctx, actorID, id, &category.UpdateCategoryReq{IsActive: &active})
}

// Deactivate is idempotent and refuses to run while active children or
// active products still hang off the category.
func (s *categoryService) Deactivate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*category.CategoryDetailResp, error) {
	active := false
	return s.Update(ctx, actorID, id, &category.UpdateCategoryReq{IsActive: &active})
}

// =====================================================
// DELETE
// =====================================================

func (s *categoryService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*category.DeleteCategoryResp, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	detail, err := s.repo.GetDetailWithTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, category.NewNotFound("category not found", err)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	cat := detail.Category

	if detail.ActiveChildren > 0 {
		return nil, category.NewInvalidState(
			"category still has active children",
			category.ErrHasActiveChildren,
			map[string]interface{}{"active_children": detail.ActiveChildren},
		)
	}

	activeProducts, err := s.products.CountActiveByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}

	if activeProducts > 0 {
		// Active products keep the row around: deactivate instead of removing.
		if cat.IsActive {
			deactivated := cat.Clone()
			deactivated.IsActive = false
			deactivated.UpdatedAt = time.Now().UTC()
			if err := s.repo.UpdateWithTx(ctx, tx, deactivated, cat.UpdatedAt); err != nil {
				if errors.Is(err, category.ErrUpdateConflict) {
					return nil, category.NewConflict("category was modified concurrently, retry the request")
				}
				return nil, fmt.Errorf("failed to soft delete category: %w", err)
			}
			if err := s.repo.CommitTx(ctx, tx); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
			s.recordAudit(ctx, actorID, id, shared.AuditActionSoftDeleted, []string{"is_active"}, auditValues(&cat), auditValues(deactivated))
		}
		return &category.DeleteCategoryResp{ID: id, Method: category.DeleteMethodSoft}, nil
	}

	if err := s.repo.RemoveWithTx(ctx, tx, id, cat.UpdatedAt); err != nil {
		if errors.Is(err, category.ErrUpdateConflict) {
			return nil, category.NewConflict("category was modified concurrently, retry the request")
		}
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}
	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.recordAudit(ctx, actorID, id, shared.AuditActionHardDeleted, nil, auditValues(&cat), nil)

	return &category.DeleteCategoryResp{ID: id, Method: category.DeleteMethodHard}, nil
}

// =====================================================
// HELPERS
// =====================================================

func deriveSlug(explicit, name string) (string, error) {
	source := explicit
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slug := utils.Slugify(source)
	if slug == "" {
		return "", category.NewInvalidInput(fmt.Sprintf("cannot derive a slug from %q", source))
	}
	return slug, nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func actionFor(changed []string, nowActive bool) shared.AuditAction {
	for _, field := range changed {
		if field == "parent_id" {
			return shared.AuditActionMoved
		}
	}
	for _, field := range changed {
		if field == "is_active" {
			if nowActive {
				return shared.AuditActionActivated
			}
			return shared.AuditActionDeactivated
		}
	}
	return shared.AuditActionUpdated
}

// requireActiveParent loads a prospective parent under the transaction
// and rejects missing or inactive ones.
func (s *categoryService) requireActiveParent(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) (*category.Category, error) {
	parent, err := s.repo.GetByIDWithTx(ctx, tx, parentID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, category.NewNotFound("parent category not found", category.ErrParentNotFound)
		}
		return nil, fmt.Errorf("failed to load parent category: %w", err)
	}
	if !parent.IsActive {
		return nil, category.NewInvalidState("parent category is inactive", category.ErrParentInactive, nil)
	}
	return parent, nil
}

func (s *categoryService) validateActivation(ctx context.Context, tx pgx.Tx, updated *category.Category) error {
	if updated.ParentID == nil {
		return nil
	}
	parent, err := s.repo.GetByIDWithTx(ctx, tx, *updated.ParentID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			// A dangling parent reference behaves like a root.
			return nil
		}
		return fmt.Errorf("failed to load parent category: %w", err)
	}
	if !parent.IsActive {
		return category.NewInvalidState("cannot activate a category under an inactive parent", category.ErrParentInactive, nil)
	}
	return nil
}

func (s *categoryService) validateDeactivation(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	activeChildren, err := s.repo.CountActiveChildrenWithTx(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to count active children: %w", err)
	}
	activeProducts, err := s.products.CountActiveByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count active products: %w", err)
	}
	if activeChildren == 0 && activeProducts == 0 {
		return nil
	}

	cause := category.ErrHasActiveChildren
	if activeChildren == 0 {
		cause = category.ErrHasActiveProducts
	}
	return category.NewInvalidState(
		"category still has active children or active products",
		cause,
		map[string]interface{}{
			"active_children": activeChildren,
			"active_products": activeProducts,
		},
	)
}

func (s *categoryService) loadAdjacency(ctx context.Context) (*category.Adjacency, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return category.NewAdjacency(all), nil
}

// buildDetail assembles the node view: the node with counts, its parent
// and its direct children.
func (s *categoryService) buildDetail(ctx context.Context, cat *category.Category) (*category.CategoryDetailResp, error) {
	children, err := s.repo.GetChildren(ctx, cat.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load children: %w", err)
	}

	adj, err := s.loadAdjacency(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(children)+2)
	ids = append(ids, cat.ID)
	if cat.ParentID != nil {
		ids = append(ids, *cat.ParentID)
	}
	for i := range children {
		ids = append(ids, children[i].ID)
	}
	productCounts, err := s.products.CountByCategories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	detail := &category.CategoryDetailResp{
		CategoryResp: category.CategoryToResp(cat, productCounts[cat.ID], len(children)),
		Children:     make([]category.CategoryResp, 0, len(children)),
	}
	for i := range children {
		child := &children[i]
		detail.Children = append(detail.Children, category.CategoryToResp(child, productCounts[child.ID], len(adj.Children(child.ID))))
	}
	// A dangling parent reference renders like a root, so Parent stays nil.
	if cat.ParentID != nil {
		if parent, ok := adj.Get(*cat.ParentID); ok {
			parentResp := category.CategoryToResp(parent, productCounts[parent.ID], len(adj.Children(parent.ID)))
			detail.Parent = &parentResp
		}
	}
	return detail, nil
}

func buildTreeNode(adj *category.Adjacency, node *category.Category, productCounts map[uuid.UUID]int, levelsLeft int) category.CategoryTreeNodeResp {
	children := adj.Children(node.ID)
	resp := category.CategoryTreeNodeResp{
		ID:            node.ID,
		Name:          node.Name,
		Slug:          node.Slug,
		ParentID:      node.ParentID,
		SortOrder:     node.SortOrder,
		IsActive:      node.IsActive,
		ProductCount:  productCounts[node.ID],
		ChildrenCount: len(children),
	}
	if levelsLeft <= 0 {
		return resp
	}
	for _, child := range children {
		resp.Children = append(resp.Children, buildTreeNode(adj, child, productCounts, levelsLeft-1))
	}
	return resp
}

func auditValues(c *category.Category) map[string]interface{} {
	values := map[string]interface{}{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"parent_id":   nil,
		"sort_order":  c.SortOrder,
		"is_active":   c.IsActive,
	}
	if c.ParentID != nil {
		values["parent_id"] = c.ParentID.String()
	}
	return values
}

// recordAudit is fire-and-forget: audit must never fail a committed
// mutation, so enqueue errors only get logged.
func (s *categoryService) recordAudit(ctx context.Context, actorID, categoryID uuid.UUID, action shared.AuditAction, changed []string, oldValues, newValues map[string]interface{}) {
	payload := shared.AuditEntryPayload{
		CategoryID:    categoryID.String(),
		ActorID:       actorID.String(),
		ActorIP:       shared.ClientIPFromContext(ctx),
		Action:        action,
		ChangedFields: changed,
		OccurredAt:    time.Now().UTC(),
	}
	if oldValues != nil {
		if data, err := json.Marshal(oldValues); err == nil {
			payload.OldValues = data
		}
	}
	if newValues != nil {
		if data, err := json.Marshal(newValues); err == nil {
			payload.NewValues = data
		}
	}

	if err := s.audit.Record(ctx, payload); err != nil {
		logger.ErrorFields("Failed to enqueue audit entry", err, map[string]interface{}{
			"category_id": payload.CategoryID,
			"action":      string(action),
		})
	}
}
