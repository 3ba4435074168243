package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

// respondError renders a service failure with its mapped status, code
// and machine-readable details.
func respondError(c *gin.Context, err error) {
	appErr := category.AsError(err)
	response.ErrorWithDetails(c, category.GetHTTPStatusCode(err), appErr.Code, appErr.Message, appErr.Details)
}

func parseCategoryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, "invalid category id")
		return uuid.Nil, false
	}
	return id, true
}

func actorFromContext(c *gin.Context) (uuid.UUID, bool) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		response.Unauthorized(c, "missing authenticated actor")
		return uuid.Nil, false
	}
	return actorID, true
}

// ========== CREATE: POST /api/v1/categories ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ========== READ: GET /api/v1/categories/:id ==========
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== READ: GET /api/v1/categories/by-slug/:slug ==========
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, "invalid slug")
		return
	}

	resp, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== READ: GET /api/v1/categories ==========
// Query params: is_active, parent_id, roots_only
func (h *CategoryHandler) List(c *gin.Context) {
	var filter category.Filter

	if isActiveStr := c.Query("is_active"); isActiveStr != "" {
		isActive, err := strconv.ParseBool(isActiveStr)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, "is_active must be a boolean")
			return
		}
		filter.IsActive = &isActive
	}

	if parentIDStr := c.Query("parent_id"); parentIDStr != "" {
		parentID, err := uuid.Parse(parentIDStr)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, "parent_id must be a uuid")
			return
		}
		filter.ParentID = &parentID
	}

	if rootsStr := c.Query("roots_only"); rootsStr != "" {
		rootsOnly, err := strconv.ParseBool(rootsStr)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, "roots_only must be a boolean")
			return
		}
		filter.RootsOnly = rootsOnly
	}

	resp, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== READ: GET /api/v1/categories/tree ==========
// Optional root_id narrows the forest to one subtree.
func (h *CategoryHandler) GetTree(c *gin.Context) {
	var rootID *uuid.UUID
	if rootIDStr := c.Query("root_id"); rootIDStr != "" {
		id, err := uuid.Parse(rootIDStr)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, "root_id must be a uuid")
			return
		}
		rootID = &id
	}

	resp, err := h.service.GetTree(c.Request.Context(), rootID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== READ: GET /api/v1/categories/:id/path ==========
func (h *CategoryHandler) GetPath(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPath(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== READ: GET /api/v1/categories/stats ==========
func (h *CategoryHandler) GetStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== UPDATE: PUT /api/v1/categories/:id ==========
// Partial update: only provided fields change. parent_id distinguishes
// absent (keep), null (move to root) and a value (reparent).
func (h *CategoryHandler) Update(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== UPDATE: PATCH /api/v1/categories/:id/parent ==========
func (h *CategoryHandler) Move(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req category.MoveCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeInvalidInput, err.Error())
		return
	}

	resp, err := h.service.Move(c.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== UPDATE: POST /api/v1/categories/:id/activate ==========
func (h *CategoryHandler) Activate(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	resp, err := h.service.Activate(c.Request.Context(), actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== UPDATE: POST /api/v1/categories/:id/deactivate ==========
func (h *CategoryHandler) Deactivate(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	resp, err := h.service.Deactivate(c.Request.Context(), actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== DELETE: DELETE /api/v1/categories/:id ==========
// The response reports which method ran: soft when active products still
// reference the category, hard otherwise.
func (h *CategoryHandler) Delete(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	resp, err := h.service.Delete(c.Request.Context(), actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
