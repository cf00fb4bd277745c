package handler

import (
	"net/http"

	"accounting/internal/middleware"
	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	readers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleViewer)
	writers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	categories := router.Group("/api/categories")
	{
		categories.GET("", readers, h.ListCategories)
		categories.GET("/:id", readers, h.GetCategory)
		categories.POST("", writers, h.CreateCategory)
		categories.PUT("/:id", writers, h.UpdateCategory)
		categories.DELETE("/:id", writers, h.DeleteCategory)
		categories.PATCH("/:id/restore", middleware.RequireRole(model.RoleAdmin), h.RestoreCategory)
	}
}

// @Summary      List categories
// @Description  Defaults first, then by type and name
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        type         query  string  false  "income or expense"
// @Param        active_only  query  bool    false  "Only active categories (default true)"
// @Success      200  {object}  response.Response{data=[]service.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), service.CategoryFilter{
		Type:            c.Query("type"),
		IncludeInactive: c.Query("active_only") == "false",
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// @Summary      Get category
// @Description  Includes how many entries are filed under it
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response{data=service.CategoryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// @Summary      Create category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateCategoryRequest  true  "Category payload"
// @Success      201  {object}  response.Response{data=service.CategoryResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// @Summary      Update category
// @Description  Creators may edit their own categories; defaults are admin only
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                            true  "Category ID"
// @Param        payload  body  service.UpdateCategoryRequest  true  "Category payload"
// @Success      200  {object}  response.Response{data=service.CategoryResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// @Summary      Delete category
// @Description  Deactivates the category. Defaults and categories in use cannot be deleted.
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Category deleted successfully"}))
}

// @Summary      Restore category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Category ID"
// @Success      200  {object}  response.Response{data=service.CategoryResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/categories/{id}/restore [patch]
func (h *CategoryHandler) RestoreCategory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	category, err := h.categoryService.RestoreCategory(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}
