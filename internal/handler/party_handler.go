package handler

import (
	"net/http"

	"accounting/internal/middleware"
	"accounting/internal/model"
	"accounting/internal/service"
	"accounting/pkg/pagination"
	"accounting/pkg/response"

	"github.com/gin-gonic/gin"
)

type PartyHandler struct {
	partyService service.PartyService
}

func NewPartyHandler(partyService service.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

func (h *PartyHandler) RegisterRoutes(router *gin.RouterGroup) {
	readers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleViewer)
	writers := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	parties := router.Group("/api/parties")
	{
		parties.GET("", readers, h.ListParties)
		parties.GET("/:id", readers, h.GetParty)
		parties.POST("", writers, h.CreateParty)
		parties.PUT("/:id", writers, h.UpdateParty)
		parties.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteParty)
	}
}

// ListParties returns paginated parties with optional type/search filter
// @Summary      List parties
// @Tags         parties
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 10)"
// @Param        type    query     string  false  "Filter by type: customer, vendor, both"
// @Param        search  query     string  false  "Search by name, code, tax id, phone"
// @Param        active  query     bool    false  "Only active parties"
// @Success      200     {object}  response.Response{data=response.PaginatedData{items=[]service.PartyResponse}}
// @Router       /api/parties [get]
func (h *PartyHandler) ListParties(c *gin.Context) {
	p := pagination.Parse(c)

	filter := service.PartyFilter{
		PartyType:  c.Query("type"),
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") == "true",
		Page:       p.Page,
		Limit:      p.Limit,
	}

	parties, total, err := h.partyService.ListParties(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, parties, p, total))
}

// GetParty returns one party
// @Summary      Get party
// @Tags         parties
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Party ID"
// @Success      200  {object}  response.Response{data=service.PartyResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/parties/{id} [get]
func (h *PartyHandler) GetParty(c *gin.Context) {
	party, err := h.partyService.GetParty(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, party))
}

// CreateParty creates a new customer or vendor
// @Summary      Create party
// @Tags         parties
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePartyRequest  true  "Party payload"
// @Success      201  {object}  response.Response{data=service.PartyResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/parties [post]
func (h *PartyHandler) CreateParty(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, party))
}

// UpdateParty updates the fields that were sent
// @Summary      Update party
// @Tags         parties
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                         true  "Party ID"
// @Param        payload  body  service.UpdatePartyRequest  true  "Party payload"
// @Success      200  {object}  response.Response{data=service.PartyResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/parties/{id} [put]
func (h *PartyHandler) UpdateParty(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, party))
}

// DeleteParty deletes a party
// @Summary      Delete party
// @Tags         parties
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Party ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/parties/{id} [delete]
func (h *PartyHandler) DeleteParty(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.partyService.DeleteParty(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Party deleted successfully"}))
}
