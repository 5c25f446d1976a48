package handler

import (
	"github.com/estdesignco/walkthrough-app/internal/service"
	"github.com/gin-gonic/gin"
)

// RoomHandler serves /api/rooms.
type RoomHandler struct {
	svc *service.RoomService
}

// NewRoomHandler creates a room handler.
func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// List GET /api/rooms?project_id=
func (h *RoomHandler) List(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		BadRequest(c, "project_id is required")
		return
	}

	rooms, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, rooms)
}

// Create POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	room, err := h.svc.Create(c.Request.Context(), requestUser(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, room)
}

// Update PUT /api/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	room, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, room)
}

// Delete DELETE /api/rooms/:id — cascades to the room's items.
func (h *RoomHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}
