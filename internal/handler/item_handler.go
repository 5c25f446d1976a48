package handler

import (
	"strings"

	"github.com/estdesignco/walkthrough-app/internal/service"
	"github.com/gin-gonic/gin"
)

// ItemHandler serves /api/items.
type ItemHandler struct {
	svc *service.ItemService
}

// NewItemHandler creates an item handler.
func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// List GET /api/items?project_id=&status=
// status accepts a comma-separated set so one request can load a whole sheet.
func (h *ItemHandler) List(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		BadRequest(c, "project_id is required")
		return
	}

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	items, err := h.svc.ListByProject(c.Request.Context(), projectID, statuses)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, items)
}

// Get GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

// Create POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), requestUser(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, item)
}

// CreateBulk POST /api/items/bulk
func (h *ItemHandler) CreateBulk(c *gin.Context) {
	var req service.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		BadRequest(c, "items must not be empty")
		return
	}

	items, err := h.svc.CreateBulk(c.Request.Context(), requestUser(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, items)
}

// Update PUT /api/items/:id — partial field update; the body carries only
// the edited fields, matching the single-cell editor flow.
func (h *ItemHandler) Update(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(fields) == 0 {
		BadRequest(c, "no fields to update")
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, item)
}

// Delete DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// UploadImage POST /api/items/:id/image
func (h *ItemHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "open upload: "+err.Error())
		return
	}
	defer file.Close()

	item, err := h.svc.UploadImage(
		c.Request.Context(),
		c.Param("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, item)
}
