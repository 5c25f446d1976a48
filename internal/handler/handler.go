package handler

import (
	"errors"

	"github.com/estdesignco/walkthrough-app/internal/repository"
	"github.com/estdesignco/walkthrough-app/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers bundles all handlers for route registration.
type Handlers struct {
	Project *ProjectHandler
	Room    *RoomHandler
	Item    *ItemHandler
	Export  *ExportHandler
}

// NewHandlers creates all handlers.
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Project: NewProjectHandler(svc.Project),
		Room:    NewRoomHandler(svc.Room),
		Item:    NewItemHandler(svc.Item),
		Export:  NewExportHandler(svc.Export),
	}
}

// Response is the shared response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope; the HTTP status is the leading three
// digits of the code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError writes a 500 envelope.
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// serviceError maps a wrapped repository error to the right envelope.
func serviceError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		NotFound(c, err.Error())
		return
	}
	InternalError(c, err.Error())
}

// requestUser returns the optional acting-user id supplied by the frontend.
func requestUser(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}
