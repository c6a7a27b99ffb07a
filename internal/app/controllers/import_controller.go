package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/app/services"
	"github.com/yigit/timetabler/internal/middleware"
)

// ImportController handles schedule import operations
type ImportController struct {
	importService services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService services.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// Preview parses document text and returns the recognized rows
// @Summary Preview a timetable document
// @Description Parses raw exam or class timetable text without persisting anything
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.PreviewRequest true "Document text"
// @Success 200 {object} dto.APIResponse{data=dto.PreviewResponse} "Recognized rows"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 413 {object} dto.ErrorResponse "Document text too large"
// @Failure 422 {object} dto.ErrorResponse "No entries detected"
// @Router /imports/preview [post]
func (c *ImportController) Preview(ctx *gin.Context) {
	var req dto.PreviewRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.importService.Preview(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Commit persists reviewed rows
// @Summary Commit previewed rows
// @Description Creates exams or weekly sessions from reviewed rows. Rows that fail are skipped with a reason.
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.CommitRequest true "Rows to import"
// @Success 200 {object} dto.APIResponse{data=dto.CommitResponse} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Another import is in progress"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /imports/commit [post]
func (c *ImportController) Commit(ctx *gin.Context) {
	var req dto.CommitRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.importService.Commit(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
