package handler

import (
	"github.com/gofiber/fiber/v2"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

type commentRequest struct {
	Text string `json:"text"`
}

// ListWorkflows pages through workflow documents.
//
// @Summary  List workflow documents
// @Tags     workflows
// @Produce  json
// @Param    limit  query int false "Page size" default(10)
// @Param    offset query int false "Offset"    default(0)
// @Success  200 {object} service.WorkflowListResult
// @Failure  400 {object} errorPayload
// @Router   /workflows [get]
func ListWorkflows(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pageParams(c)
		if !ok {
			return nil
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateWorkflow starts a document on its approval chain.
//
// @Summary  Create workflow document
// @Tags     workflows
// @Accept   json
// @Produce  json
// @Param    document body model.WorkflowDocument true "Title, content and steps"
// @Success  201 {object} model.WorkflowDocument
// @Failure  422 {object} errorPayload
// @Router   /workflows [post]
func CreateWorkflow(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.WorkflowDocument
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		doc, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetWorkflow returns a workflow document by id.
//
// @Summary  Get workflow document
// @Tags     workflows
// @Produce  json
// @Param    id path string true "Document id"
// @Success  200 {object} model.WorkflowDocument
// @Failure  404 {object} errorPayload
// @Router   /workflows/{id} [get]
func GetWorkflow(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateWorkflow edits title, content or status. Steps change only through
// the step endpoints.
//
// @Summary  Update workflow document
// @Tags     workflows
// @Accept   json
// @Produce  json
// @Param    id    path string                true "Document id"
// @Param    patch body service.WorkflowPatch true "Fields to replace"
// @Success  200 {object} model.WorkflowDocument
// @Failure  404 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /workflows/{id} [put]
func UpdateWorkflow(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch service.WorkflowPatch
		if err := c.BodyParser(&patch); err != nil {
			return badBody(c)
		}
		doc, err := svc.Update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteWorkflow removes a workflow document.
//
// @Summary  Delete workflow document
// @Tags     workflows
// @Param    id path string true "Document id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /workflows/{id} [delete]
func DeleteWorkflow(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ApproveStep completes the step at the 0-based index.
//
// @Summary  Approve step
// @Tags     workflows
// @Produce  json
// @Param    id    path string true "Document id"
// @Param    index path int    true "Step index"
// @Success  200 {object} model.WorkflowDocument
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /workflows/{id}/steps/{index}/approve [post]
func ApproveStep(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil {
			return invalidStepIndex(c)
		}
		doc, err := svc.Approve(c.UserContext(), c.Params("id"), index)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// RejectStep rejects the step at the 0-based index and closes the document.
//
// @Summary  Reject step
// @Tags     workflows
// @Produce  json
// @Param    id    path string true "Document id"
// @Param    index path int    true "Step index"
// @Success  200 {object} model.WorkflowDocument
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /workflows/{id}/steps/{index}/reject [post]
func RejectStep(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil {
			return invalidStepIndex(c)
		}
		doc, err := svc.Reject(c.UserContext(), c.Params("id"), index)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// CommentStep appends a comment to the step at the 0-based index.
//
// @Summary  Comment on step
// @Tags     workflows
// @Accept   json
// @Produce  json
// @Param    id    path string         true "Document id"
// @Param    index path int            true "Step index"
// @Param    body  body commentRequest true "Comment"
// @Success  200 {object} model.WorkflowDocument
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /workflows/{id}/steps/{index}/comments [post]
func CommentStep(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil {
			return invalidStepIndex(c)
		}
		var in commentRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		doc, err := svc.Comment(c.UserContext(), c.Params("id"), index, in.Text)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

func invalidStepIndex(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_STEP_INDEX", "invalid step index")
}
