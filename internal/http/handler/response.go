package handler

import (
	"github.com/gofiber/fiber/v2"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

type submitRequest struct {
	Answers map[string]any `json:"answers"`
	UserID  string         `json:"userId"`
}

type surveyResponsesResponse struct {
	Data  []model.SurveyResponse `json:"data"`
	Total int                    `json:"total"`
}

// SubmitResponse binds an answer set to the survey and stores it.
//
// @Summary  Submit response
// @Tags     responses
// @Accept   json
// @Produce  json
// @Param    id   path string        true "Survey id"
// @Param    body body submitRequest true "Answers keyed by question id"
// @Success  201 {object} model.SurveyResponse
// @Failure  404 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /surveys/{id}/responses [post]
func SubmitResponse(svc service.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in submitRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		r, err := svc.Submit(c.UserContext(), c.Params("id"), in.Answers, in.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// ListSurveyResponses returns every response submitted for a survey.
//
// @Summary  List responses of a survey
// @Tags     responses
// @Produce  json
// @Param    id path string true "Survey id"
// @Success  200 {object} surveyResponsesResponse
// @Router   /surveys/{id}/responses [get]
func ListSurveyResponses(svc service.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListBySurvey(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if list == nil {
			list = []model.SurveyResponse{}
		}
		return c.JSON(surveyResponsesResponse{Data: list, Total: len(list)})
	}
}

// ListResponses pages through all responses, newest first.
//
// @Summary  List responses
// @Tags     responses
// @Produce  json
// @Param    limit  query int false "Page size" default(10)
// @Param    offset query int false "Offset"    default(0)
// @Success  200 {object} service.ResponseListResult
// @Failure  400 {object} errorPayload
// @Router   /responses [get]
func ListResponses(svc service.ResponseService) fiber.Handler {
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

// DeleteResponse removes a stored response.
//
// @Summary  Delete response
// @Tags     responses
// @Param    id path string true "Response id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /responses/{id} [delete]
func DeleteResponse(svc service.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetStatistics summarizes responses per survey and counts workflow documents.
//
// @Summary  Statistics
// @Tags     responses
// @Produce  json
// @Success  200 {object} model.Statistics
// @Router   /statistics [get]
func GetStatistics(svc service.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Statistics(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	}
}
