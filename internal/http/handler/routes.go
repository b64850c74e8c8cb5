package handler

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"surveyflow/internal/service"
)

// Deps are the collaborators the HTTP routes dispatch to.
type Deps struct {
	DB        *sql.DB
	Surveys   service.SurveyService
	Responses service.ResponseService
	Workflows service.WorkflowService
}

// RegisterRoutes attaches every HTTP route to app. Handlers only parse
// input and map errors; behavior lives in the services.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	surveys := app.Group("/surveys")
	surveys.Get("/", ListSurveys(d.Surveys))
	surveys.Post("/", CreateSurvey(d.Surveys))
	surveys.Post("/import", ImportSurvey(d.Surveys))
	surveys.Post("/validate", ValidateSurvey(d.Surveys))
	surveys.Get("/:id", GetSurvey(d.Surveys))
	surveys.Put("/:id", UpdateSurvey(d.Surveys))
	surveys.Delete("/:id", DeleteSurvey(d.Surveys))
	surveys.Post("/:id/duplicate", DuplicateSurvey(d.Surveys))
	surveys.Get("/:id/xml", ExportSurveyXML(d.Surveys))
	surveys.Get("/:id/xml/url", ExportSurveyURL(d.Surveys))
	surveys.Get("/:id/fields", SurveyFields(d.Surveys))
	surveys.Post("/:id/responses", SubmitResponse(d.Responses))
	surveys.Get("/:id/responses", ListSurveyResponses(d.Responses))

	app.Get("/responses", ListResponses(d.Responses))
	app.Delete("/responses/:id", DeleteResponse(d.Responses))
	app.Get("/statistics", GetStatistics(d.Responses))

	workflows := app.Group("/workflows")
	workflows.Get("/", ListWorkflows(d.Workflows))
	workflows.Post("/", CreateWorkflow(d.Workflows))
	workflows.Get("/:id", GetWorkflow(d.Workflows))
	workflows.Put("/:id", UpdateWorkflow(d.Workflows))
	workflows.Delete("/:id", DeleteWorkflow(d.Workflows))
	workflows.Post("/:id/steps/:index/approve", ApproveStep(d.Workflows))
	workflows.Post("/:id/steps/:index/reject", RejectStep(d.Workflows))
	workflows.Post("/:id/steps/:index/comments", CommentStep(d.Workflows))
}

// pageParams reads limit and offset. ok is false once an error response
// has been written.
func pageParams(c *fiber.Ctx) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}

func badBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
}
