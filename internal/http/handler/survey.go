package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"surveyflow/internal/form"
	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

const defaultURLExpiry = 15 * time.Minute

type surveyListResponse struct {
	Data  []model.Survey `json:"data"`
	Total int            `json:"total"`
}

type duplicateRequest struct {
	NewID string `json:"newId"`
}

type checkResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

type exportURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// ListSurveys returns every stored survey.
//
// @Summary  List surveys
// @Tags     surveys
// @Produce  json
// @Success  200 {object} surveyListResponse
// @Router   /surveys [get]
func ListSurveys(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		if list == nil {
			list = []model.Survey{}
		}
		return c.JSON(surveyListResponse{Data: list, Total: len(list)})
	}
}

// CreateSurvey stores a survey sent as JSON. A blank id is derived from the title.
//
// @Summary  Create survey
// @Tags     surveys
// @Accept   json
// @Produce  json
// @Param    survey body model.Survey true "Survey"
// @Success  201 {object} model.Survey
// @Failure  409 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /surveys [post]
func CreateSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Survey
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		s, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// GetSurvey returns a survey by id.
//
// @Summary  Get survey
// @Tags     surveys
// @Produce  json
// @Param    id path string true "Survey id"
// @Success  200 {object} model.Survey
// @Failure  404 {object} errorPayload
// @Router   /surveys/{id} [get]
func GetSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(s)
	}
}

// UpdateSurvey replaces a stored survey and bumps its version.
//
// @Summary  Update survey
// @Tags     surveys
// @Accept   json
// @Produce  json
// @Param    id     path string       true "Survey id"
// @Param    survey body model.Survey true "Survey"
// @Success  200 {object} model.Survey
// @Failure  404 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /surveys/{id} [put]
func UpdateSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Survey
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		s, err := svc.Update(c.UserContext(), c.Params("id"), &in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(s)
	}
}

// DeleteSurvey removes a survey. Its responses are kept.
//
// @Summary  Delete survey
// @Tags     surveys
// @Param    id path string true "Survey id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /surveys/{id} [delete]
func DeleteSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DuplicateSurvey copies a survey under a new id.
//
// @Summary  Duplicate survey
// @Tags     surveys
// @Accept   json
// @Produce  json
// @Param    id   path string           true "Survey id"
// @Param    body body duplicateRequest true "New id"
// @Success  201 {object} model.Survey
// @Failure  409 {object} errorPayload
// @Router   /surveys/{id}/duplicate [post]
func DuplicateSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in duplicateRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		s, err := svc.Duplicate(c.UserContext(), c.Params("id"), strings.TrimSpace(in.NewID))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// ExportSurveyXML downloads the survey as an XML file.
//
// @Summary  Export survey XML
// @Tags     surveys
// @Produce  xml
// @Param    id path string true "Survey id"
// @Success  200 {string} string
// @Failure  404 {object} errorPayload
// @Router   /surveys/{id}/xml [get]
func ExportSurveyXML(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		text, err := svc.Export(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", id+".xml"))
		return c.SendString(text)
	}
}

// ExportSurveyURL returns a pre-signed link to the stored XML. The optional
// expiry query takes a Go duration such as "30m".
//
// @Summary  Pre-signed survey XML link
// @Tags     surveys
// @Produce  json
// @Param    id     path  string true  "Survey id"
// @Param    expiry query string false "Link lifetime" default(15m)
// @Success  200 {object} exportURLResponse
// @Failure  404 {object} errorPayload
// @Router   /surveys/{id}/xml/url [get]
func ExportSurveyURL(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expiry := defaultURLExpiry
		if raw := c.Query("expiry"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil || d < time.Second || d > 7*24*time.Hour {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY", "invalid expiry")
			}
			expiry = d
		}
		u, err := svc.ExportURL(c.UserContext(), c.Params("id"), expiry)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(exportURLResponse{URL: u, ExpiresIn: int(expiry.Seconds())})
	}
}

// ImportSurvey creates a survey from an XML request body.
//
// @Summary  Import survey XML
// @Tags     surveys
// @Accept   xml
// @Produce  json
// @Success  201 {object} model.Survey
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /surveys/import [post]
func ImportSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := string(c.Body())
		if strings.TrimSpace(body) == "" {
			return badBody(c)
		}
		s, err := svc.Import(c.UserContext(), body)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// ValidateSurvey checks an XML request body without storing it.
//
// @Summary  Validate survey XML
// @Tags     surveys
// @Accept   xml
// @Produce  json
// @Success  200 {object} checkResponse
// @Failure  400 {object} errorPayload
// @Router   /surveys/validate [post]
func ValidateSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		violations, err := svc.Check(string(c.Body()))
		if err != nil {
			return respondError(c, err)
		}
		if violations == nil {
			violations = []string{}
		}
		return c.JSON(checkResponse{Valid: len(violations) == 0, Violations: violations})
	}
}

// SurveyFields lists the input fields a client renders for a survey.
//
// @Summary  Survey form fields
// @Tags     surveys
// @Produce  json
// @Param    id path string true "Survey id"
// @Success  200 {array} form.Field
// @Failure  404 {object} errorPayload
// @Router   /surveys/{id}/fields [get]
func SurveyFields(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, err := svc.Fields(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if fields == nil {
			fields = []form.Field{}
		}
		return c.JSON(fields)
	}
}
