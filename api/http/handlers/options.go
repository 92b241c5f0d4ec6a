package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/render"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

// OptionsResponse lists the fixed choices offered by the form.
type OptionsResponse struct {
	Languages        []string              `json:"languages"`
	SoftSkills       []string              `json:"soft_skills"`
	ExperienceLevels []string              `json:"experience_levels"`
	Templates        []render.TemplateInfo `json:"templates"`
}

// Options отдаёт справочники формы: языки, soft skills, уровни опыта и шаблоны.
// @Summary Справочники формы
// @Tags    options
// @Produce json
// @Success 200 {object} OptionsResponse
// @Router  /options [get]
func Options(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, OptionsResponse{
		Languages:        resume.LanguageOptions,
		SoftSkills:       resume.SoftSkillOptions,
		ExperienceLevels: resume.ExperienceLevels,
		Templates:        render.Templates,
	})
}
