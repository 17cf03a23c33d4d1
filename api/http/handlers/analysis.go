package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/atlas/api/http/presenter"
	"github.com/artem13815/atlas/pkg/analysis"
)

type AnalysisHandler struct {
	uc analysis.UseCase
}

func NewAnalysisHandler(uc analysis.UseCase) *AnalysisHandler { return &AnalysisHandler{uc: uc} }

// Analyze sends a case recording, or a follow-up question about it, to the assistant.
// History is not kept server-side: clients re-send previousMessages on every call.
// @Summary Analyze a veterinary case recording
// @Tags    analysis
// @Accept  json
// @Produce json
// @Param   input body analysis.Request true "Transcription, patient info and optional follow-up"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /analyze-recording [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req analysis.Request
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	out, err := h.uc.Analyze(c.Context(), req)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidRequest) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, out)
}
