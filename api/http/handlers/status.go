package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/atlas/api/http/presenter"
	"github.com/artem13815/atlas/pkg/status"
)

type StatusHandler struct {
	uc status.UseCase
}

func NewStatusHandler(uc status.UseCase) *StatusHandler { return &StatusHandler{uc: uc} }

// ClientName must be present; any string, blank included, is stored as is.
type createStatusRequest struct {
	ClientName *string `json:"client_name" validate:"required"`
}

const errMissingClientName = "client_name is required"

// Root is a trivial reachability endpoint.
// @Summary Hello
// @Tags    status
// @Produce json
// @Success 200 {object} map[string]string
// @Router  / [get]
func (h *StatusHandler) Root(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Hello World"})
}

// Create records a status check.
// @Summary Create status check
// @Tags    status
// @Accept  json
// @Produce json
// @Param   input body createStatusRequest true "client name"
// @Success 200 {object} status.Check
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /status [post]
func (h *StatusHandler) Create(c *fiber.Ctx) error {
	var req createStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.ClientName == nil {
		return presenter.Error(c, http.StatusBadRequest, errMissingClientName)
	}
	out, err := h.uc.Create(c.Context(), *req.ClientName)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save status check")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List returns recorded status checks, oldest first.
// @Summary List status checks
// @Tags    status
// @Produce json
// @Param   limit  query int false "page size (1-1000)"
// @Param   offset query int false "checks to skip"
// @Success 200 {array} status.Check
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /status [get]
func (h *StatusHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, status.MaxListLimit, status.MaxListLimit)
	items, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list status checks")
	}
	return presenter.JSON(c, http.StatusOK, items)
}
