package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"herdsos/pkg/cow/repository"
)

type CowCtrl struct{ repo repository.CowRepository }

func New(repo repository.CowRepository) *CowCtrl { return &CowCtrl{repo} }

func (h *CowCtrl) List(c echo.Context) error {
	out, err := h.repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// Get backs the report form a QR code on the cow links to.
func (h *CowCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cow id"})
	}
	cow, err := h.repo.FindByID(c.Request().Context(), uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "cow not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, cow)
}
