package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"herdsos/entities"
	"herdsos/pkg/hospital/repository"
)

const hospitalKey = "hospital"

// HospitalScope resolves the :id path parameter to a hospital and stores it on
// the context. Unknown or malformed ids stop the request with 404/400.
func HospitalScope(repo repository.HospitalRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hospital id"})
			}
			h, err := repo.FindByID(c.Request().Context(), uint(id))
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "hospital not found"})
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			c.Set(hospitalKey, h)
			return next(c)
		}
	}
}

// Hospital returns the hospital loaded by HospitalScope, or nil.
func Hospital(c echo.Context) *entities.Hospital {
	h, _ := c.Get(hospitalKey).(*entities.Hospital)
	return h
}
