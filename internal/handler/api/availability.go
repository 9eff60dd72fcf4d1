package api

import (
	"errors"
	"net/http"

	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Get availability
// @Description Per-day availability calendar for a product over [from, to)
// @Tags availability
// @Produce json
// @Param id path string true "Product ID"
// @Param from query string true "Start date (inclusive, YYYY-MM-DD)"
// @Param to query string true "End date (exclusive, YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /products/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID format", nil)
		return
	}

	var query reqdto.AvailabilityQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "from and to query parameters are required", nil)
		return
	}
	from, to, err := query.ParseRange()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.availabilityQueries.GetAvailability(c.Request.Context(), productID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidRange), errors.Is(err, errs.ErrInvalidRequest):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
