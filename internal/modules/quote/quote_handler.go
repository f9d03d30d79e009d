package quote

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/rates"
)

// Handler serves the public quote endpoint.
type Handler struct {
	table    *rates.Table
	validate *validator.Validate
}

// NewHandler creates a new quote handler.
func NewHandler(table *rates.Table) *Handler {
	return &Handler{
		table:    table,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the quote routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/quote", h.GetQuote)
}

// GetQuote prices a shipment without touching any form session. The console
// calls this for the live price preview while the user is still typing.
func (h *Handler) GetQuote(c echo.Context) error {
	var req models.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	breakdown := Compute(req.ToShipmentInput(), h.table)
	return c.JSON(http.StatusOK, breakdown)
}
