package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

// Handler handles HTTP requests for booking sessions and stored bookings.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new booking handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes mounts the form-session and tracking routes. These
// are open: customers book without accounts.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/bookings/session", h.OpenSession)
	g.GET("/bookings/session/:sessionId", h.GetSession)
	g.PATCH("/bookings/session/:sessionId", h.UpdateFields)
	g.POST("/bookings/session/:sessionId/advance", h.Advance)
	g.POST("/bookings/session/:sessionId/back", h.Retreat)
	g.POST("/bookings/session/:sessionId/submit", h.Submit)
	g.GET("/bookings/track/:trackingNumber", h.TrackByNumber)
}

// RegisterProtectedRoutes mounts the staff routes behind the JWT middleware.
func (h *Handler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:bookingId", h.GetBooking)
}

// RegisterAdminRoutes mounts the admin-only status transition route.
func (h *Handler) RegisterAdminRoutes(g *echo.Group) {
	g.PATCH("/bookings/:bookingId/status", h.UpdateStatus)
}

func (h *Handler) OpenSession(c echo.Context) error {
	var req models.OpenSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}

	view := h.svc.OpenSession(req.Profile)
	return c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetSession(c echo.Context) error {
	view, err := h.svc.SessionView(c.Param("sessionId"))
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking session not found"})
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) UpdateFields(c echo.Context) error {
	var req models.UpdateFieldsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	view, err := h.svc.UpdateFields(c.Param("sessionId"), req.Fields)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking session not found"})
	}
	return c.JSON(http.StatusOK, view)
}

// Advance runs the step gate. A rejected transition is still a 200: the view
// carries the unchanged step plus the field errors, and the console renders
// them inline.
func (h *Handler) Advance(c echo.Context) error {
	view, err := h.svc.Advance(c.Param("sessionId"))
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking session not found"})
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Retreat(c echo.Context) error {
	view, err := h.svc.Retreat(c.Param("sessionId"))
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking session not found"})
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Submit(c echo.Context) error {
	var req models.PaymentConfirmation
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	record, fieldErrs, err := h.svc.Submit(c.Request().Context(), c.Param("sessionId"), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking session not found"})
		case errors.Is(err, models.ErrNotReady):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Booking form is not on the review step"})
		case errors.Is(err, models.ErrTermsNotAccepted):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: "Terms not accepted"})
		case errors.Is(err, models.ErrMissingPaymentCode):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: "M-Pesa confirmation code is missing or invalid"})
		case errors.Is(err, models.ErrSubmissionFailed):
			// The session survives; the client retries with the same codes.
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: "Submission failed, please retry"})
		}
		c.Logger().Error("Handler.Submit: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to submit booking"})
	}
	if len(fieldErrs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: "Validation failed", Errors: fieldErrs})
	}

	return c.JSON(http.StatusCreated, record)
}

func (h *Handler) TrackByNumber(c echo.Context) error {
	record, err := h.svc.GetByTrackingNumber(c.Request().Context(), c.Param("trackingNumber"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "No booking with that tracking number"})
		}
		c.Logger().Error("Handler.TrackByNumber: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to look up tracking number"})
	}
	return c.JSON(http.StatusOK, record)
}

func (h *Handler) ListBookings(c echo.Context) error {
	page := 1
	limit := 20
	if pageStr := c.QueryParam("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	records, total, err := h.svc.ListBookings(c.Request().Context(), page, limit)
	if err != nil {
		c.Logger().Error("Handler.ListBookings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve bookings"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": records, "total": total})
}

func (h *Handler) GetBooking(c echo.Context) error {
	record, err := h.svc.GetBooking(c.Request().Context(), c.Param("bookingId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		c.Logger().Error("Handler.GetBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve booking"})
	}
	return c.JSON(http.StatusOK, record)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req models.AdminUpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.svc.UpdateStatus(c.Request().Context(), c.Param("bookingId"), req.Status); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		case errors.Is(err, models.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Unknown booking status"})
		}
		c.Logger().Error("Handler.UpdateStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update booking status"})
	}
	return c.NoContent(http.StatusNoContent)
}
