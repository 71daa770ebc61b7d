package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleetstats-service/internal/http/middleware"
	"fleetstats-service/internal/model"
	"fleetstats-service/internal/service"
)

type Handler struct {
	statistics *service.StatisticsService
	log        zerolog.Logger
}

func NewHandler(statistics *service.StatisticsService, log zerolog.Logger) *Handler {
	return &Handler{statistics: statistics, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/statistics")
	protected.Use(authMiddleware)

	protected.GET("", h.getSnapshot)
	protected.PUT("/period", h.setPeriod)
	protected.POST("/refresh", h.refresh)
	protected.GET("/vehicles", h.listVehicles)
	protected.GET("/customers", h.listCustomers)
	protected.GET("/employees", h.listEmployees)
}

func (h *Handler) getSnapshot(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	snapshot, err := h.statistics.Snapshot(principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(snapshot))
}

type periodRequest struct {
	Kind  string `json:"kind"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

func (h *Handler) setPeriod(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req periodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid period payload"))
		return
	}

	period := model.Period{
		Kind:  parseRangeKind(req.Kind),
		Year:  req.Year,
		Month: time.Month(req.Month),
	}

	if err := h.statistics.SetPeriod(principal, period); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, successResponse(period))
}

func (h *Handler) refresh(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.statistics.Refresh(c.Request.Context(), principal); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}

func (h *Handler) listVehicles(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	order, reveal := parseLeaderboardQuery(c)
	vehicles, err := h.statistics.VehicleLeaderboard(principal, order, reveal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) listCustomers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	order, reveal := parseLeaderboardQuery(c)
	customers, err := h.statistics.CustomerLeaderboard(principal, order, reveal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(customers))
}

func (h *Handler) listEmployees(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	order, reveal := parseLeaderboardQuery(c)
	employees, err := h.statistics.EmployeeLeaderboard(principal, order, reveal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employees))
}

func parseLeaderboardQuery(c *gin.Context) (order string, reveal bool) {
	order = strings.ToLower(strings.TrimSpace(c.Query("order")))
	if revealStr := strings.TrimSpace(c.Query("reveal")); revealStr != "" {
		if parsed, err := strconv.ParseBool(revealStr); err == nil {
			reveal = parsed
		}
	}
	return order, reveal
}

func parseRangeKind(kind string) model.RangeKind {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "year":
		return model.RangeYear
	case "all":
		return model.RangeAll
	default:
		return model.RangeMonth
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnknownLeaderboard):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
