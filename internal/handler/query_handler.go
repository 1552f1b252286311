package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gpstrack/geolife-backend-go/internal/service"
	"github.com/gpstrack/geolife-backend-go/pkg/response"
)

// QueryHandler handles HTTP requests for the analytical queries
type QueryHandler struct {
	queryService *service.QueryService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// GetRecordCounts handles GET /api/v1/stats/counts
func (h *QueryHandler) GetRecordCounts(c *gin.Context) {
	counts, err := h.queryService.RecordCounts()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, counts)
}

// GetAverageActivities handles GET /api/v1/stats/average-activities
func (h *QueryHandler) GetAverageActivities(c *gin.Context) {
	averages, err := h.queryService.AverageActivities()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, averages)
}

// GetTopActiveUsers handles GET /api/v1/users/top
func (h *QueryHandler) GetTopActiveUsers(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "20"))
	if err != nil || n < 1 {
		response.BadRequest(c, "Invalid n parameter")
		return
	}

	users, err := h.queryService.TopActiveUsers(n)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, users)
}

// GetYearWithMostActivities handles GET /api/v1/years/most-activities
func (h *QueryHandler) GetYearWithMostActivities(c *gin.Context) {
	year, err := h.queryService.YearWithMostActivities()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, year)
}

// GetYearWithMostHours handles GET /api/v1/years/most-hours
func (h *QueryHandler) GetYearWithMostHours(c *gin.Context) {
	year, err := h.queryService.YearWithMostHours()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, year)
}

// GetTopElevationGain handles GET /api/v1/users/elevation-gain
func (h *QueryHandler) GetTopElevationGain(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "20"))
	if err != nil || n < 1 {
		response.BadRequest(c, "Invalid n parameter")
		return
	}

	gains, err := h.queryService.TopElevationGain(n)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gains)
}

// GetInvalidActivities handles GET /api/v1/users/invalid-activities
func (h *QueryHandler) GetInvalidActivities(c *gin.Context) {
	counts, err := h.queryService.InvalidActivityCounts()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, counts)
}

// GetGeofenceUsers handles GET /api/v1/users/geofence
func (h *QueryHandler) GetGeofenceUsers(c *gin.Context) {
	users, err := h.queryService.GeofenceUsers()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, users)
}

// GetMostUsedModes handles GET /api/v1/users/modes
func (h *QueryHandler) GetMostUsedModes(c *gin.Context) {
	modes, err := h.queryService.MostUsedModePerUser()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, modes)
}

// GetModeCounts handles GET /api/v1/modes
func (h *QueryHandler) GetModeCounts(c *gin.Context) {
	counts, err := h.queryService.ModeCounts()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, counts)
}

// GetUsersByMode handles GET /api/v1/modes/:mode/users
func (h *QueryHandler) GetUsersByMode(c *gin.Context) {
	users, err := h.queryService.UsersByMode(c.Param("mode"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, users)
}

// GetDistanceWalked handles GET /api/v1/users/:id/distance-walked
func (h *QueryHandler) GetDistanceWalked(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", "2008"))
	if err != nil {
		response.BadRequest(c, "Invalid year parameter")
		return
	}

	distance, err := h.queryService.DistanceWalked(c.Param("id"), year)
	if errors.Is(err, service.ErrUserNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, distance)
}
