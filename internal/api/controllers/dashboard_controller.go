package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"edupath/internal/models/response_models"
	"edupath/internal/services"
	"edupath/pkg/utils"
)

const (
	defaultDashboardDays     = 30
	defaultDashboardTimezone = "Asia/Kolkata"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Description KPIs, sign-up and quiz series, stream mix and top college cities
// @Tags Admin
// @Produce json
// @Param start     query string false "RFC3339 start"
// @Param end       query string false "RFC3339 end"
// @Param last_days query int    false "Lookback in days, instead of start/end"
// @Param interval  query string false "day | week | month"
// @Param tz        query string false "IANA timezone for buckets"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	rng, err := dashboardRange(c, time.Now().UTC())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := d.dashboardService.BuildDashboard(c.Request.Context(), rng)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}

// dashboardRange reads either last_days or a start/end pair. Missing bounds
// default to the last 30 days ending now; reversed bounds are swapped.
func dashboardRange(c *gin.Context, now time.Time) (response_models.TimeRange, error) {
	rng := response_models.TimeRange{
		Interval: c.DefaultQuery("interval", "day"),
		Timezone: c.DefaultQuery("tz", defaultDashboardTimezone),
	}
	switch rng.Interval {
	case "day", "week", "month":
	default:
		return rng, errors.New("interval must be day, week or month")
	}

	lastDays, startRaw, endRaw := c.Query("last_days"), c.Query("start"), c.Query("end")
	if lastDays != "" {
		if startRaw != "" || endRaw != "" {
			return rng, errors.New("use either last_days or start/end")
		}
		days, err := strconv.Atoi(lastDays)
		if err != nil || days <= 0 {
			return rng, errors.New("last_days must be a positive integer")
		}
		rng.End = now
		rng.Start = now.AddDate(0, 0, -days)
		return rng, nil
	}

	var err error
	if startRaw != "" {
		if rng.Start, err = time.Parse(time.RFC3339, startRaw); err != nil {
			return rng, errors.New("start must be an RFC3339 timestamp")
		}
	}
	if endRaw != "" {
		if rng.End, err = time.Parse(time.RFC3339, endRaw); err != nil {
			return rng, errors.New("end must be an RFC3339 timestamp")
		}
	}
	if rng.End.IsZero() {
		rng.End = now
	}
	if rng.Start.IsZero() {
		rng.Start = rng.End.AddDate(0, 0, -defaultDashboardDays)
	}
	if rng.Start.After(rng.End) {
		rng.Start, rng.End = rng.End, rng.Start
	}
	return rng, nil
}
