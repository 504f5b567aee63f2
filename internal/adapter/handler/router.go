package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// ServiceStatus reports whether an external dependency is usable
type ServiceStatus interface {
	Configured() bool
}

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingHandler    *Meeting
	actionItemHandler *ActionItem
	reportHandler     *Report
	gatherer          prometheus.Gatherer
	services          map[string]ServiceStatus
}

// RouterOption configures optional router endpoints
type RouterOption func(*Router)

// WithMetrics exposes the gatherer on /metrics
func WithMetrics(g prometheus.Gatherer) RouterOption {
	return func(rt *Router) { rt.gatherer = g }
}

// WithService adds an external service to the /health report
func WithService(name string, s ServiceStatus) RouterOption {
	return func(rt *Router) { rt.services[name] = s }
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, actionItemHandler *ActionItem, reportHandler *Report, opts ...RouterOption) *Router {
	rt := &Router{
		cfg:               cfg,
		meetingHandler:    meetingHandler,
		actionItemHandler: actionItemHandler,
		reportHandler:     reportHandler,
		services:          make(map[string]ServiceStatus),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupActionItemRoutes(v1)
	rt.setupReportRoutes(v1)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("", rt.meetingHandler.UploadMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/search/:query", rt.meetingHandler.SearchMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PATCH("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.GET("/:id/action-items", rt.meetingHandler.ListMeetingActionItems)
	meetings.GET("/:id/summary", rt.meetingHandler.GetMeetingSummary)
	meetings.GET("/:id/topics", rt.meetingHandler.GetMeetingTopics)
}

// setupActionItemRoutes configures action item routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	items := g.Group("/action-items")

	items.GET("", rt.actionItemHandler.ListActionItems)
	items.GET("/pending", rt.actionItemHandler.ListPendingActionItems)
	items.POST("", rt.actionItemHandler.CreateActionItem)
	items.GET("/:id", rt.actionItemHandler.GetActionItem)
	items.PATCH("/:id", rt.actionItemHandler.UpdateActionItem)
	items.DELETE("/:id", rt.actionItemHandler.DeleteActionItem)
}

// setupReportRoutes configures analytics and export routes
func (rt *Router) setupReportRoutes(g *echo.Group) {
	g.GET("/analytics", rt.reportHandler.GetAnalytics)

	export := g.Group("/export")
	export.GET("/meetings", rt.reportHandler.ExportMeetings)
	export.GET("/action-items", rt.reportHandler.ExportActionItems)
}

// healthCheck returns health status
// @Summary      Health check
// @Description  Liveness plus whether the speech and language model services are configured
// @Tags         System
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	services := make(map[string]string, len(rt.services))
	for name, s := range rt.services {
		status := "unconfigured"
		if s != nil && s.Configured() {
			status = "configured"
		}
		services[name] = status
	}

	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}

	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:      "ok",
		Environment: env,
		Services:    services,
	})
}
