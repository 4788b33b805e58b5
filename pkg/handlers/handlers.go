package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/shift-roster-go/pkg/auth"
	"github.com/arnavshah/shift-roster-go/pkg/cache"
	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/render"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/arnavshah/shift-roster-go/pkg/validation"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB               *gorm.DB
	Auth             *auth.Authenticator
	Cache            *cache.Client
	Logger           *zap.Logger
	Options          scheduler.Options
	DefaultRateLimit int

	now func() time.Time
}

// New builds a Handler from loaded configuration. rc may be nil.
func New(cfg *config.Config, db *gorm.DB, rc *cache.Client, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Auth:   auth.New(cfg.Auth),
		Cache:  rc,
		Logger: logger,
		Options: scheduler.Options{
			MaxDaysPerWeek:       cfg.Scheduler.MaxDaysPerWeek,
			MinEmployeesPerShift: cfg.Scheduler.MinEmployeesPerShift,
		},
		DefaultRateLimit: cfg.Auth.DefaultRateLimit,
	}
}

func (h *Handler) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

func (h *Handler) rateLimit(limit int) int {
	if limit > 0 {
		return limit
	}
	if h.DefaultRateLimit > 0 {
		return h.DefaultRateLimit
	}
	return 10000
}

// scheduleRun is one finished scheduling request
type scheduleRun struct {
	roster    models.Roster
	workload  map[string]int
	response  models.ScheduleResponse
	weekStart time.Time
	employees int
}

var errBadWeekStart = errors.New("week_start must be a date formatted YYYY-MM-DD")

// runSchedule validates input, runs the three assignment passes and builds the response
func (h *Handler) runSchedule(c *gin.Context, input *models.ScheduleInput) (*scheduleRun, validation.Result, error) {
	plan, res, err := validation.Build(input)
	if err != nil {
		return nil, res, err
	}

	weekStart := h.clock()
	if input.WeekStart != "" {
		weekStart, err = time.Parse("2006-01-02", input.WeekStart)
		if err != nil {
			res.Valid = false
			res.Errors = append(res.Errors, errBadWeekStart.Error())
			return nil, res, fmt.Errorf("%w: %w", validation.ErrInvalidInput, errBadWeekStart)
		}
	}

	s := scheduler.NewScheduler(h.Options, h.Logger)
	known := make(map[string]bool, len(plan.Registrations))
	for _, reg := range plan.Registrations {
		s.Register(reg.Name, reg.Preferences)
		known[reg.Name] = true
	}
	warnings := res.Warnings
	for i, a := range plan.Prefill {
		if known[a.Employee] && !s.Prefill(a.Employee, a.Day, a.Shift) {
			warnings = append(warnings, fmt.Sprintf(
				"current_assignments[%d]: %s on %s/%s skipped, already scheduled that day or at the weekly cap",
				i, a.Employee, a.Day, a.Shift))
		}
	}
	s.Run()

	roster := s.Schedule()
	workload := s.Workload()
	run := &scheduleRun{
		roster:    roster,
		workload:  workload,
		weekStart: weekStart,
		employees: len(workload),
		response:  s.Response(uuid.NewString(), warnings),
	}

	h.Logger.Info("schedule generated",
		zap.String("run_id", run.response.RunID),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Int("employees", run.employees),
		zap.Int("assignments", roster.Assignments()),
		zap.Int("understaffed", len(run.response.Understaffed)),
		zap.Int("unmet", len(run.response.Unmet)),
	)
	return run, res, nil
}

func invalidInput(c *gin.Context, res validation.Result, err error) {
	if errors.Is(err, validation.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule input", "details": res.Errors})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, res, err := h.runSchedule(c, &input)
	if err != nil {
		invalidInput(c, res, err)
		return
	}

	h.RecordUsage(c, run.employees, run.roster.Assignments())
	c.JSON(http.StatusOK, run.response)
}

// ExportSchedule runs a schedule and returns it as a downloadable document.
// The format query parameter selects xlsx (default), ics, csv, text or json.
func (h *Handler) ExportSchedule(c *gin.Context) {
	format, err := render.ParseFormat(c.DefaultQuery("format", string(render.FormatXLSX)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, res, err := h.runSchedule(c, &input)
	if err != nil {
		invalidInput(c, res, err)
		return
	}

	var buf bytes.Buffer
	doc := render.Document{
		Roster:    run.roster,
		Workload:  run.workload,
		Response:  &run.response,
		WeekStart: run.weekStart,
	}
	if err := render.Write(&buf, format, doc); err != nil {
		h.Logger.Error("render schedule failed", zap.String("format", string(format)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render schedule"})
		return
	}

	h.RecordUsage(c, run.employees, run.roster.Assignments())
	filename := fmt.Sprintf("roster-%s.%s", run.response.RunID, format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Run-ID", run.response.RunID)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
