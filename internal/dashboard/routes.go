package dashboard

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zulandar/habitline/internal/ledger"
	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/pin"
	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/stats"
	"github.com/zulandar/habitline/internal/tracker"
	"github.com/zulandar/habitline/internal/visibility"
)

const dateLayout = "2006-01-02"

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/healthz", handleHealth(db))

	api := router.Group("/api")
	api.GET("/day", handleDay(db))
	api.GET("/trackers", handleTrackerList(db))
	api.POST("/trackers", handleTrackerCreate(db))
	api.PUT("/trackers/:id", handleTrackerUpdate(db))
	api.DELETE("/trackers/:id", handleTrackerDelete(db))
	api.POST("/trackers/:id/toggle", handleToggle(db))
	api.POST("/trackers/:id/pin", handlePin(db))
	api.DELETE("/trackers/:id/pin", handleUnpin(db))
	api.GET("/stats", handleStats(db))
}

// trackerJSON is the wire form of a tracker.
type trackerJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji,omitempty"`
	Color    string   `json:"color,omitempty"`
	Days     []string `json:"days"`
	Category string   `json:"category,omitempty"`
}

// trackerRequest is the body of create and update calls. Days accepts
// weekday names, short names, or numbers.
type trackerRequest struct {
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Color    string   `json:"color"`
	Days     []string `json:"days"`
	Category string   `json:"category"`
}

func toJSON(tr models.Tracker) trackerJSON {
	days := schedule.Sorted(schedule.Decode(tr.Schedule))
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Short()
	}
	return trackerJSON{
		ID:       tr.ID,
		Name:     tr.Name,
		Emoji:    tr.Emoji,
		Color:    tr.Color,
		Days:     names,
		Category: tr.Category.Title,
	}
}

func (r trackerRequest) toOpts() (tracker.Opts, error) {
	days, err := schedule.ParseDays(strings.Join(r.Days, ","))
	if err != nil {
		return tracker.Opts{}, err
	}
	return tracker.Opts{
		Name:     r.Name,
		Emoji:    r.Emoji,
		Color:    r.Color,
		Schedule: days,
		Category: r.Category,
	}, nil
}

func handleHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// handleDay returns the visible sections for one day, honoring the search
// and filter query parameters.
func handleDay(db *gorm.DB) gin.HandlerFunc {
	type dayTracker struct {
		trackerJSON
		Completed bool `json:"completed"`
	}
	type section struct {
		Title    string       `json:"title"`
		Pinned   bool         `json:"pinned,omitempty"`
		Trackers []dayTracker `json:"trackers"`
	}

	return func(c *gin.Context) {
		day, err := queryDate(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter, err := visibility.ParseFilter(c.Query("filter"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Selecting the Today filter resets the date to the clock's current
		// day; each request is a fresh selection.
		if filter == visibility.FilterToday {
			day = schedule.DayOf(time.Now())
		}

		snap, err := visibility.Load(db, day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		sections := visibility.Visible(snap, visibility.Options{
			Date:   day,
			Search: c.Query("search"),
			Filter: filter,
		})

		out := make([]section, len(sections))
		for i, s := range sections {
			trackers := make([]dayTracker, len(s.Trackers))
			for j, tr := range s.Trackers {
				trackers[j] = dayTracker{
					trackerJSON: toJSON(tr),
					Completed:   snap.Completed[tr.ID],
				}
			}
			out[i] = section{Title: s.Title, Pinned: s.Pinned, Trackers: trackers}
		}
		c.JSON(http.StatusOK, gin.H{
			"date":     day.Format(dateLayout),
			"sections": out,
		})
	}
}

func handleTrackerList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := tracker.List(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var out []trackerJSON
		for _, cat := range cats {
			for _, tr := range cat.Trackers {
				j := toJSON(tr)
				j.Category = cat.Title
				out = append(out, j)
			}
		}
		c.JSON(http.StatusOK, gin.H{"trackers": out})
	}
}

func handleTrackerCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req trackerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts, err := req.toOpts()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tr, err := tracker.Create(db, opts)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toJSON(*tr))
	}
}

func handleTrackerUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req trackerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts, err := req.toOpts()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tr, err := tracker.Update(db, c.Param("id"), opts)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toJSON(*tr))
	}
}

func handleTrackerDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := tracker.Delete(db, c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// handleToggle flips a day's completion for one tracker. Future dates are
// rejected with 409.
func handleToggle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := queryDate(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		completed, err := ledger.Toggle(db, c.Param("id"), day, time.Now())
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":        c.Param("id"),
			"date":      day.Format(dateLayout),
			"completed": completed,
		})
	}
}

func handlePin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pin.Pin(db, c.Param("id")); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleUnpin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pin.Unpin(db, c.Param("id")); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleStats(db *gorm.DB) gin.HandlerFunc {
	type trackerCount struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	return func(c *gin.Context) {
		report, err := stats.Compute(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		perTracker := make([]trackerCount, len(report.PerTracker))
		for i, tc := range report.PerTracker {
			perTracker[i] = trackerCount{ID: tc.ID, Name: tc.Name, Count: tc.Count}
		}
		c.JSON(http.StatusOK, gin.H{
			"total_completed": report.TotalCompleted,
			"perfect_days":    report.PerfectDays,
			"best_streak":     report.BestStreak,
			"average_daily":   report.AverageDaily,
			"per_tracker":     perTracker,
		})
	}
}

// queryDate parses the optional date query parameter, defaulting to today.
func queryDate(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return schedule.DayOf(time.Now()), nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrFutureDate):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrNameRequired),
		errors.Is(err, tracker.ErrNameTooLong),
		errors.Is(err, tracker.ErrEmptySchedule),
		errors.Is(err, tracker.ErrCategoryRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
