package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/service"
)

// Push command tags understood by the remote store.
const (
	CmdUpdateProfile = "updateProfile"
	CmdAddMeal       = "addMeal"
	CmdDeleteMeal    = "deleteMeal"
	CmdAddWorkout    = "addWorkout"
	CmdDeleteWorkout = "deleteWorkout"
	CmdUpdateWater   = "updateWater"
)

// Server is the remote sync store's HTTP surface. The device identifier,
// taken from the X-Device-ID header (or device_id query parameter), is the
// sole tenancy boundary: every store operation resolves it to a user row and
// scopes all reads and writes to that row.
type Server struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

func New(sqldb *sql.DB, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{db: sqldb, log: log, now: time.Now}
}

// Router builds the gin engine with all sync routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/sync")
	api.GET("/pull", s.handlePull)
	api.POST("/push", s.handlePush)
	return router
}

type pushRequest struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload"`
}

type deletePayload struct {
	ID string `json:"id"`
}

type waterPayload struct {
	Date   string  `json:"date,omitempty"`
	Liters float64 `json:"liters"`
}

func (s *Server) handlePull(c *gin.Context) {
	deviceID := deviceIDFrom(c)
	if deviceID == "" {
		apiError(c, http.StatusBadRequest, "device id is required")
		return
	}
	snapshot, err := service.Pull(s.db, deviceID, s.now(), c.Query("date"))
	if err != nil {
		s.fail(c, "pull", deviceID, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handlePush(c *gin.Context) {
	deviceID := deviceIDFrom(c)
	if deviceID == "" {
		apiError(c, http.StatusBadRequest, "device id is required")
		return
	}
	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Command {
	case CmdUpdateProfile:
		var p model.UserProfile
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			apiError(c, http.StatusBadRequest, "invalid profile payload")
			return
		}
		if err := service.UpdateProfile(s.db, deviceID, p); err != nil {
			s.fail(c, req.Command, deviceID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case CmdAddMeal:
		var m model.Meal
		if err := json.Unmarshal(req.Payload, &m); err != nil {
			apiError(c, http.StatusBadRequest, "invalid meal payload")
			return
		}
		id, err := service.AddMeal(s.db, deviceID, m)
		if err != nil {
			s.fail(c, req.Command, deviceID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})

	case CmdDeleteMeal:
		var p deletePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.ID == "" {
			apiError(c, http.StatusBadRequest, "invalid delete payload")
			return
		}
		if err := service.DeleteMeal(s.db, deviceID, p.ID); err != nil {
			s.fail(c, req.Command, deviceID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case CmdAddWorkout:
		var w model.WorkoutEntry
		if err := json.Unmarshal(req.Payload, &w); err != nil {
			apiError(c, http.StatusBadRequest, "invalid workout payload")
			return
		}
		id, err := service.AddWorkout(s.db, deviceID, w)
		if err != nil {
			s.fail(c, req.Command, deviceID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})

	case CmdDeleteWorkout:
		var p deletePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.ID == "" {
			apiError(c, http.StatusBadRequest, "invalid delete payload")
			return
		}
		if err := service.DeleteWorkout(s.db, deviceID, p.ID); err != nil {
			s.fail(c, req.Command, deviceID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case CmdUpdateWater:
		var p waterPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			apiError(c, http.StatusBadRequest, "invalid water payload")
			return
		}
		date := p.Date
		if date == "" {
			date = model.DateKey(s.now())
		}
		if err := service.UpsertWater(s.db, deviceID, date, p.Liters); err != nil {
			s.fail(c, req.Command, deviceID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	default:
		apiError(c, http.StatusBadRequest, "unrecognized command "+req.Command)
	}
}

// fail maps a store error onto the wire classification: client-error for
// invalid input, not-found for an unknown user, server-error for storage
// failures.
func (s *Server) fail(c *gin.Context, op, deviceID string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		apiError(c, http.StatusNotFound, "unknown user")
	default:
		s.log.Error("sync operation failed",
			zap.String("op", op),
			zap.String("device_id", deviceID),
			zap.Error(err))
		apiError(c, http.StatusInternalServerError, "storage failure")
	}
}

func deviceIDFrom(c *gin.Context) string {
	if id := c.GetHeader("X-Device-ID"); id != "" {
		return id
	}
	return c.Query("device_id")
}

func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
