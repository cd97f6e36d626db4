// ABOUTME: HTTP API exposing a user's daily state under /api/me.
// ABOUTME: Built on gin with bearer-token auth, request logging and uniform error bodies.
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/recomp/internal/auth"
	"github.com/harperreed/recomp/internal/logging"
	"github.com/harperreed/recomp/internal/today"
)

const userIDKey = "userID"

// Server routes HTTP requests to the today service.
type Server struct {
	svc    *today.Service
	signer *auth.Signer
}

// NewServer creates a Server.
func NewServer(svc *today.Service, signer *auth.Signer) *Server {
	return &Server{svc: svc, signer: signer}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	me := r.Group("/api/me")
	me.Use(s.authenticate())
	{
		me.GET("/journey/today", s.getJourney)
		me.GET("/today", s.getToday)

		me.GET("/workout/today", s.getWorkout)
		me.GET("/workouts/today", s.getWorkout)
		me.PATCH("/workouts/:sessionId", s.patchWorkout)

		me.GET("/nutrition/today", s.getNutrition)
		me.POST("/nutrition/today/log", s.logMeal)
		me.PATCH("/nutrition/today/log", s.logMeal)
		me.GET("/nutrition/today/water", s.getWater)
		me.POST("/nutrition/today/water", s.logWater)

		me.GET("/dopamine/today", s.getDopamine)
		me.POST("/dopamine/log", s.logHabit)

		me.GET("/habits", s.listHabits)
		me.POST("/habits", s.createHabit)
		me.DELETE("/habits", s.deleteHabit)

		me.GET("/mindset/today", s.getMindset)
		me.PATCH("/mindset/:lessonId/complete", s.completeLesson)

		me.GET("/quotes", s.listQuotes)
		me.POST("/quotes", s.saveQuote)

		me.GET("/courses", s.listCourses)
		me.GET("/courses/:courseId", s.getCourse)
		me.POST("/courses/:courseId", s.updateCourse)

		me.POST("/onboarding", s.onboard)
		me.GET("/profile", s.getProfile)
	}
	return r
}

// authenticate verifies the bearer token and registers the caller.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		id, err := s.signer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logging.Debug("rejected token", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := s.svc.EnsureUser(c.Request.Context(), id.UserID, id.Email, id.Name); err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, id.UserID)
		c.Next()
	}
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		keyvals := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		if status >= http.StatusInternalServerError {
			logging.Warn("request", keyvals...)
			return
		}
		logging.Info("request", keyvals...)
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// writeError maps service errors onto status codes. Unclassified errors are
// logged and reported as a generic 500.
func writeError(c *gin.Context, err error) {
	var svcErr *today.Error
	if errors.As(err, &svcErr) {
		switch {
		case errors.Is(svcErr.Kind, today.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": svcErr.Msg})
			return
		case errors.Is(svcErr.Kind, today.ErrBadRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": svcErr.Msg})
			return
		}
	}

	logging.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}
