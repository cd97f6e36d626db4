// ABOUTME: Handlers for the per-day records: journey, workout, nutrition, water and dopamine.
// ABOUTME: Each GET provisions the day's record on first access.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/dto"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/today"
)

func (s *Server) getJourney(c *gin.Context) {
	j, err := s.svc.Journey(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Journey(j))
}

func (s *Server) getToday(c *gin.Context) {
	b, err := s.svc.Today(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodayBundle(b))
}

func (s *Server) getWorkout(c *gin.Context) {
	w, err := s.svc.WorkoutToday(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkoutSession(w))
}

type setUpdateRequest struct {
	SetID       string   `json:"setId"`
	Weight      *float64 `json:"weight"`
	Reps        *int     `json:"reps"`
	RPE         *float64 `json:"rpe"`
	IsCompleted *bool    `json:"isCompleted"`
	Notes       *string  `json:"notes"`
}

type workoutPatchRequest struct {
	Status *string            `json:"status"`
	Notes  *string            `json:"notes"`
	Sets   []setUpdateRequest `json:"sets"`
}

func (s *Server) patchWorkout(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		notFound(c, "Workout session not found")
		return
	}

	var req workoutPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	upd := today.WorkoutUpdate{Status: req.Status, Notes: req.Notes}
	for _, sr := range req.Sets {
		su := models.SetUpdate{
			Weight:      sr.Weight,
			Reps:        sr.Reps,
			RPE:         sr.RPE,
			IsCompleted: sr.IsCompleted,
			Notes:       sr.Notes,
		}
		if sr.SetID != "" {
			id, err := uuid.Parse(sr.SetID)
			if err != nil {
				notFound(c, "Set "+sr.SetID+" not found in this workout")
				return
			}
			su.SetID = id
		}
		upd.Sets = append(upd.Sets, su)
	}

	w, err := s.svc.UpdateWorkout(c.Request.Context(), userID(c), sessionID, upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkoutSession(w))
}

func (s *Server) getNutrition(c *gin.Context) {
	p, err := s.svc.NutritionToday(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NutritionPlan(p))
}

type mealRequest struct {
	MealType    string  `json:"mealType"`
	Description *string `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

func (s *Server) logMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	p, err := s.svc.LogMeal(c.Request.Context(), userID(c), today.MealInput{
		MealType:    req.MealType,
		Description: req.Description,
		Macros:      models.Macros{Calories: req.Calories, Protein: req.Protein, Carbs: req.Carbs, Fat: req.Fat},
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NutritionPlan(p))
}

func (s *Server) getWater(c *gin.Context) {
	v, err := s.svc.Water(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Water(v))
}

func (s *Server) logWater(c *gin.Context) {
	var req struct {
		Amount flexFloat `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Valid amount required")
		return
	}

	entry, total, err := s.svc.LogWater(c.Request.Context(), userID(c), req.Amount.value())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"log":         dto.WaterLog(entry),
		"totalLiters": total,
	})
}

func (s *Server) getDopamine(c *gin.Context) {
	v, err := s.svc.DopamineToday(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DopamineDaily(v))
}

type logHabitRequest struct {
	HabitID       string  `json:"habitId"`
	Notes         *string `json:"notes"`
	SwapFromLogID *string `json:"swapFromLogId"`
}

func (s *Server) logHabit(c *gin.Context) {
	var req logHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.HabitID == "" {
		badRequest(c, "Habit ID is required")
		return
	}
	habitID, err := uuid.Parse(req.HabitID)
	if err != nil {
		notFound(c, "Habit not found")
		return
	}

	in := today.LogHabitInput{HabitID: habitID, Notes: req.Notes}
	if req.SwapFromLogID != nil {
		// An unparseable reference simply earns no swap bonus.
		if ref, err := uuid.Parse(*req.SwapFromLogID); err == nil {
			in.SwapFromLogID = &ref
		}
	}

	v, err := s.svc.LogHabit(c.Request.Context(), userID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DopamineDaily(v))
}
