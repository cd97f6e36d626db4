// ABOUTME: Handlers for habits, mindset lessons, quotes, courses, onboarding and profile.
// ABOUTME: Request bodies are validated here; domain rules live in the today service.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/dto"
	"github.com/harperreed/recomp/internal/today"
)

func (s *Server) listHabits(c *gin.Context) {
	habits, err := s.svc.ListHabits(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": dto.HabitDetails(habits)})
}

type habitRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	DopamineType *string `json:"dopamineType"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
}

func (s *Server) createHabit(c *gin.Context) {
	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	h, err := s.svc.CreateHabit(c.Request.Context(), userID(c), today.HabitInput{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		Category:     req.Category,
		DopamineType: req.DopamineType,
		Icon:         req.Icon,
		Color:        req.Color,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": dto.HabitDetail(h)})
}

func (s *Server) deleteHabit(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		badRequest(c, "Habit ID required")
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		notFound(c, "Habit not found")
		return
	}
	if err := s.svc.DeleteHabit(c.Request.Context(), userID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) getMindset(c *gin.Context) {
	v, err := s.svc.MindsetToday(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MindsetToday(v))
}

func (s *Server) completeLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		notFound(c, "Lesson progress not found")
		return
	}
	v, err := s.svc.CompleteLesson(c.Request.Context(), userID(c), lessonID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MindsetToday(v))
}

func (s *Server) listQuotes(c *gin.Context) {
	q := today.QuoteQuery{Random: c.Query("random") == "true"}
	if cat := c.Query("category"); cat != "" {
		q.Category = &cat
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Limit = n
		}
	}

	quotes, err := s.svc.Quotes(c.Request.Context(), userID(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": dto.Quotes(quotes)})
}

type quoteRequest struct {
	QuoteID string `json:"quoteId"`
	Action  string `json:"action"`
}

func (s *Server) saveQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.QuoteID == "" {
		badRequest(c, "Quote ID required")
		return
	}
	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		notFound(c, "Quote not found")
		return
	}

	if req.Action == "unsave" {
		err = s.svc.UnsaveQuote(c.Request.Context(), userID(c), quoteID)
	} else {
		err = s.svc.SaveQuote(c.Request.Context(), userID(c), quoteID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) listCourses(c *gin.Context) {
	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	courses, err := s.svc.Courses(c.Request.Context(), userID(c), category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": dto.Courses(courses)})
}

func (s *Server) getCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		notFound(c, "Course not found")
		return
	}
	course, err := s.svc.Course(c.Request.Context(), userID(c), courseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CourseDetail(course))
}

type courseProgressRequest struct {
	ModuleIndex *int `json:"moduleIndex"`
	Completed   bool `json:"completed"`
}

func (s *Server) updateCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		notFound(c, "Course not found")
		return
	}
	var req courseProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.ModuleIndex == nil {
		badRequest(c, "Module index is required")
		return
	}

	p, err := s.svc.UpdateCourseProgress(c.Request.Context(), userID(c), courseID, *req.ModuleIndex, req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"currentModule": p.CurrentModule,
		"isCompleted":   p.IsCompleted,
	})
}

type onboardingRequest struct {
	Height               flexFloat `json:"height"`
	Weight               flexFloat `json:"weight"`
	TargetWeight         flexFloat `json:"targetWeight"`
	Age                  flexFloat `json:"age"`
	Gender               *string   `json:"gender"`
	ActivityLevel        *string   `json:"activityLevel"`
	FitnessGoal          *string   `json:"fitnessGoal"`
	ExperienceLevel      *string   `json:"experienceLevel"`
	WorkoutDays          flexFloat `json:"workoutDays"`
	PreferredWorkoutTime *string   `json:"preferredWorkoutTime"`
}

func (s *Server) onboard(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	_, err := s.svc.Onboard(c.Request.Context(), userID(c), today.OnboardingInput{
		Height:               req.Height.ptr(),
		Weight:               req.Weight.ptr(),
		TargetWeight:         req.TargetWeight.ptr(),
		Age:                  req.Age.intPtr(),
		Gender:               req.Gender,
		ActivityLevel:        req.ActivityLevel,
		FitnessGoal:          req.FitnessGoal,
		ExperienceLevel:      req.ExperienceLevel,
		WorkoutDays:          req.WorkoutDays.intPtr(),
		PreferredWorkoutTime: req.PreferredWorkoutTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) getProfile(c *gin.Context) {
	v, err := s.svc.Profile(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserProfile(v))
}
