package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/models"
	"github.com/smartstudy/smartstudy-backend/services"
)

// GetDashboard returns the aggregated learning snapshot for the current
// user.
func GetDashboard(progress *services.ProgressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, progress.GetDashboardStats(userID))
	}
}

// GetProgress lists the current user's progress records, optionally
// filtered by subject.
func GetProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := db.Where("user_id = ?", userID)
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var records []models.Progress
	if err := query.Order("updated_at DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch progress"})
		return
	}
	c.JSON(http.StatusOK, records)
}

type CreateProgressInput struct {
	Subject      string  `json:"subject" binding:"required"`
	Topic        string  `json:"topic" binding:"required"`
	MasteryLevel float64 `json:"mastery_level" binding:"gte=0,lte=1"`
	StudyTime    int     `json:"study_time" binding:"gte=0"`
}

func CreateProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := models.Progress{
		UserID:       userID,
		Subject:      input.Subject,
		Topic:        input.Topic,
		MasteryLevel: input.MasteryLevel,
		StudyTime:    input.StudyTime,
		QuizScores:   []byte("[]"),
		Strengths:    []byte("[]"),
		Weaknesses:   []byte("[]"),
	}
	if err := db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create progress record"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

type UpdateProgressInput struct {
	MasteryLevel *float64  `json:"mastery_level" binding:"omitempty,gte=0,lte=1"`
	StudyTime    *int      `json:"study_time" binding:"omitempty,gte=0"`
	QuizScores   []float64 `json:"quiz_scores"`
	Strengths    []string  `json:"strengths"`
	Weaknesses   []string  `json:"weaknesses"`
	LastStudied  *string   `json:"last_studied"` // YYYY-MM-DD
}

// UpdateProgress updates only the provided fields on a record owned by the
// current user. Concurrent updates are last-write-wins.
func UpdateProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	progressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid progress id"})
		return
	}

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.Progress
	if err := db.Where("id = ? AND user_id = ?", progressID, userID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Progress record not found"})
		return
	}

	if input.MasteryLevel != nil {
		record.MasteryLevel = *input.MasteryLevel
	}
	if input.StudyTime != nil {
		record.StudyTime = *input.StudyTime
	}
	if input.QuizScores != nil {
		record.QuizScores = mustJSON(input.QuizScores)
	}
	if input.Strengths != nil {
		record.Strengths = mustJSON(input.Strengths)
	}
	if input.Weaknesses != nil {
		record.Weaknesses = mustJSON(input.Weaknesses)
	}
	if input.LastStudied != nil {
		t, err := parseDate(*input.LastStudied)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "last_studied must be YYYY-MM-DD"})
			return
		}
		record.LastStudied = &t
	}

	if err := db.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update progress record"})
		return
	}
	c.JSON(http.StatusOK, record)
}
