package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/models"
	"github.com/smartstudy/smartstudy-backend/services"
)

// GetQuizzes lists the current user's quizzes, optionally filtered by
// subject.
func GetQuizzes(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	query := db.Where("user_id = ?", userID)
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var quizzes []models.Quiz
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&quizzes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch quizzes"})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

type CreateQuizInput struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Subject     string                `json:"subject" binding:"required"`
	Difficulty  string                `json:"difficulty" binding:"required,oneof=easy medium hard"`
	TimeLimit   int                   `json:"time_limit"`
	Questions   []models.QuizQuestion `json:"questions" binding:"required"`
}

// CreateQuiz stores a manually authored quiz. Question shape is validated
// strictly here so the scoring path never sees malformed data.
func CreateQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidateQuestions(input.Questions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := json.Marshal(input.Questions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode questions"})
		return
	}

	quiz := models.Quiz{
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
		Difficulty:  input.Difficulty,
		Questions:   raw,
		TimeLimit:   input.TimeLimit,
		UserID:      userID,
	}
	if err := db.Create(&quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create quiz"})
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz fetches one quiz owned by the current user.
func GetQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	var quiz models.Quiz
	if err := db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

type UpdateQuizInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TimeLimit   *int    `json:"time_limit"`
}

// UpdateQuiz edits quiz metadata. The question list is immutable once
// attempts can reference it.
func UpdateQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	var input UpdateQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var quiz models.Quiz
	if err := db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	if input.Title != nil {
		quiz.Title = *input.Title
	}
	if input.Description != nil {
		quiz.Description = *input.Description
	}
	if input.TimeLimit != nil {
		quiz.TimeLimit = *input.TimeLimit
	}
	if err := db.Save(&quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update quiz"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

type GenerateQuizInput struct {
	Subject      string `json:"subject" binding:"required"`
	Topic        string `json:"topic" binding:"required"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

// GenerateQuiz asks the model for a quiz and persists it flagged as
// AI-generated.
func GenerateQuiz(ai *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input GenerateQuizInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Difficulty == "" {
			input.Difficulty = "medium"
		}
		if input.NumQuestions <= 0 {
			input.NumQuestions = 10
		}
		if input.NumQuestions > 20 {
			input.NumQuestions = 20
		}

		generated, err := ai.GenerateQuiz(c.Request.Context(), input.Subject, input.Topic, input.Difficulty, input.NumQuestions)
		if err != nil {
			log.Printf("quiz generation failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Quiz generation is temporarily unavailable"})
			return
		}

		raw, err := json.Marshal(generated.Questions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode questions"})
			return
		}

		quiz := models.Quiz{
			Title:         generated.Title,
			Description:   generated.Description,
			Subject:       input.Subject,
			Difficulty:    input.Difficulty,
			Questions:     raw,
			UserID:        userID,
			IsAIGenerated: true,
		}
		if err := db.Create(&quiz).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save quiz"})
			return
		}
		c.JSON(http.StatusCreated, quiz)
	}
}

type SubmitQuizInput struct {
	Answers   []int `json:"answers"`
	TimeTaken int   `json:"time_taken"`
}

// SubmitQuiz grades an answer list and records the attempt. Attempts are
// create-only; the score is derived server-side.
func SubmitQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	var input SubmitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var quiz models.Quiz
	if err := db.First(&quiz, "id = ?", quizID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	questions, err := quiz.QuestionList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode quiz questions"})
		return
	}

	score := services.CalculateScore(questions, input.Answers)

	if input.Answers == nil {
		input.Answers = []int{}
	}
	rawAnswers, _ := json.Marshal(input.Answers)

	attempt := models.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		Answers:   rawAnswers,
		Score:     score,
		TimeTaken: input.TimeTaken,
		Completed: true,
	}
	if err := db.Create(&attempt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save attempt"})
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// GetQuizAttempts lists the current user's attempts against one quiz,
// newest first.
func GetQuizAttempts(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	var attempts []models.QuizAttempt
	err = db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch attempts"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}
