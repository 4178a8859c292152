package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartstudy/smartstudy-backend/services"
)

type ChatInput struct {
	Message   string `json:"message" binding:"required"`
	Subject   string `json:"subject"`
	SessionID string `json:"session_id"`
}

// Chat runs one tutoring turn against the current user's session, creating
// a session lazily when none is given.
func Chat(tutor *services.TutorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input ChatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var sessionID *uuid.UUID
		if input.SessionID != "" {
			id, err := uuid.Parse(input.SessionID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
				return
			}
			sessionID = &id
		}

		result, err := tutor.Chat(c.Request.Context(), userID, sessionID, input.Message, input.Subject)
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
				return
			}
			if errors.Is(err, services.ErrGenerationFailed) {
				log.Printf("tutor chat failed: %v", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "AI tutor is temporarily unavailable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process chat message"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetSessions lists the current user's active chat sessions, most recently
// updated first.
func GetSessions(tutor *services.TutorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		sessions, err := tutor.ListSessions(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}
