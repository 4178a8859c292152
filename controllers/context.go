package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// currentUserID reads the authenticated principal set by the auth
// middleware. Writes a 401 and returns false when absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return uuid.Nil, false
	}
	return userID, true
}

// mustJSON encodes values that cannot fail to marshal (plain slices of
// strings and numbers).
func mustJSON(v interface{}) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return raw
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
