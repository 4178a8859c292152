package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/models"
)

type (
	ActivityItem struct {
		Type    string  `json:"type"`
		Title   string  `json:"title"`
		Subject string  `json:"subject"`
		Score   float64 `json:"score"`
		Date    string  `json:"date"`
	}

	SubjectProgress struct {
		Subject      string  `json:"subject"`
		MasteryLevel float64 `json:"mastery_level"`
		StudyTime    int64   `json:"study_time"`
	}

	WeeklyPoint struct {
		Week             string  `json:"week"`
		QuizzesCompleted int64   `json:"quizzes_completed"`
		AverageScore     float64 `json:"average_score"`
	}

	DashboardStats struct {
		TotalQuizzes      int64             `json:"total_quizzes"`
		TotalStudyTime    int64             `json:"total_study_time"`
		AverageScore      float64           `json:"average_score"`
		SubjectsStudied   int64             `json:"subjects_studied"`
		RecentActivity    []ActivityItem    `json:"recent_activity"`
		ProgressBySubject []SubjectProgress `json:"progress_by_subject"`
		WeeklyProgress    []WeeklyPoint     `json:"weekly_progress"`
	}
)

// ProgressService computes read-only snapshots of a user's learning
// activity. Every sub-aggregate re-scans the store at call time; a failing
// sub-aggregate falls back to its zero value instead of failing the whole
// snapshot.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// GetDashboardStats rolls up attempts and progress rows into the dashboard
// snapshot as of now.
func (s *ProgressService) GetDashboardStats(userID uuid.UUID) DashboardStats {
	now := time.Now()

	var totalQuizzes int64
	s.db.Model(&models.QuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&totalQuizzes)

	var totalStudyTime int64
	s.db.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(study_time), 0)").
		Scan(&totalStudyTime)

	var averageScore float64
	s.db.Model(&models.QuizAttempt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&averageScore)

	var subjectsStudied int64
	s.db.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Distinct("subject").
		Count(&subjectsStudied)

	return DashboardStats{
		TotalQuizzes:      totalQuizzes,
		TotalStudyTime:    totalStudyTime,
		AverageScore:      round2(averageScore),
		SubjectsStudied:   subjectsStudied,
		RecentActivity:    s.recentActivity(userID, now),
		ProgressBySubject: s.progressBySubject(userID),
		WeeklyProgress:    s.weeklyProgress(userID, now),
	}
}

// recentActivity projects the 10 most recent attempts from the trailing
// 7-day window. The LEFT JOIN keeps attempts whose quiz has disappeared;
// title and subject fall back to empty strings.
func (s *ProgressService) recentActivity(userID uuid.UUID, now time.Time) []ActivityItem {
	var rows []struct {
		Title     string
		Subject   string
		Score     float64
		CreatedAt time.Time
	}
	s.db.Raw(`
		SELECT COALESCE(q.title, '') AS title,
		       COALESCE(q.subject, '') AS subject,
		       qa.score, qa.created_at
		FROM quiz_attempts qa
		LEFT JOIN quizzes q ON q.id = qa.quiz_id
		WHERE qa.user_id = ? AND qa.created_at >= ?
		ORDER BY qa.created_at DESC
		LIMIT 10
	`, userID, now.AddDate(0, 0, -7)).Scan(&rows)

	activity := make([]ActivityItem, 0, len(rows))
	for _, r := range rows {
		activity = append(activity, ActivityItem{
			Type:    "quiz_completed",
			Title:   r.Title,
			Subject: r.Subject,
			Score:   r.Score,
			Date:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return activity
}

func (s *ProgressService) progressBySubject(userID uuid.UUID) []SubjectProgress {
	var rows []struct {
		Subject   string
		Mastery   float64
		StudyTime int64
	}
	s.db.Model(&models.Progress{}).
		Select("subject, COALESCE(AVG(mastery_level), 0) AS mastery, COALESCE(SUM(study_time), 0) AS study_time").
		Where("user_id = ?", userID).
		Group("subject").
		Order("subject").
		Scan(&rows)

	progress := make([]SubjectProgress, 0, len(rows))
	for _, r := range rows {
		progress = append(progress, SubjectProgress{
			Subject:      r.Subject,
			MasteryLevel: round2(r.Mastery),
			StudyTime:    r.StudyTime,
		})
	}
	return progress
}

// weeklyProgress always returns exactly 4 points covering the disjoint
// rolling windows [now-(i+1)*7d, now-i*7d), newest window ("Week 4") first.
func (s *ProgressService) weeklyProgress(userID uuid.UUID, now time.Time) []WeeklyPoint {
	weekly := make([]WeeklyPoint, 0, 4)
	for i := 0; i < 4; i++ {
		weekStart := now.AddDate(0, 0, -(i+1)*7)
		weekEnd := now.AddDate(0, 0, -i*7)

		var row struct {
			Count int64
			Avg   float64
		}
		s.db.Model(&models.QuizAttempt{}).
			Select("COUNT(id) AS count, COALESCE(AVG(score), 0) AS avg").
			Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, weekStart, weekEnd).
			Scan(&row)

		weekly = append(weekly, WeeklyPoint{
			Week:             fmt.Sprintf("Week %d", 4-i),
			QuizzesCompleted: row.Count,
			AverageScore:     round2(row.Avg),
		})
	}
	return weekly
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
