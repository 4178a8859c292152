package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/models"
)

func seedUser(t *testing.T, db *gorm.DB, status models.UserStatus) uuid.UUID {
	t.Helper()
	user := models.User{
		Email:          uuid.NewString() + "@example.com",
		Username:       "u-" + uuid.NewString()[:8],
		FirstName:      "Test",
		LastName:       "User",
		HashedPassword: "x",
		Status:         status,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func seedQuiz(t *testing.T, db *gorm.DB, userID uuid.UUID, title, subject string) uuid.UUID {
	t.Helper()
	questions, _ := json.Marshal([]models.QuizQuestion{
		{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0},
	})
	quiz := models.Quiz{
		Title:      title,
		Subject:    subject,
		Difficulty: "easy",
		Questions:  questions,
		UserID:     userID,
	}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz.ID
}

func seedAttempt(t *testing.T, db *gorm.DB, userID, quizID uuid.UUID, score float64, age time.Duration) {
	t.Helper()
	attempt := models.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		Answers:   []byte("[0]"),
		Score:     score,
		TimeTaken: 60,
		Completed: true,
		CreatedAt: time.Now().Add(-age),
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func seedProgress(t *testing.T, db *gorm.DB, userID uuid.UUID, subject, topic string, mastery float64, studyTime int) {
	t.Helper()
	record := models.Progress{
		UserID:       userID,
		Subject:      subject,
		Topic:        topic,
		MasteryLevel: mastery,
		StudyTime:    studyTime,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed progress: %v", err)
	}
}

const day = 24 * time.Hour

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	userID := seedUser(t, db, models.UserActive)

	quizID := seedQuiz(t, db, userID, "Algebra Basics", "Mathematics")
	seedAttempt(t, db, userID, quizID, 80, 2*day)
	seedAttempt(t, db, userID, quizID, 90, 1*day)
	// Attempt whose quiz is gone; must survive the join with empty title.
	seedAttempt(t, db, userID, uuid.New(), 100, 3*day)
	seedAttempt(t, db, userID, quizID, 60, 10*day)
	seedAttempt(t, db, userID, quizID, 50, 40*day)

	seedProgress(t, db, userID, "Mathematics", "Algebra", 0.75, 120)
	seedProgress(t, db, userID, "Physics", "Mechanics", 0.50, 60)

	stats := svc.GetDashboardStats(userID)

	if stats.TotalQuizzes != 5 {
		t.Fatalf("total_quizzes = %d, want 5", stats.TotalQuizzes)
	}
	if stats.TotalStudyTime != 180 {
		t.Fatalf("total_study_time = %d, want 180", stats.TotalStudyTime)
	}
	if stats.AverageScore != 76.0 {
		t.Fatalf("average_score = %v, want 76.0", stats.AverageScore)
	}
	if stats.SubjectsStudied != 2 {
		t.Fatalf("subjects_studied = %d, want 2", stats.SubjectsStudied)
	}

	if len(stats.RecentActivity) != 3 {
		t.Fatalf("recent_activity has %d items, want 3", len(stats.RecentActivity))
	}
	if stats.RecentActivity[0].Score != 90 || stats.RecentActivity[1].Score != 80 || stats.RecentActivity[2].Score != 100 {
		t.Fatalf("recent_activity not ordered most-recent-first: %+v", stats.RecentActivity)
	}
	if stats.RecentActivity[0].Title != "Algebra Basics" || stats.RecentActivity[0].Subject != "Mathematics" {
		t.Fatalf("recent_activity join lost quiz fields: %+v", stats.RecentActivity[0])
	}
	if stats.RecentActivity[2].Title != "" {
		t.Fatalf("orphaned attempt should have empty title, got %q", stats.RecentActivity[2].Title)
	}
	for _, item := range stats.RecentActivity {
		if item.Type != "quiz_completed" {
			t.Fatalf("activity type = %q, want quiz_completed", item.Type)
		}
	}

	if len(stats.ProgressBySubject) != 2 {
		t.Fatalf("progress_by_subject has %d rows, want 2", len(stats.ProgressBySubject))
	}
	math := stats.ProgressBySubject[0]
	physics := stats.ProgressBySubject[1]
	if math.Subject != "Mathematics" || math.MasteryLevel != 0.75 || math.StudyTime != 120 {
		t.Fatalf("mathematics row = %+v", math)
	}
	if physics.Subject != "Physics" || physics.MasteryLevel != 0.5 || physics.StudyTime != 60 {
		t.Fatalf("physics row = %+v", physics)
	}

	if len(stats.WeeklyProgress) != 4 {
		t.Fatalf("weekly_progress has %d entries, want 4", len(stats.WeeklyProgress))
	}
	week4 := stats.WeeklyProgress[0]
	if week4.Week != "Week 4" || week4.QuizzesCompleted != 3 || week4.AverageScore != 90.0 {
		t.Fatalf("week 4 = %+v", week4)
	}
	week3 := stats.WeeklyProgress[1]
	if week3.Week != "Week 3" || week3.QuizzesCompleted != 1 || week3.AverageScore != 60.0 {
		t.Fatalf("week 3 = %+v", week3)
	}
	for _, w := range stats.WeeklyProgress[2:] {
		if w.QuizzesCompleted != 0 || w.AverageScore != 0.0 {
			t.Fatalf("empty window not zeroed: %+v", w)
		}
	}
}

func TestGetDashboardStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	userID := seedUser(t, db, models.UserActive)

	stats := svc.GetDashboardStats(userID)

	if stats.TotalQuizzes != 0 || stats.TotalStudyTime != 0 || stats.SubjectsStudied != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.AverageScore != 0.0 {
		t.Fatalf("average_score = %v, want 0.0 for no attempts", stats.AverageScore)
	}
	if len(stats.RecentActivity) != 0 {
		t.Fatalf("recent_activity = %+v, want empty", stats.RecentActivity)
	}
	if len(stats.WeeklyProgress) != 4 {
		t.Fatalf("weekly_progress has %d entries, want 4 even with no data", len(stats.WeeklyProgress))
	}
}

func TestGetDashboardStatsDeactivatedUser(t *testing.T) {
	// Deactivation only affects authentication; historical rows stay and the
	// aggregates still compute from them.
	db := newTestDB(t)
	svc := NewProgressService(db)
	userID := seedUser(t, db, models.UserActive)

	quizID := seedQuiz(t, db, userID, "History 101", "History")
	seedAttempt(t, db, userID, quizID, 70, 1*day)
	seedProgress(t, db, userID, "History", "WW2", 0.4, 30)

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("status", models.UserDeactivated).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	stats := svc.GetDashboardStats(userID)
	if stats.TotalQuizzes != 1 || stats.TotalStudyTime != 30 || stats.SubjectsStudied != 1 {
		t.Fatalf("deactivated user lost history: %+v", stats)
	}
	if stats.AverageScore != 70.0 {
		t.Fatalf("average_score = %v, want 70.0", stats.AverageScore)
	}
}

func TestWeeklyProgressCoversTrailingFourWeeks(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	userID := seedUser(t, db, models.UserActive)
	quizID := seedQuiz(t, db, userID, "Mixed", "Science")

	// One attempt in each weekly window.
	for i := 0; i < 4; i++ {
		seedAttempt(t, db, userID, quizID, 50, time.Duration(i*7)*day+12*time.Hour)
	}

	stats := svc.GetDashboardStats(userID)

	var sum int64
	for _, w := range stats.WeeklyProgress {
		if w.QuizzesCompleted != 1 {
			t.Fatalf("window %s has %d attempts, want 1", w.Week, w.QuizzesCompleted)
		}
		sum += w.QuizzesCompleted
	}
	if sum != stats.TotalQuizzes {
		t.Fatalf("weekly windows sum to %d, total is %d", sum, stats.TotalQuizzes)
	}
}
