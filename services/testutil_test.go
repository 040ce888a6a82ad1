package services

import (
	"path/filepath"
	"testing"
	"time"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points config.DB at a throwaway SQLite database. Returns the
// file path so durability tests can reopen the same database.
func setupTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "concurso_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Contest{},
		&models.Submission{},
		&models.ModerationLog{},
		&models.ContestAnalysisCache{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	config.DB = db
	return path
}

func seedContest(t *testing.T) models.Contest {
	t.Helper()

	now := time.Now()
	author := models.User{DisplayName: "Autora", Email: "autora@example.test", RoleID: 1, CreateAt: &now}
	if err := config.DB.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}

	contest := models.Contest{
		Title:     "Relatos de Invierno",
		Slug:      "relatos-invierno",
		Status:    "open",
		CreatedBy: author.UserID,
		CreateAt:  &now,
	}
	if err := config.DB.Create(&contest).Error; err != nil {
		t.Fatalf("failed to seed contest: %v", err)
	}
	return contest
}

func seedSubmission(t *testing.T, contestID int, title, body string, isMature bool, status moderation.Status) models.Submission {
	t.Helper()

	now := time.Now()
	submission := models.Submission{
		ContestID:        contestID,
		UserID:           1,
		Title:            title,
		Body:             body,
		IsMature:         isMature,
		ModerationStatus: string(status),
		CreateAt:         &now,
	}
	if err := config.DB.Create(&submission).Error; err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	return submission
}

func countLogs(t *testing.T, submissionID int) int64 {
	t.Helper()

	var count int64
	if err := config.DB.Model(&models.ModerationLog{}).
		Where("submission_id = ?", submissionID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return count
}
