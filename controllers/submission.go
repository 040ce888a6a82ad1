package controllers

import (
	"net/http"
	"strconv"
	"time"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"
	"concurso-api/utils"

	"github.com/gin-gonic/gin"
)

type CreateSubmissionRequest struct {
	ContestID int    `json:"contest_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	IsMature  bool   `json:"is_mature"`
}

// CreateSubmission files a new contest entry for the authenticated author.
func CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Title = utils.SanitizeInput(req.Title)
	if ok, msg := utils.ValidateSubmissionTitle(req.Title); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if ok, msg := utils.ValidateSubmissionBody(req.Body); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var contest models.Contest
	if err := config.DB.Where("contest_id = ? AND delete_at IS NULL", req.ContestID).
		First(&contest).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}
	if !contest.IsOpen(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contest is not accepting submissions"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()
	submission := models.Submission{
		ContestID:        req.ContestID,
		UserID:           userID.(int),
		Title:            req.Title,
		Body:             req.Body,
		IsMature:         req.IsMature,
		ModerationStatus: string(moderation.StatusPending),
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	// Advisory pre-check so the author can self-flag before an admin does.
	check := moderation.NeedsMaturityFlag(submission.Title, submission.Body)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Submission created successfully",
		"submission":     submission,
		"maturity_check": check,
	})
}

// GetContestSubmissions lists entries under one contest.
func GetContestSubmissions(c *gin.Context) {
	contestID, ok := contestIDParam(c)
	if !ok {
		return
	}

	var submissions []models.Submission
	query := config.DB.Preload("Author").
		Where("contest_id = ? AND delete_at IS NULL", contestID)

	if status := c.Query("moderation_status"); status != "" {
		query = query.Where("moderation_status = ?", status)
	}

	if err := query.Order("submission_id ASC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns one entry with author and contest.
func GetSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Author").Preload("Contest").
		Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}
