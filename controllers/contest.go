package controllers

import (
	"net/http"
	"strconv"
	"time"

	"concurso-api/config"
	"concurso-api/models"

	"github.com/gin-gonic/gin"
)

// GetContests returns all live contests, newest first.
func GetContests(c *gin.Context) {
	var contests []models.Contest
	query := config.DB.Where("delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("contest_id DESC").Find(&contests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contests": contests,
		"total":    len(contests),
	})
}

// GetContest returns a single contest with its creator.
func GetContest(c *gin.Context) {
	id := c.Param("id")

	var contest models.Contest
	if err := config.DB.Preload("Creator").
		Where("contest_id = ? AND delete_at IS NULL", id).
		First(&contest).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contest": contest,
		"is_open": contest.IsOpen(time.Now()),
	})
}

func contestIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contest ID"})
		return 0, false
	}
	return id, true
}
