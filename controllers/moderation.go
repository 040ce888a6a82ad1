package controllers

import (
	"net/http"
	"strconv"

	"concurso-api/moderation"
	"concurso-api/services"

	"github.com/gin-gonic/gin"
)

type AnalyzePreviewRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body" binding:"required"`
	IsMature bool   `json:"is_mature"`
}

// AnalyzePreview runs the moderation pipeline over ad-hoc text. Nothing is
// persisted; admins use this to test the lexicon.
func AnalyzePreview(c *gin.Context) {
	var req AnalyzePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := moderation.Analyze(moderation.Input{
		Title:    req.Title,
		Body:     req.Body,
		IsMature: req.IsMature,
	})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// RunContestAnalysis analyzes every submission under a contest. persist=true
// (the default) writes results and audit entries; persist=false previews.
func RunContestAnalysis(c *gin.Context) {
	contestID, ok := contestIDParam(c)
	if !ok {
		return
	}

	persist := c.DefaultQuery("persist", "true") != "false"

	run, err := services.RunBatch(c.Request.Context(), contestID, persist)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsValidationError(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":  run.RunID,
		"results": run.Results,
		"stats":   run.Stats,
	})
}

// GetContestAnalysis serves the review dashboard from the durable cache,
// computing only on a miss or when refresh=true is passed.
func GetContestAnalysis(c *gin.Context) {
	contestID, ok := contestIDParam(c)
	if !ok {
		return
	}

	force := c.Query("refresh") == "true"
	entry, err := services.Cache.GetOrCompute(c.Request.Context(), contestID, force)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsValidationError(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": entry})
}

// GetCachedContestAnalysis returns the cached snapshot without computing.
func GetCachedContestAnalysis(c *gin.Context) {
	contestID, ok := contestIDParam(c)
	if !ok {
		return
	}

	entry, err := services.Cache.GetCached(contestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cached analysis for this contest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": entry})
}

// ClearContestAnalysisCache drops one contest's snapshot, or all of them
// when called without an id.
func ClearContestAnalysisCache(c *gin.Context) {
	if idParam := c.Param("id"); idParam != "" {
		contestID, ok := contestIDParam(c)
		if !ok {
			return
		}
		if err := services.Cache.ClearContest(contestID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cache entry cleared"})
		return
	}

	if err := services.Cache.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// SetModerationStatus applies a manual approve/reject/under-review decision.
func SetModerationStatus(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := c.Get("userID")
	submission, err := services.SetStatus(submissionID,
		moderation.Status(req.Status), adminID.(int), req.Notes)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Status updated",
		"submission": submission,
	})
}

type SetMaturityRequest struct {
	IsMature bool   `json:"is_mature"`
	Notes    string `json:"notes"`
}

// SetSubmissionMaturity toggles the mature flag under admin action.
func SetSubmissionMaturity(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req SetMaturityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := c.Get("userID")
	submission, err := services.SetMaturityFlag(submissionID, req.IsMature, adminID.(int), req.Notes)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Maturity flag updated",
		"submission": submission,
	})
}

// GetSubmissionModerationLog returns the audit trail for one submission.
func GetSubmissionModerationLog(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	entries, err := services.GetModerationLog(submissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// CheckMaturityFlag runs the lightweight pre-scoring maturity check.
func CheckMaturityFlag(c *gin.Context) {
	var req AnalyzePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check := moderation.NeedsMaturityFlag(req.Title, req.Body)
	c.JSON(http.StatusOK, gin.H{"maturity_check": check})
}
