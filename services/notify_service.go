package services

import (
	"fmt"
	"log"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"
)

// NotifyAuthorOfNotice mails the author after an approve_and_notify outcome.
// Best effort: a mail failure is logged and never fails the batch.
func NotifyAuthorOfNotice(submission *models.Submission, result *moderation.AnalysisResult) {
	var author models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", submission.UserID).
		First(&author).Error; err != nil {
		log.Printf("notice mail skipped for submission %d: author lookup failed: %v",
			submission.SubmissionID, err)
		return
	}
	if author.Email == "" {
		return
	}

	subject := fmt.Sprintf("Aviso de moderación: «%s»", submission.Title)
	html := fmt.Sprintf(`<p>Hola %s,</p>
<p>Tu relato <strong>%s</strong> ha sido aprobado, pero el sistema de moderación
ha detectado contenido que puede requerir ajustes:</p>
<ul>%s</ul>
<p>Puedes editar tu relato mientras la convocatoria siga abierta.</p>`,
		author.DisplayName, submission.Title, reasonsAsList(result.Reasons))

	if err := config.SendMail([]string{author.Email}, subject, html); err != nil {
		log.Printf("notice mail failed for submission %d: %v", submission.SubmissionID, err)
	}
}

func reasonsAsList(reasons []string) string {
	out := ""
	for _, r := range reasons {
		out += "<li>" + r + "</li>"
	}
	return out
}
