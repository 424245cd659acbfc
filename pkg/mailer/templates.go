package mailer

import "fmt"

// VerificationEmail builds the subject and HTML body for a verification
// outcome message. approved selects between the acceptance and rejection
// wording; note carries the admin's free-text reason when present.
func VerificationEmail(entityLabel, entityName string, approved bool, note string) (string, string) {
	if approved {
		subject := fmt.Sprintf("%s Anda telah disetujui", entityLabel)
		body := fmt.Sprintf(
			"<p>Kabar baik! %s <b>%s</b> telah disetujui dan kini tampil di RasoSehat.</p>",
			entityLabel, entityName)
		if note != "" {
			body += fmt.Sprintf("<p>Catatan admin: %s</p>", note)
		}
		return subject, body
	}

	subject := fmt.Sprintf("%s Anda ditolak", entityLabel)
	body := fmt.Sprintf(
		"<p>Mohon maaf, %s <b>%s</b> belum dapat kami setujui.</p>",
		entityLabel, entityName)
	if note != "" {
		body += fmt.Sprintf("<p>Alasan: %s</p>", note)
	}
	body += "<p>Silakan perbaiki data Anda dan ajukan kembali.</p>"
	return subject, body
}
