package model

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

const maxMessageLen = 1000

// ChatMessage is one entry of a job's append-only message log. Seq is
// assigned per job, strictly increasing and gapless; messages are never
// mutated or deleted.
type ChatMessage struct {
	ID         string // ULID, sortable by creation time
	JobID      string
	SenderID   string
	SenderName string
	SenderRole Role
	Body       string
	Seq        int64
	CreatedAt  time.Time
}

func NewChatMessage(id, jobID, senderID, senderName string, senderRole Role, body string) (*ChatMessage, error) {
	if id == "" || jobID == "" || senderID == "" {
		return nil, domain.ErrInvalidArgument
	}
	sanitized := SanitizeMessage(body)
	if sanitized == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &ChatMessage{
		ID:         id,
		JobID:      jobID,
		SenderID:   senderID,
		SenderName: senderName,
		SenderRole: senderRole,
		Body:       sanitized,
		CreatedAt:  time.Now(),
	}, nil
}

// SanitizeMessage trims, caps and HTML-escapes a raw chat body so it is
// safe to echo into any surface. Newlines become <br>. The cap counts
// runes, not bytes, so multi-byte text is never cut mid-character.
func SanitizeMessage(body string) string {
	s := strings.TrimSpace(body)
	if utf8.RuneCountInString(s) > maxMessageLen {
		s = string([]rune(s)[:maxMessageLen])
	}
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}
