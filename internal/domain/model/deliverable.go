package model

import (
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

// Deliverable is the translator-submitted output attached to a job at the
// delivered transition.
type Deliverable struct {
	ID             string // UUID
	JobID          string
	FileHandle     string
	OriginalName   string
	TranslatedText string
	UploadedBy     string
	UploadedAt     time.Time
}

func NewDeliverable(id, jobID, fileHandle, originalName, translatedText, uploadedBy string) (*Deliverable, error) {
	if id == "" || jobID == "" || uploadedBy == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Deliverable{
		ID:             id,
		JobID:          jobID,
		FileHandle:     fileHandle,
		OriginalName:   originalName,
		TranslatedText: translatedText,
		UploadedBy:     uploadedBy,
		UploadedAt:     time.Now(),
	}, nil
}
