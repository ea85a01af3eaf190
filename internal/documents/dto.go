package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID string    `json:"documentId"`
	ProjectID  string    `json:"projectId"`
	Category   string    `json:"category"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		ProjectID:  doc.ProjectID,
		Category:   string(doc.Category),
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		Status:     string(doc.Status),
		Version:    doc.Version,
		UploadedAt: doc.UploadedAt,
	}
}
