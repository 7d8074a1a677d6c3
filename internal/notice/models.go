package notice

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// AttachmentType is inferred from the attachment's file extension.
type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentPDF   AttachmentType = "pdf"
	AttachmentFile  AttachmentType = "file"
)

var imageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {},
}

// InferAttachmentType classifies an attachment by its file name. Empty name
// means no attachment.
func InferAttachmentType(fileName string) AttachmentType {
	if fileName == "" {
		return ""
	}
	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = strings.ToLower(fileName[i+1:])
	}
	if _, ok := imageExtensions[ext]; ok {
		return AttachmentImage
	}
	if ext == "pdf" {
		return AttachmentPDF
	}
	return AttachmentFile
}

// Notice is an announcement. An empty TargetDepartment is a broadcast to
// everyone. AttachmentData is base64 and only included in responses for
// images or explicit attachment downloads.
type Notice struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	TargetDepartment string         `json:"target_department,omitempty"`
	ExpiryDate       string         `json:"expiry_date,omitempty"`
	HasAttachment    bool           `json:"has_attachment"`
	AttachmentName   string         `json:"attachment_name,omitempty"`
	AttachmentType   AttachmentType `json:"attachment_type,omitempty"`
	AttachmentData   string         `json:"attachment_data,omitempty"`
	CreatedBy        string         `json:"created_by"`
	CreatedByName    string         `json:"created_by_name"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`
}

// CreateRequest is the payload for creating or replacing a notice.
type CreateRequest struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	TargetDepartment string `json:"target_department,omitempty"`
	ExpiryDate       string `json:"expiry_date,omitempty"`
	AttachmentName   string `json:"attachment_name,omitempty"`
	AttachmentData   string `json:"attachment_data,omitempty"`
}

func (r *CreateRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return dErrors.New(dErrors.CodeValidation, "content is required")
	}
	return nil
}

// normalizedTarget maps "" and "all" to a broadcast.
func (r *CreateRequest) normalizedTarget() string {
	if r.TargetDepartment == "all" {
		return ""
	}
	return r.TargetDepartment
}

// Attachment is the standalone attachment download payload.
type Attachment struct {
	FileName string         `json:"file_name"`
	FileType AttachmentType `json:"file_type"`
	FileData string         `json:"file_data"`
}
