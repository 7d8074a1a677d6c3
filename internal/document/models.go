package document

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// Office is the committee office a document belongs to.
type Office string

const (
	OfficeChairperson  Office = "chairperson"
	OfficeSecretary    Office = "secretary"
	OfficeDisciplinary Office = "disciplinary"
	OfficeTreasurer    Office = "treasurer"
	OfficeInventory    Office = "inventory"
	OfficeWelfare      Office = "welfare"
)

func (o Office) Valid() bool {
	switch o {
	case OfficeChairperson, OfficeSecretary, OfficeDisciplinary,
		OfficeTreasurer, OfficeInventory, OfficeWelfare:
		return true
	}
	return false
}

// Document is an office file. FileData is base64 and excluded from listings;
// it comes back only through Download.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Office         Office    `json:"office"`
	Category       string    `json:"category"`
	FileName       string    `json:"file_name"`
	FileData       string    `json:"-"`
	UploadedBy     string    `json:"uploaded_by"`
	UploadedByName string    `json:"uploaded_by_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadRequest is the payload for filing a document.
type UploadRequest struct {
	Title    string `json:"title"`
	Office   Office `json:"office"`
	Category string `json:"category"`
	FileName string `json:"file_name"`
	FileData string `json:"file_data"`
}

func (r *UploadRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if !r.Office.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown office")
	}
	if r.Category == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	if r.FileName == "" || r.FileData == "" {
		return dErrors.New(dErrors.CodeValidation, "file name and data are required")
	}
	return nil
}

// DownloadPayload carries the file back to the caller.
type DownloadPayload struct {
	FileName string `json:"file_name"`
	FileData string `json:"file_data"`
}

// Filter narrows document listings.
type Filter struct {
	Office   string
	Category string
}
