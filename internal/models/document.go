package models

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UploadedDocument is the raw content of one uploaded file, held only for the
// duration of a single extraction.
type UploadedDocument struct {
	Filename  string
	MediaType string
	Content   []byte
}

func (d *UploadedDocument) Size() int64 {
	return int64(len(d.Content))
}
