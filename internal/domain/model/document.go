package model

// MaxDocumentSize is the per-file upload cap (10 MiB).
const MaxDocumentSize int64 = 10 * 1024 * 1024

// AcceptedDocumentTypes lists the MIME types allowed for documents.
var AcceptedDocumentTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// Document is an uploaded file held in memory until submission.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the document length in bytes.
func (d Document) Size() int64 {
	return int64(len(d.Data))
}

// Meta returns the document description stored with account data.
func (d Document) Meta() DocumentMeta {
	return DocumentMeta{Name: d.Name, ContentType: d.ContentType, Size: d.Size()}
}
