package attachments

import (
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"regexp"
	"strings"

	apperrors "workx.com/workx/internal/errors"
	model "workx.com/workx/internal/models"
)

// DefaultAllowedExtensions mirrors the upload allow-list.
var DefaultAllowedExtensions = []string{"pdf", "doc", "docx", "txt", "png", "jpg", "jpeg"}

// MaxTotalBytes caps the aggregate payload size of one request.
const MaxTotalBytes = 16 << 20

// Upload is one raw file part before validation.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Store struct {
	allowed  map[string]struct{}
	maxTotal int64
}

func NewStore(allowedExtensions []string, maxTotalBytes int64) *Store {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Store{allowed: allowed, maxTotal: maxTotalBytes}
}

func NewDefaultStore() *Store {
	return NewStore(DefaultAllowedExtensions, MaxTotalBytes)
}

// Allowed checks the filename extension against the allow-list.
func (s *Store) Allowed(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return false
	}
	_, ok := s.allowed[strings.ToLower(filename[i+1:])]
	return ok
}

// Ingest filters uploads by extension and rejects the whole request
// when the aggregate payload exceeds the size ceiling or when nothing
// survives the filter. Every part counts toward the ceiling, filtered
// or not.
func (s *Store) Ingest(uploads []Upload) ([]model.Attachment, error) {
	var out []model.Attachment
	var total int64

	for _, u := range uploads {
		total += int64(len(u.Data))
		if u.Filename == "" || !s.Allowed(u.Filename) {
			continue
		}
		out = append(out, model.Attachment{
			Kind:        model.KindSource,
			Position:    len(out),
			Filename:    SanitizeFilename(u.Filename),
			ContentType: u.ContentType,
			Size:        int64(len(u.Data)),
			Payload:     u.Data,
		})
	}

	if total > s.maxTotal {
		return nil, apperrors.Validation(fmt.Sprintf("uploaded files exceed the %d MB limit", s.maxTotal>>20))
	}
	if len(out) == 0 {
		return nil, apperrors.Validation("please upload at least one file with the content to be written")
	}

	return out, nil
}

// Payload returns the stored bytes, distinguishing a purged payload
// from a file that was never stored.
func Payload(att model.Attachment) ([]byte, error) {
	if att.Purged {
		return nil, apperrors.ErrPayloadPurged
	}
	return att.Payload, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename strips directory components and characters outside
// [A-Za-z0-9_.-] so the name is safe to echo back in headers.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// FromMultipart reads form file parts into Uploads.
func FromMultipart(files []*multipart.FileHeader) ([]Upload, error) {
	uploads := make([]Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}
