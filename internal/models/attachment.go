package model

type AttachmentKind string

const (
	// KindSource is a file the owner uploaded at task creation.
	KindSource AttachmentKind = "source"
	// KindResult is the finished work the admin uploaded.
	KindResult AttachmentKind = "result"
)

// Attachment stores one file owned by a task. Payload is cleared when
// the task completes; Purged distinguishes a cleared payload from a
// file that never had bytes.
type Attachment struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	TaskID      string         `gorm:"index;size:16;not null" json:"-"`
	Kind        AttachmentKind `gorm:"size:10;not null" json:"-"`
	Position    int            `gorm:"not null;default:0" json:"-"`
	Filename    string         `gorm:"not null" json:"filename"`
	ContentType string         `json:"content_type"`
	Size        int64          `json:"size"`
	Payload     []byte         `gorm:"type:blob" json:"-"`
	Purged      bool           `gorm:"not null;default:false" json:"-"`
}
