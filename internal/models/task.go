package model

import (
	"time"

	"workx.com/workx/internal/constants"
)

// Task is the central marketplace entity. TaskID is the public
// identifier; the numeric primary key never leaves the storage layer.
// Pointer fields are absent until the admin (or a claim) sets them.
type Task struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	TaskID string `gorm:"uniqueIndex;size:16;not null" json:"task_id"`

	WorkType string               `gorm:"size:32;not null" json:"work_type"`
	Status   constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Deadline string               `gorm:"size:32;not null" json:"deadline"`
	Notes    string               `json:"notes"`

	MaterialOption   constants.MaterialOption `gorm:"size:10" json:"material_option"`
	MaterialCost     float64                  `json:"material_cost"`
	IsSameDay        bool                     `json:"is_same_day"`
	SameDaySurcharge float64                  `json:"same_day_surcharge"`

	UserID      string `gorm:"index;size:36;not null" json:"user_id"`
	UserContact string `json:"user_contact"`

	WriterID       *string `gorm:"index;size:36" json:"writer_id"`
	WriterUsername *string `json:"writer_username"`

	Pages        *int     `json:"pages"`
	BasePrice    *float64 `json:"base_price"`
	PlatformFee  *float64 `json:"platform_fee"`
	FinalPrice   *float64 `json:"final_price"`
	WorkerPayout *float64 `json:"worker_payout"`

	PaymentReceived bool `gorm:"not null;default:false" json:"payment_received"`
	WriterPaid      bool `gorm:"not null;default:false" json:"writer_paid"`

	AdminResult *string `json:"admin_uploaded_result"`

	CreatedAt   time.Time  `json:"created_at"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Hydrated by the repository from the attachments table.
	Attachments []Attachment `gorm:"-" json:"user_uploaded_files"`
}
