package dto

import model "workx.com/workx/internal/models"

// ProfileSummary is the owner profile joined onto admin task listings.
type ProfileSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// WriterSummary adds the writer's cumulative counters.
type WriterSummary struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	CompletedTasks int     `json:"completed_tasks"`
	Earnings       float64 `json:"earnings"`
}

// AdminTaskView is a task enriched with account details for the admin
// dashboard. Enrichment is best effort and read only.
type AdminTaskView struct {
	model.Task
	UserDetails   *ProfileSummary `json:"user_details,omitempty"`
	WriterDetails *WriterSummary  `json:"writer_details,omitempty"`
}

// TaskSummary is the redacted public projection of a task: no pricing
// breakdown beyond the final price, no account identifiers.
type TaskSummary struct {
	TaskID     string   `json:"task_id"`
	WorkType   string   `json:"work_type"`
	Pages      *int     `json:"pages"`
	FinalPrice *float64 `json:"final_price"`
	Status     string   `json:"status"`
	Deadline   string   `json:"deadline"`
	HasResult  bool     `json:"has_result"`
	ResultFile *string  `json:"result_file"`
}
