package dto

type SignupRequest struct {
	UserType string `json:"user_type"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type TaskIDRequest struct {
	TaskID string `json:"task_id"`
}
