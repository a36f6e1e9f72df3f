package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
	// StatusDelivered is reserved. The admin override may force it and
	// guards treat it as terminal, but no guarded transition sets it.
	StatusDelivered TaskStatus = "Delivered"
)

// TerminalStatuses lists the statuses with no further writer-driven
// transition.
func TerminalStatuses() []TaskStatus {
	return []TaskStatus{StatusCompleted, StatusDelivered}
}

// Terminal reports whether no further writer-driven transition applies.
func (s TaskStatus) Terminal() bool {
	for _, t := range TerminalStatuses() {
		if s == t {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleUser   Role = "user"
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

type MaterialOption string

const (
	MaterialProvide MaterialOption = "provide"
	MaterialBuy     MaterialOption = "buy"
)

func (m MaterialOption) Valid() bool {
	return m == MaterialProvide || m == MaterialBuy
}
