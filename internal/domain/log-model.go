package domain

type LogAction string

const (
	ActionCreate LogAction = "CREATE"
	ActionRead   LogAction = "READ"
	ActionUpdate LogAction = "UPDATE"
	ActionDelete LogAction = "DELETE"
	ActionExport LogAction = "EXPORT"
	ActionLogin  LogAction = "LOGIN"
	ActionConfig LogAction = "CONFIG"
)

type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Log is one append-only audit entry. Entries are never edited or removed
// once appended.
type Log struct {
	ID          string        `json:"id"`
	Timestamp   int64         `json:"timestamp"` // unix milliseconds
	UserID      string        `json:"userId"`
	UserEmail   string        `json:"userEmail"`
	Action      LogAction     `json:"action"`
	Description string        `json:"description"`
	TargetCode  string        `json:"targetCode,omitempty"`
	Changes     []FieldChange `json:"changes,omitempty"`
}
