package domain

// Permission is the set of independent capabilities granted to a user.
type Permission struct {
	CanViewDashboard bool `json:"canViewDashboard"`
	CanReadList      bool `json:"canReadList"`
	CanCreate        bool `json:"canCreate"`
	CanUpdate        bool `json:"canUpdate"`
	CanDelete        bool `json:"canDelete"` // soft delete / archive
	CanExport        bool `json:"canExport"`
	IsAdmin          bool `json:"isAdmin"`
}

type UserPreferences struct {
	Theme string `json:"theme"`
}

// User credentials are stored and compared in plain text; the service
// targets a single trusted deployment behind its own network boundary.
type User struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Permissions Permission      `json:"permissions"`
	Preferences UserPreferences `json:"preferences"`
}
