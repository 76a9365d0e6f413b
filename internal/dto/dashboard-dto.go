package dto

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats summarizes the non-archived inventory.
type DashboardStats struct {
	Total             int         `json:"total"`
	Archived          int         `json:"archived"`
	GoodCondition     int         `json:"goodCondition"`
	BadCondition      int         `json:"badCondition"`
	DistinctLocations int         `json:"distinctLocations"`
	ByState           []NameCount `json:"byState"`
	ByCategory        []NameCount `json:"byCategory"`
	ByLocation        []NameCount `json:"byLocation"`
}
