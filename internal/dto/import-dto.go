package dto

type ImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
