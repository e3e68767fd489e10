package domain

// UserSummary describes a user known to storage.
// @Description User with record count and most recent sleep date.
type UserSummary struct {
	UserID           string `json:"user_id" example:"user_1"`
	RecordCount      int64  `json:"record_count" example:"30"`
	LatestRecordDate string `json:"latest_record_date,omitempty" example:"2024-01-30"`
}

// UsersResponse is the response body for listing users.
// @Description Users ordered by record count, highest first.
type UsersResponse struct {
	Users []UserSummary `json:"users"`
	Count int           `json:"count" example:"3"`
}
