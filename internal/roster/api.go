package roster

import "surfcamp-backend/internal/store"

// BookingFeedResponse models the upstream booking provider's paginated
// booking feed.
type BookingFeedResponse struct {
	Code int `json:"code"`
	Data struct {
		Page     int                 `json:"page"`
		PageSize int                 `json:"pageSize"`
		Total    int                 `json:"total"`
		Items    []store.BookingItem `json:"items"`
	} `json:"data"`
}

// RoomFeedResponse models the upstream property feed.
type RoomFeedResponse struct {
	Code int `json:"code"`
	Data struct {
		Page     int              `json:"page"`
		PageSize int              `json:"pageSize"`
		Total    int              `json:"total"`
		Items    []store.RoomItem `json:"items"`
	} `json:"data"`
}
