package models

import "time"

// ScreenTimeUpdate is one accepted increment. ScreenshotKey is the storage key
// of the evidence file, nil when the update carried no screenshot.
type ScreenTimeUpdate struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	DeltaMinutes   float64   `json:"delta_minutes"`
	ScreenshotKey  *string   `json:"-"`
	ScreenshotName *string   `json:"screenshot_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *ScreenTimeUpdate) HasScreenshot() bool {
	return u.ScreenshotKey != nil && *u.ScreenshotKey != ""
}
