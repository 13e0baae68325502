package model

import "time"

// BuildSubmitted is published when a user shares a build.
type BuildSubmitted struct {
	EventID string
	PostID  string
	UserID  string
	// Part id per slot.
	Slots map[Category]string
	// Slot keys that name no category, sorted.
	UnknownSlots []string
}

// BuildVerified carries the validation outcome of a submitted build.
type BuildVerified struct {
	EventID      string
	PostID       string
	Verified     bool
	TotalPrice   float64
	TotalWattage float64
	Warnings     []string
	CheckedAt    time.Time
}
