// Package transport defines the wire types for violation reports.
package transport

import "time"

// ViolationResponse is one stored report.
type ViolationResponse struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Inside          bool      `json:"inside"`
	ZoneName        *string   `json:"zone_name"`
	ProtectionLevel *string   `json:"protection_level"`
	CreatedAt       time.Time `json:"created_at"`
}
