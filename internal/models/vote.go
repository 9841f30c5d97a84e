package models

import "time"

// Vote records one user's vote for one game. At most one vote exists per
// (GameName, UserID) pair. Hidden votes still score; hiding only keeps the
// voter's name off the results page.
type Vote struct {
	GameName string    `yaml:"game_name" json:"gameName"`
	UserID   string    `yaml:"user_id" json:"userId"`
	Hidden   bool      `yaml:"hidden" json:"hidden"`
	Time     time.Time `yaml:"time" json:"time"`
}
