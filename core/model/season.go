package model

import (
	"fmt"
	"strings"
)

// Season identifies the seasonal weather pattern driving cloud coverage.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

// String returns the configuration name of the season.
func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Fall:
		return "fall"
	case Winter:
		return "winter"
	default:
		return "unknown"
	}
}

// ParseSeason converts a configuration name into a Season.
func ParseSeason(name string) (Season, error) {
	switch strings.ToLower(name) {
	case "spring":
		return Spring, nil
	case "summer":
		return Summer, nil
	case "fall":
		return Fall, nil
	case "winter":
		return Winter, nil
	default:
		return 0, fmt.Errorf("invalid season: %s", name)
	}
}
