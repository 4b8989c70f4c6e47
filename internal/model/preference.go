package model

import (
	"gorm.io/datatypes"
)

// Preference keys
const (
	PrefKeyTheme      = "theme"
	PrefKeyDateFormat = "dateFormat"
)

// Theme preference values
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Date format preference values
const (
	DateFormatAuto     = "auto"
	DateFormatDMYSlash = "DD/MM/YYYY"
	DateFormatDMYDash  = "DD-MM-YYYY"
	DateFormatMDYSlash = "MM/DD/YYYY"
	DateFormatMDYDash  = "MM-DD-YYYY"
	DateFormatISO      = "YYYY-MM-DD"
)

// Defaults applied on first read
const (
	DefaultTheme      = ThemeSystem
	DefaultDateFormat = DateFormatAuto
)

// Themes lists the selectable theme values in display order
var Themes = []string{ThemeSystem, ThemeLight, ThemeDark}

// DateFormats lists the selectable date formats in display order
var DateFormats = []string{
	DateFormatAuto,
	DateFormatDMYSlash,
	DateFormatDMYDash,
	DateFormatMDYSlash,
	DateFormatMDYDash,
	DateFormatISO,
}

// Preferences holds the display preferences of one client
type Preferences struct {
	Theme      string `json:"theme"`
	DateFormat string `json:"dateFormat"`
}

// DefaultPreferences returns the preferences used when nothing is stored
func DefaultPreferences() Preferences {
	return Preferences{Theme: DefaultTheme, DateFormat: DefaultDateFormat}
}

// IsKnownTheme reports whether v is one of Themes
func IsKnownTheme(v string) bool {
	for _, t := range Themes {
		if t == v {
			return true
		}
	}
	return false
}

// IsKnownDateFormat reports whether v is one of DateFormats
func IsKnownDateFormat(v string) bool {
	for _, f := range DateFormats {
		if f == v {
			return true
		}
	}
	return false
}

// ClientPreference stores all preference keys of one client as a JSON map
type ClientPreference struct {
	BaseModel
	ClientID string            `gorm:"column:client_id;type:varchar(64);not null;uniqueIndex" json:"client_id"`
	Values   datatypes.JSONMap `gorm:"column:prefs;type:json" json:"values"`
}

// TableName specifies the table name for ClientPreference
func (ClientPreference) TableName() string {
	return "client_preferences"
}
