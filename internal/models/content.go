package models

import "time"

// BackgroundImage names one of the bundled site backdrops.
type BackgroundImage string

const (
	BackgroundChristmasLights    BackgroundImage = "christmasLights"
	BackgroundFestiveTree        BackgroundImage = "festiveTree"
	BackgroundHolidayDecorations BackgroundImage = "holidayDecorations"
	BackgroundTwinklingLights    BackgroundImage = "twinklingLights"
	BackgroundSnowyVillage       BackgroundImage = "snowyVillage"
)

// ThemeColor is a palette entry accepted by the public site.
type ThemeColor string

const (
	ColorRed    ThemeColor = "red"
	ColorBlue   ThemeColor = "blue"
	ColorGold   ThemeColor = "gold"
	ColorPurple ThemeColor = "purple"
	ColorGreen  ThemeColor = "green"
	ColorSilver ThemeColor = "silver"
	ColorBrown  ThemeColor = "brown"
	ColorWhite  ThemeColor = "white"
)

// ThemeSettings drives the look of the public site.
type ThemeSettings struct {
	ShowCountdown   bool            `json:"show_countdown"`
	ShowNewsFeed    bool            `json:"show_news_feed"`
	SnowEnabled     bool            `json:"snow_enabled"`
	BackgroundImage BackgroundImage `json:"background_image" validate:"required,oneof=christmasLights festiveTree holidayDecorations twinklingLights snowyVillage"`
	PrimaryColor    ThemeColor      `json:"primary_color" validate:"required,oneof=red blue gold purple green silver brown white"`
	AccentColor     ThemeColor      `json:"accent_color" validate:"required,oneof=red blue gold purple green silver brown white"`
}

// DefaultThemeSettings is served until an admin saves a theme.
func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{
		ShowCountdown:   true,
		ShowNewsFeed:    false,
		SnowEnabled:     true,
		BackgroundImage: BackgroundSnowyVillage,
		PrimaryColor:    ColorRed,
		AccentColor:     ColorGold,
	}
}

// StationInformation is the editable "about" content.
type StationInformation struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=500"`
	Content     string `json:"content" validate:"max=20000"`
}

// NowPlaying is the track currently announced on the site.
type NowPlaying struct {
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeatherDay is one forecast entry.
type WeatherDay struct {
	Date        string  `json:"date" validate:"required"`
	Summary     string  `json:"summary" validate:"required,max=200"`
	WeatherCode int     `json:"weather_code" validate:"gte=0"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp" validate:"gtefield=MinTemp"`
}

// WeatherData is the stored forecast.
type WeatherData struct {
	Days      []WeatherDay `json:"days"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// LastUpdateResult records the outcome of the most recent publish run.
type LastUpdateResult struct {
	UpdateTime   time.Time `json:"update_time"`
	ResultText   string    `json:"result_text"`
	UpdateFailed bool      `json:"update_failed"`
	Sections     []string  `json:"sections,omitempty"`
	JobID        string    `json:"job_id,omitempty"`
	Preview      bool      `json:"preview,omitempty"`
}

// Countdown is the time left until the holiday target.
type Countdown struct {
	Target  time.Time `json:"target"`
	Days    int       `json:"days"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Seconds int       `json:"seconds"`
	Passed  bool      `json:"passed"`
}
