package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rosenlund/cutline/internal/models"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Media    MediaConfig       `yaml:"media"`
	Timeline TimelineConfig    `yaml:"timeline"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Media.Validate(); err != nil {
		return err
	}
	if err := c.Timeline.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// MediaConfig holds the media library paths and probing setup.
type MediaConfig struct {
	Path               string  `yaml:"path"`
	SQLitePath         string  `yaml:"sqlite_path"`
	OutputPath         string  `yaml:"output_path"`
	FFProbeBin         string  `yaml:"ffprobe_bin"`
	DefaultClipSeconds float64 `yaml:"default_clip_seconds"`
}

// Validate validates the media configuration.
func (c *MediaConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.SQLitePath, validation.Required),
		validation.Field(&c.OutputPath, validation.Required),
		validation.Field(&c.DefaultClipSeconds, validation.Required, validation.Min(0.1)),
	)
}

// TrackConfig declares one fixed timeline track.
type TrackConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Validate validates a track declaration.
func (c TrackConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Kind, validation.Required,
			validation.In(string(models.TrackVideo), string(models.TrackAudio))),
	)
}

// TimelineConfig holds the coordinate system, tick rate, and track layout.
type TimelineConfig struct {
	PixelsPerSecond float64       `yaml:"pixels_per_second"`
	GutterWidth     float64       `yaml:"gutter_width"`
	TickMillis      int           `yaml:"tick_millis"`
	Tracks          []TrackConfig `yaml:"tracks"`
}

// Validate validates the timeline configuration.
func (c *TimelineConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.PixelsPerSecond, validation.Required, validation.Min(1.0)),
		validation.Field(&c.GutterWidth, validation.Min(0.0)),
		validation.Field(&c.TickMillis, validation.Required, validation.Min(10)),
		validation.Field(&c.Tracks, validation.Required, validation.Length(1, 0)),
	); err != nil {
		return err
	}
	for i, tr := range c.Tracks {
		if err := tr.Validate(); err != nil {
			return fmt.Errorf("timeline: track %d: %w", i, err)
		}
	}
	return nil
}

// ModelTracks converts the declared tracks into domain tracks.
func (c *TimelineConfig) ModelTracks() []models.Track {
	out := make([]models.Track, 0, len(c.Tracks))
	for _, tr := range c.Tracks {
		out = append(out, models.Track{Name: tr.Name, Kind: models.TrackKind(tr.Kind)})
	}
	return out
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Media: MediaConfig{
			Path:               "./media",
			SQLitePath:         "./cutline.db",
			OutputPath:         "./outputs",
			FFProbeBin:         "ffprobe",
			DefaultClipSeconds: 5,
		},
		Timeline: TimelineConfig{
			PixelsPerSecond: 50,
			GutterWidth:     150,
			TickMillis:      100,
			Tracks: []TrackConfig{
				{Name: "Video 1", Kind: string(models.TrackVideo)},
				{Name: "Video 2", Kind: string(models.TrackVideo)},
				{Name: "Audio 1", Kind: string(models.TrackAudio)},
			},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
