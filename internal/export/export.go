// Package export turns a timeline snapshot into an encoder job. The
// core's responsibility ends at producing the format/quality tuple plus
// the ordered clip list; actual encoding belongs to an external
// collaborator, and the bundled encoder only writes a job manifest.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/rosenlund/cutline/internal/models"
	"github.com/rosenlund/cutline/internal/storage"
	"github.com/rosenlund/cutline/internal/timeline"
)

// Supported output formats.
const (
	FormatMP4  = "mp4"
	FormatWebM = "webm"
	FormatAVI  = "avi"
)

// Supported quality presets.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// EventCompleted is published when an export job has been handed off.
const EventCompleted = "export.completed"

// ErrEmptyTimeline rejects exporting a timeline with no clips.
var ErrEmptyTimeline = errors.New("timeline is empty")

// Plan is the encoder job: the chosen output tuple plus an ordered
// snapshot of the timeline at confirm time.
type Plan struct {
	ID            string         `json:"id"`
	Format        string         `json:"format"`
	Quality       string         `json:"quality"`
	TotalDuration float64        `json:"total_duration"`
	Tracks        []models.Track `json:"tracks"`
	Clips         []models.Clip  `json:"clips"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Request is the validated export confirmation.
type Request struct {
	Format  string `json:"format"`
	Quality string `json:"quality"`
}

// Validate checks the output tuple against the supported sets.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Format, validation.Required, validation.In(FormatMP4, FormatWebM, FormatAVI)),
		validation.Field(&r.Quality, validation.Required, validation.In(QualityHigh, QualityMedium, QualityLow)),
	)
}

// BuildPlan assembles an encoder job from the snapshot. An empty
// timeline cannot be exported. Clips are ordered by track, then start
// time, so the encoder sees a deterministic edit list.
func BuildPlan(snap timeline.Snapshot, req Request) (Plan, error) {
	if err := req.Validate(); err != nil {
		return Plan{}, err
	}
	if len(snap.Clips) == 0 {
		return Plan{}, ErrEmptyTimeline
	}
	clips := make([]models.Clip, len(snap.Clips))
	copy(clips, snap.Clips)
	sort.SliceStable(clips, func(i, j int) bool {
		if clips[i].TrackIndex != clips[j].TrackIndex {
			return clips[i].TrackIndex < clips[j].TrackIndex
		}
		return clips[i].StartTime < clips[j].StartTime
	})
	return Plan{
		ID:            uuid.NewString(),
		Format:        req.Format,
		Quality:       req.Quality,
		TotalDuration: snap.TotalDuration,
		Tracks:        snap.Tracks,
		Clips:         clips,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Encoder receives finished plans. The manifest encoder is the only
// implementation shipped here.
type Encoder interface {
	Encode(plan Plan) (string, error)
}

// ManifestEncoder writes the plan as a JSON manifest into the outputs
// directory and reports the manifest path.
type ManifestEncoder struct {
	Outputs storage.Provider
}

// Encode writes export_<id>.json atomically via the storage provider.
func (e *ManifestEncoder) Encode(plan Plan) (string, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode plan: %w", err)
	}
	name := "export_" + plan.ID + ".json"
	if err := e.Outputs.Write(name, data); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return name, nil
}

// Result is the payload of an export.completed event.
type Result struct {
	PlanID   string `json:"plan_id"`
	Format   string `json:"format"`
	Quality  string `json:"quality"`
	Manifest string `json:"manifest"`
}

// Service validates export requests and hands plans to the encoder.
type Service struct {
	encoder Encoder
	logger  *slog.Logger
	emit    func(kind string, data any)
}

// NewService creates an export service. emit may be nil.
func NewService(encoder Encoder, logger *slog.Logger, emit func(kind string, data any)) *Service {
	if emit == nil {
		emit = func(string, any) {}
	}
	return &Service{encoder: encoder, logger: logger, emit: emit}
}

// Export builds a plan from the snapshot and hands it to the encoder.
func (s *Service) Export(snap timeline.Snapshot, req Request) (Result, error) {
	plan, err := BuildPlan(snap, req)
	if err != nil {
		return Result{}, err
	}
	manifest, err := s.encoder.Encode(plan)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		PlanID:   plan.ID,
		Format:   plan.Format,
		Quality:  plan.Quality,
		Manifest: manifest,
	}
	s.logger.Info("export plan written",
		slog.String("plan_id", plan.ID),
		slog.String("format", plan.Format),
		slog.String("quality", plan.Quality),
		slog.Int("clips", len(plan.Clips)))
	s.emit(EventCompleted, res)
	return res, nil
}
