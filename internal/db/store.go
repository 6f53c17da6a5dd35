package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/models"
)

// Storage keys. They match the keys the browser build used so documents
// move between the two unchanged.
const (
	DataKey     = "job-milestone-tracker"
	DarkModeKey = "job-tracker-dark-mode"
	FiltersKey  = "job-tracker-filters"
)

var (
	ErrInvalidImport = errors.New("invalid import document")
	ErrJobNotFound   = errors.New("job not found")
	ErrAmbiguousID   = errors.New("ambiguous job id")
	ErrMissingField  = errors.New("job name and customer are required")
)

// Store is the job and template repository. Every operation reads the whole
// document, changes it and writes it back in a single Set.
type Store struct {
	mu    sync.Mutex
	kv    KV
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Store
type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTemplateID mints ids for template milestones created by the editor
func (s *Store) newTemplateID() string {
	id := s.newID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "tmpl-" + id
}

// Data returns the whole persisted document
func (s *Store) Data() (models.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load must be called with mu held
func (s *Store) load() (models.AppData, error) {
	raw, ok, err := s.kv.Get(DataKey)
	if err != nil {
		return models.AppData{}, fmt.Errorf("failed to read %s: %w", DataKey, err)
	}
	if !ok || raw == "" {
		return models.DefaultAppData(), nil
	}
	data, err := decodeDocument([]byte(raw))
	if err != nil {
		s.log.Warn("stored document is unreadable, using defaults", zap.Error(err))
		return models.DefaultAppData(), nil
	}
	return data, nil
}

// save must be called with mu held
func (s *Store) save(data models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.kv.Set(DataKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", DataKey, err)
	}
	return nil
}

// decodeDocument parses a full document, requiring jobs and template arrays
func decodeDocument(raw []byte) (models.AppData, error) {
	var shape struct {
		Jobs     json.RawMessage `json:"jobs"`
		Template json.RawMessage `json:"template"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return models.AppData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if !isArray(shape.Jobs) {
		return models.AppData{}, fmt.Errorf("%w: jobs must be an array", ErrInvalidImport)
	}
	if !isArray(shape.Template) {
		return models.AppData{}, fmt.Errorf("%w: template must be an array", ErrInvalidImport)
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.AppData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	normalize(&data)
	return data, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// normalize replaces absent collections with empty ones
func normalize(data *models.AppData) {
	if data.Jobs == nil {
		data.Jobs = []models.Job{}
	}
	if data.Template == nil {
		data.Template = []models.TemplateMilestone{}
	}
	if data.PhaseWeights == nil {
		data.PhaseWeights = []models.PhaseWeight{}
	}
	for i := range data.Jobs {
		if data.Jobs[i].Milestones == nil {
			data.Jobs[i].Milestones = []models.Milestone{}
		}
		if data.Jobs[i].Photos == nil {
			data.Jobs[i].Photos = []string{}
		}
	}
}
