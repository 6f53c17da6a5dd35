package db

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/reconcile"
)

// CreateJobRequest holds the data needed to create a new job
type CreateJobRequest struct {
	JobName      string
	CustomerName string
	DueDate      *models.Date
}

// JobUpdate holds optional field changes; nil fields are left alone
type JobUpdate struct {
	JobName      *string
	CustomerName *string
	DueDate      *models.Date
	ClearDueDate bool
}

// Jobs returns every job, newest first
func (s *Store) Jobs() ([]models.Job, error) {
	data, err := s.Data()
	if err != nil {
		return nil, err
	}
	return data.Jobs, nil
}

// Job returns the job with the given id, or nil if there is none
func (s *Store) Job(id string) (*models.Job, error) {
	data, err := s.Data()
	if err != nil {
		return nil, err
	}
	return data.Job(id), nil
}

// ResolveJobID turns a full id, a unique id prefix or an exact job name
// (case-insensitive) into a job id
func (s *Store) ResolveJobID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrJobNotFound
	}
	jobs, err := s.Jobs()
	if err != nil {
		return "", err
	}

	var byPrefix, byName []string
	for _, j := range jobs {
		if j.ID == ref {
			return j.ID, nil
		}
		if strings.HasPrefix(j.ID, ref) {
			byPrefix = append(byPrefix, j.ID)
		}
		if strings.EqualFold(j.JobName, ref) {
			byName = append(byName, j.ID)
		}
	}

	for _, matches := range [][]string{byPrefix, byName} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("%w: %q matches %d jobs", ErrAmbiguousID, ref, len(matches))
		}
	}
	return "", fmt.Errorf("%w: %s", ErrJobNotFound, ref)
}

// AddJob creates a job with a private copy of the current template, all
// milestones incomplete. New jobs go to the front of the list.
func (s *Store) AddJob(req CreateJobRequest) (*models.Job, error) {
	name := strings.TrimSpace(req.JobName)
	customer := strings.TrimSpace(req.CustomerName)
	if name == "" || customer == "" {
		return nil, ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	job := models.Job{
		ID:           s.newID(),
		JobName:      name,
		CustomerName: customer,
		DueDate:      req.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
		Milestones:   reconcile.Instantiate(data.Template, s.newID),
		Notes:        "",
		Photos:       []string{},
	}
	data.Jobs = append([]models.Job{job}, data.Jobs...)

	if err := s.save(data); err != nil {
		return nil, err
	}
	s.log.Info("job created", zap.String("job_id", job.ID), zap.Int("milestones", len(job.Milestones)))
	return &job, nil
}

// mutateJob loads the document, applies fn to the job and saves it with a
// fresh UpdatedAt. fn returns false to abort without writing. A missing job
// or an aborted change yields (nil, nil).
func (s *Store) mutateJob(id string, fn func(data *models.AppData, job *models.Job) bool) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	job := data.Job(id)
	if job == nil || !fn(&data, job) {
		return nil, nil
	}
	job.UpdatedAt = s.now()

	if err := s.save(data); err != nil {
		return nil, err
	}
	out := job.Clone()
	return &out, nil
}

// UpdateJob applies field changes to a job
func (s *Store) UpdateJob(id string, upd JobUpdate) (*models.Job, error) {
	if upd.JobName != nil && strings.TrimSpace(*upd.JobName) == "" {
		return nil, ErrMissingField
	}
	if upd.CustomerName != nil && strings.TrimSpace(*upd.CustomerName) == "" {
		return nil, ErrMissingField
	}

	return s.mutateJob(id, func(_ *models.AppData, job *models.Job) bool {
		if upd.JobName != nil {
			job.JobName = strings.TrimSpace(*upd.JobName)
		}
		if upd.CustomerName != nil {
			job.CustomerName = strings.TrimSpace(*upd.CustomerName)
		}
		switch {
		case upd.ClearDueDate:
			job.DueDate = nil
		case upd.DueDate != nil:
			due := *upd.DueDate
			job.DueDate = &due
		}
		return true
	})
}

// DeleteJob removes a job. It reports whether the job existed.
func (s *Store) DeleteJob(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return false, err
	}
	before := len(data.Jobs)
	data.Jobs = slices.DeleteFunc(data.Jobs, func(j models.Job) bool { return j.ID == id })
	if len(data.Jobs) == before {
		return false, nil
	}

	if err := s.save(data); err != nil {
		return false, err
	}
	s.log.Info("job deleted", zap.String("job_id", id))
	return true, nil
}

// SaveNotes replaces a job's free-text notes
func (s *Store) SaveNotes(id, notes string) (*models.Job, error) {
	return s.mutateJob(id, func(_ *models.AppData, job *models.Job) bool {
		job.Notes = notes
		return true
	})
}

// SavePhotos replaces a job's photo list
func (s *Store) SavePhotos(id string, photos []string) (*models.Job, error) {
	return s.mutateJob(id, func(_ *models.AppData, job *models.Job) bool {
		job.Photos = slices.Clone(photos)
		if job.Photos == nil {
			job.Photos = []string{}
		}
		return true
	})
}

// AddPhotos appends photos to a job in one write. Nothing is written when
// photos is empty.
func (s *Store) AddPhotos(id string, photos []string) (*models.Job, error) {
	if len(photos) == 0 {
		return s.Job(id)
	}
	job, err := s.mutateJob(id, func(_ *models.AppData, job *models.Job) bool {
		job.Photos = append(job.Photos, photos...)
		return true
	})
	if job != nil {
		s.log.Info("photos added", zap.String("job_id", id), zap.Int("count", len(photos)))
	}
	return job, err
}

// RemovePhoto drops the photo at index. An out-of-range index yields (nil, nil).
func (s *Store) RemovePhoto(id string, index int) (*models.Job, error) {
	return s.mutateJob(id, func(_ *models.AppData, job *models.Job) bool {
		if index < 0 || index >= len(job.Photos) {
			return false
		}
		job.Photos = slices.Delete(job.Photos, index, index+1)
		return true
	})
}

// ToggleMilestone flips one milestone's completion state. An unknown job
// or milestone leaves the document untouched and yields (nil, nil).
func (s *Store) ToggleMilestone(jobID, milestoneID string) (*models.Job, error) {
	now := s.now()
	return s.mutateJob(jobID, func(_ *models.AppData, job *models.Job) bool {
		m := job.Milestone(milestoneID)
		if m == nil {
			return false
		}
		m.SetComplete(!m.IsComplete, now)
		s.log.Debug("milestone toggled",
			zap.String("job_id", jobID),
			zap.String("milestone_id", milestoneID),
			zap.Bool("complete", m.IsComplete))
		return true
	})
}

// ApplyTemplateToJob reconciles a job's milestones with the current
// template. Completion survives for milestones whose phase and title still
// exist; everything else is dropped or created fresh.
func (s *Store) ApplyTemplateToJob(id string) (*models.Job, error) {
	job, err := s.mutateJob(id, func(data *models.AppData, job *models.Job) bool {
		job.Milestones = reconcile.Apply(job.Milestones, data.Template, s.newID)
		return true
	})
	if job != nil {
		s.log.Info("template applied", zap.String("job_id", id), zap.Int("milestones", len(job.Milestones)))
	}
	return job, err
}
