package application

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// Application links a user's resume to a job posting.
type Application struct {
	id          string
	jobID       string
	resumeID    string
	applicantID string
	createdAt   int64
}

// New validates and creates an Application with a fresh ID.
func New(jobID, resumeID, applicantID string, now time.Time) (Application, error) {
	if jobID == "" {
		return Application{}, domain.NewFieldRequired("job_id")
	}
	if resumeID == "" {
		return Application{}, domain.NewFieldRequired("resume_id")
	}
	if applicantID == "" {
		return Application{}, domain.NewFieldRequired("applicant_id")
	}
	return Application{
		id:          ksuid.New().String(),
		jobID:       jobID,
		resumeID:    resumeID,
		applicantID: applicantID,
		createdAt:   now.UnixMilli(),
	}, nil
}

// Reconstruct creates an Application without validation (storage hydration).
func Reconstruct(id, jobID, resumeID, applicantID string, createdAt int64) Application {
	return Application{id: id, jobID: jobID, resumeID: resumeID, applicantID: applicantID, createdAt: createdAt}
}

// ID returns the application identifier.
func (a *Application) ID() string { return a.id }

// JobID returns the job applied to.
func (a *Application) JobID() string { return a.jobID }

// ResumeID returns the submitted resume.
func (a *Application) ResumeID() string { return a.resumeID }

// ApplicantID returns the applying user's ID.
func (a *Application) ApplicantID() string { return a.applicantID }

// CreatedAt returns the application time in unix millis.
func (a *Application) CreatedAt() int64 { return a.createdAt }
