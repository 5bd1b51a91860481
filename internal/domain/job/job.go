package job

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/segmentio/ksuid"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// Field limits in runes.
const (
	MaxTitleLength        = 256
	MaxDescriptionLength  = 20000
	MaxRequirementsLength = 20000
)

// Job is a job posting (immutable value object).
type Job struct {
	id           string
	recruiterID  string
	title        string
	description  string
	requirements string
	createdAt    int64
}

// New validates and creates a Job with a fresh ID.
// Title and description are required; requirements are optional.
func New(recruiterID, title, description, requirements string, now time.Time) (Job, error) {
	if recruiterID == "" {
		return Job{}, domain.NewFieldRequired("recruiter_id")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Job{}, domain.NewFieldRequired("title")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return Job{}, domain.NewInvalidField("title", fmt.Sprintf("title too long (max %d)", MaxTitleLength))
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Job{}, domain.NewFieldRequired("description")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return Job{}, domain.NewInvalidField("description",
			fmt.Sprintf("description too long (max %d)", MaxDescriptionLength))
	}
	requirements = strings.TrimSpace(requirements)
	if utf8.RuneCountInString(requirements) > MaxRequirementsLength {
		return Job{}, domain.NewInvalidField("requirements",
			fmt.Sprintf("requirements too long (max %d)", MaxRequirementsLength))
	}

	return Job{
		id:           ksuid.New().String(),
		recruiterID:  recruiterID,
		title:        title,
		description:  description,
		requirements: requirements,
		createdAt:    now.UnixMilli(),
	}, nil
}

// Reconstruct creates a Job without validation (storage hydration).
func Reconstruct(id, recruiterID, title, description, requirements string, createdAt int64) Job {
	return Job{
		id: id, recruiterID: recruiterID, title: title,
		description: description, requirements: requirements, createdAt: createdAt,
	}
}

// ID returns the job identifier.
func (j *Job) ID() string { return j.id }

// RecruiterID returns the posting recruiter's user ID.
func (j *Job) RecruiterID() string { return j.recruiterID }

// Title returns the job title.
func (j *Job) Title() string { return j.title }

// Description returns the job description.
func (j *Job) Description() string { return j.description }

// Requirements returns the free-text requirements.
func (j *Job) Requirements() string { return j.requirements }

// CreatedAt returns the posting time in unix millis.
func (j *Job) CreatedAt() int64 { return j.createdAt }

// CombinedText is the text matched against resumes: title, description and
// requirements joined by single spaces.
func (j *Job) CombinedText() string {
	return j.title + " " + j.description + " " + j.requirements
}
