// Package types provides type definitions for structured data used throughout the talent-search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// CandidateProfile is a stored candidate record. Field names match the
// persisted JSON layout so existing candidate lists load unchanged.
type CandidateProfile struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Summary           string    `json:"summary"`
	Skills            []string  `json:"skills"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	RawResumeText     string    `json:"rawResumeText"`
	AddedAt           time.Time `json:"addedAt"`
}

// CandidateDraft is an extraction result that has not been assigned an id or
// timestamp yet. Optional fields stay nil when the model did not return them.
type CandidateDraft struct {
	FullName          string   `json:"fullName"`
	Email             string   `json:"email"`
	Phone             *string  `json:"phone,omitempty"`
	Summary           string   `json:"summary"`
	Skills            []string `json:"skills"`
	YearsOfExperience *float64 `json:"yearsOfExperience,omitempty"`
	RawResumeText     string   `json:"rawResumeText,omitempty"`
}

// ToProfile materialises the draft into a record. Absent optional fields
// become zero values on the stored record.
func (d *CandidateDraft) ToProfile(id string, addedAt time.Time, rawText string) CandidateProfile {
	profile := CandidateProfile{
		ID:            id,
		FullName:      d.FullName,
		Email:         d.Email,
		Summary:       d.Summary,
		Skills:        append([]string(nil), d.Skills...),
		RawResumeText: rawText,
		AddedAt:       addedAt,
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if d.Phone != nil {
		profile.Phone = *d.Phone
	}
	if d.YearsOfExperience != nil && *d.YearsOfExperience > 0 {
		profile.YearsOfExperience = *d.YearsOfExperience
	}
	return profile
}
