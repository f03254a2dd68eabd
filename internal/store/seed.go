package store

import (
	"time"

	"github.com/jonathan/talent-search/internal/types"
)

// seedTime stamps the example records. It is a variable so tests can pin it.
var seedTime = func() time.Time { return time.Now().UTC() }

// SeedCandidates returns the two example records written on first use.
func SeedCandidates() []types.CandidateProfile {
	now := seedTime()
	return []types.CandidateProfile{
		{
			ID:                "1",
			FullName:          "Alice Java",
			Email:             "alice@example.com",
			Phone:             "555-0101",
			Summary:           "Senior Backend Engineer with 8 years of experience in Java, Spring Boot, and Microservices.",
			Skills:            []string{"Java", "Spring Boot", "MySQL", "Kafka", "Docker"},
			YearsOfExperience: 8,
			RawResumeText:     "Experienced Java Developer...",
			AddedAt:           now,
		},
		{
			ID:                "2",
			FullName:          "Bob React",
			Email:             "bob@example.com",
			Phone:             "555-0102",
			Summary:           "Frontend specialist focusing on React, TypeScript, and accessible UI design.",
			Skills:            []string{"React", "TypeScript", "Tailwind CSS", "Next.js"},
			YearsOfExperience: 5,
			RawResumeText:     "Frontend Developer...",
			AddedAt:           now,
		},
	}
}
