package main

import (
	"errors"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"

	"github.com/spf13/cobra"
)

func newSuitabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suitability",
		Short: "Score skills and GPA against a drive (same body as POST /v1/suitability)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in scoring.SuitabilityInput
			if err := readRequest(cmd, &in); err != nil {
				return err
			}
			return writeResult(cmd, scoring.Suitability(in))
		},
	}
}

type distanceResult struct {
	Distance float64 `json:"distance"`
}

func newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance",
		Short: "Distance to dream drive (same body as POST /v1/distance-to-dream)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in scoring.DistanceInput
			if err := readRequest(cmd, &in); err != nil {
				return err
			}
			return writeResult(cmd, distanceResult{Distance: scoring.Distance(in)})
		},
	}
}

// readinessRequest is a flattened student record for offline readiness runs.
type readinessRequest struct {
	GPA                     float64  `json:"gpa"`
	Skills                  []string `json:"skills"`
	Branch                  string   `json:"branch"`
	GraduationYear          int      `json:"graduation_year"`
	ResumeURL               string   `json:"resume_url"`
	GithubURL               string   `json:"github_url"`
	LinkedinURL             string   `json:"linkedin_url"`
	MockInterviewsCompleted int      `json:"mock_interviews_completed"`
	MockInterviewAverage    float64  `json:"mock_interview_average"`
	RecentApplications      int      `json:"recent_applications"`
}

func newReadinessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readiness",
		Short: "Placement readiness score of one student record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req readinessRequest
			if err := readRequest(cmd, &req); err != nil {
				return err
			}
			if req.MockInterviewsCompleted < 0 || req.RecentApplications < 0 {
				return errors.New("counts cannot be negative")
			}

			result := scoring.ComputeReadiness(scoring.ReadinessInput{
				Profile: scoring.ProfileSignals{
					GPA:            req.GPA,
					SkillsCount:    len(req.Skills),
					Branch:         req.Branch,
					GraduationYear: req.GraduationYear,
					ResumeURL:      req.ResumeURL,
					GithubURL:      req.GithubURL,
					LinkedinURL:    req.LinkedinURL,
				},
				MockInterviewsCompleted: req.MockInterviewsCompleted,
				MockInterviewAverage:    req.MockInterviewAverage,
				RecentApplications:      req.RecentApplications,
			})
			return writeResult(cmd, result)
		},
	}
}

// forecastRequest needs total_students: there is no database offline.
type forecastRequest struct {
	GPAMin        float64 `json:"gpa_min"`
	TotalStudents int     `json:"total_students"`
}

func newForecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Simulated eligibility for a GPA floor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req forecastRequest
			if err := readRequest(cmd, &req); err != nil {
				return err
			}
			if req.GPAMin < 0 || req.GPAMin > 10 {
				return errors.New("gpa_min must be between 0 and 10")
			}
			if req.TotalStudents < 0 {
				return errors.New("total_students cannot be negative")
			}

			return writeResult(cmd, domain.ForecastResult{
				GPAMin:           req.GPAMin,
				TotalStudents:    req.TotalStudents,
				EligibleStudents: scoring.ForecastEligible(req.GPAMin, req.TotalStudents),
				EligibleRatio:    scoring.ForecastRatio(req.GPAMin),
				Mode:             domain.ForecastModeSimulated,
			})
		},
	}
}
