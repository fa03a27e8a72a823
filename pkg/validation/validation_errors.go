package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Student profile
	"FullName":       "Full name",
	"GPA":            "GPA",
	"Branch":         "Branch",
	"GraduationYear": "Graduation year",
	"Skills":         "Skills",
	"ResumeURL":      "Resume URL",
	"GithubURL":      "GitHub URL",
	"LinkedinURL":    "LinkedIn URL",

	// Drive
	"CompanyName":      "Company name",
	"Title":            "Title",
	"Description":      "Description",
	"RequiredSkills":   "Required skills",
	"PreferredSkills":  "Preferred skills",
	"MinGPA":           "Minimum GPA",
	"SalaryMin":        "Minimum salary",
	"SalaryMax":        "Maximum salary",
	"Location":         "Location",
	"EligibleBranches": "Eligible branches",
	"DriveDate":        "Drive date",
	"Deadline":         "Application deadline",
	"Status":           "Status",

	// Scoring
	"StudentSkills": "Student skills",
	"StudentGPA":    "Student GPA",
	"GPAMin":        "Minimum GPA",
	"TotalStudents": "Total students",

	// Prep
	"Role":     "Role",
	"Question": "Question",
	"Answer":   "Answer",
	"Topic":    "Topic",
	"Count":    "Count",
	"DriveID":  "Drive",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into one line for error responses
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s item(s)", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at most %s item(s)", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, param)

	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", label, param)

	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", label)

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' - /", label)

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)

	case "gpa":
		return fmt.Sprintf("%s must be between 0 and 10", label)

	case "grad_year":
		return fmt.Sprintf("%s is out of range", label)

	case "skill_list":
		return fmt.Sprintf("%s must be at most %d non-empty entries of up to %d characters", label, maxSkills, maxSkillLength)

	case "gtefield":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-facing label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
