package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	maxGPA          = 10.0
	minGradYear     = 1990
	gradYearHorizon = 6
	maxSkills       = 50
	maxSkillLength  = 60
)

var (
	// Letters, spaces and common punctuation: . ' - /
	nameRegex = regexp.MustCompile(`^[\p{L} .'/-]+$`)

	// Letters, digits and the symbols that appear in tech names: C++, C#, Node.js, CI/CD
	skillRegex = regexp.MustCompile(`^[\p{L}0-9 .+#/&()_-]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("gpa", ValidGPA)
	_ = v.RegisterValidation("grad_year", ValidGraduationYear)
	_ = v.RegisterValidation("skill_list", ValidSkillList)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// ValidGPA accepts a GPA on the 10-point scale
func ValidGPA(fl validator.FieldLevel) bool {
	gpa := fl.Field().Float()
	return gpa >= 0 && gpa <= maxGPA
}

// ValidGraduationYear allows zero (unset) or a year between 1990 and six years from now
func ValidGraduationYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year >= minGradYear && year <= int64(time.Now().Year()+gradYearHorizon)
}

// ValidSkillList checks a []string of skills: bounded length, no blanks, sane characters
func ValidSkillList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Len() > maxSkills {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		s := strings.TrimSpace(field.Index(i).String())
		if s == "" || len([]rune(s)) > maxSkillLength || !skillRegex.MatchString(s) {
			return false
		}
	}
	return true
}
