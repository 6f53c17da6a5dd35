package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/jobtrack/internal/models"
)

var (
	quotedCustomerRegex = regexp.MustCompile(`@"([^"]*)"`)
	customerRegex       = regexp.MustCompile(`@(\S+)`)
	dueRegex            = regexp.MustCompile(`due:(\S+)`)
)

// ParsedJob represents a job parsed from one line of quick-add text
type ParsedJob struct {
	JobName      string
	CustomerName string
	DueDate      *models.Date
	Errors       []string
}

// ParseQuickAdd extracts job fields using natural syntax
// Syntax: `Tank 40 gal @Acme due:2024-07-01` or `Hood @"Acme Foods" due:2w`
func ParseQuickAdd(input string, today models.Date) ParsedJob {
	result := ParsedJob{Errors: []string{}}

	// Extract customer (@"Multi word" first, then @single-word)
	if m := quotedCustomerRegex.FindStringSubmatch(input); m != nil {
		result.CustomerName = strings.TrimSpace(m[1])
		input = strings.Replace(input, m[0], "", 1)
	} else if m := customerRegex.FindStringSubmatch(input); m != nil {
		result.CustomerName = m[1]
		input = strings.Replace(input, m[0], "", 1)
	}

	// Extract due date (due:3days, due:15/12/2024, etc.)
	if m := dueRegex.FindStringSubmatch(input); m != nil {
		dueDate, err := ParseDueDateAt(m[1], today)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+m[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Clean up the name (remove extra spaces)
	result.JobName = strings.Join(strings.Fields(input), " ")

	if result.JobName == "" {
		result.Errors = append(result.Errors, "Job name is required")
	}
	if result.CustomerName == "" {
		result.Errors = append(result.Errors, "Customer is required (use @customer)")
	}
	return result
}
