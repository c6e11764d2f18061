// Package upload validates candidate file submissions and describes the expected CSV format.
package upload

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxFileSize is the largest accepted upload, 5 MB.
const MaxFileSize = 5 << 20

// ValidationError is a user-facing rejection of a submission.
// Title and Description are shown as a notification.
type ValidationError struct {
	Field       string
	Title       string
	Description string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Description)
}

// File describes an uploaded file without holding its content.
type File struct {
	Name string
	Size int64
}

// Submission is an upload form post.
type Submission struct {
	Role string `validate:"required"`
	File *File  `validate:"required"`
}

var validate = validator.New()

// Validate checks a submission in form order: role, file presence, file type, file size.
// It returns the first failure.
func Validate(s Submission) error {
	s.Role = strings.TrimSpace(s.Role)
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			switch errs[0].Field() {
			case "Role":
				return &ValidationError{Field: "role", Title: "Job role is required", Description: "Please enter a job role before uploading candidates"}
			case "File":
				return &ValidationError{Field: "file", Title: "File is required", Description: "Please select a CSV file to upload"}
			}
		}
		return fmt.Errorf("failed to validate submission: %w", err)
	}

	if !strings.EqualFold(filepath.Ext(s.File.Name), ".csv") {
		return &ValidationError{Field: "file", Title: "Unsupported file type", Description: "CSV files only"}
	}
	if s.File.Size > MaxFileSize {
		return &ValidationError{Field: "file", Title: "File too large", Description: "CSV files only, max 5MB"}
	}
	return nil
}

// SampleHeader is the column layout of a candidate CSV file.
var SampleHeader = []string{"name", "email", "phone", "experience", "education", "skills"}

// SampleRows are example rows following SampleHeader.
var SampleRows = [][]string{
	{"John Doe", "john@example.com", "555-1234", "5 years", "Bachelor's in CS", "React, Node.js, TypeScript"},
	{"Jane Smith", "jane@example.com", "555-5678", "3 years", "Master's in CS", "Python, Machine Learning, SQL"},
	{"Bob Johnson", "bob@example.com", "555-9012", "7 years", "PhD in CS", "Java, C++, Cloud Infrastructure"},
}

// WriteSample writes the sample CSV file to w.
func WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SampleHeader); err != nil {
		return fmt.Errorf("failed to write sample header: %w", err)
	}
	if err := cw.WriteAll(SampleRows); err != nil {
		return fmt.Errorf("failed to write sample rows: %w", err)
	}
	return nil
}
