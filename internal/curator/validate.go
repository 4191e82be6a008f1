package curator

import (
	"fmt"

	"github.com/ftnpaper/curator/internal/edition"
)

// ValidationReport is the result of ValidateData.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateData checks the working copy. The only hard error is a non-empty
// day without a titled main story; everything else is a warning.
func (c *Curator) ValidateData() *ValidationReport {
	report := &ValidationReport{Valid: true}

	for _, d := range c.working.Days {
		if d == nil {
			continue
		}
		report.Errors = append(report.Errors, dayErrors(d)...)
		report.Warnings = append(report.Warnings, dayWarnings(d, c.maxMinis())...)
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func dayErrors(d *edition.Day) []string {
	if d.IsEmpty() {
		return nil
	}
	if !d.Main.HasTitle() {
		return []string{fmt.Sprintf("day %d: missing main story", d.Number)}
	}
	return nil
}

func dayWarnings(d *edition.Day, maxMinis int) []string {
	if d.IsEmpty() {
		return []string{fmt.Sprintf("day %d: no stories", d.Number)}
	}

	var warnings []string
	switch n := len(d.Minis); {
	case n == 0:
		warnings = append(warnings, fmt.Sprintf("day %d: no mini articles", d.Number))
	case n > maxMinis:
		warnings = append(warnings, fmt.Sprintf("day %d: %d mini articles (max %d)", d.Number, n, maxMinis))
	}
	if d.OverCapacity() {
		warnings = append(warnings, fmt.Sprintf("day %d: over capacity (%d/%d)", d.Number, d.Total(), d.Limit()))
	}
	return warnings
}
