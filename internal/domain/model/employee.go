// Package model contains domain models passed between layers.
package model

// Employee is one parsed timesheet line for one employee in one input file.
type Employee struct {
	ID          string
	Email       string
	Name        string
	Department  string  // grouping key for reports
	HoursWorked float64 // hours on the timesheet
	HourlyRate  float64 // resolved from the file's rate column

	Source Source
}

// Source locates the line an Employee was parsed from.
type Source struct {
	File string
	Line int // 1-based, header is line 1
}

// Payout returns hours worked times the hourly rate.
func (e Employee) Payout() float64 {
	return e.HoursWorked * e.HourlyRate
}
