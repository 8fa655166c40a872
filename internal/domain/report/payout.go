package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/paysheet/internal/domain/model"
)

// PayoutName is the registry name of the payout report.
const PayoutName = "payout"

// Layout of the payout table. Widths are fixed; longer values push the
// following columns right.
const (
	ruleWidth = 70

	headerFormat   = "%-15s %-20s %10s %10s %15s"
	rowFormat      = "%-15s %-20s %10.1f %10.2f %15.2f"
	totalFormat    = "%-15s %-20s %10s %10s %15.2f"
	departmentLine = "Department: %s"

	departmentTotalLabel = "Department total:"
	grandTotalLabel      = "GRAND TOTAL:"
)

// DepartmentGroup is the set of records sharing one department, with the sum
// of their payouts.
type DepartmentGroup struct {
	Department string
	Employees  []model.Employee
	Total      float64
}

// GroupByDepartment stable-sorts a copy of records by department and splits it
// into groups in ascending department order. Records inside a group keep
// their input order.
func GroupByDepartment(records []model.Employee) []DepartmentGroup {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b model.Employee) int {
		return strings.Compare(a.Department, b.Department)
	})

	var groups []DepartmentGroup
	for _, e := range sorted {
		if n := len(groups); n == 0 || groups[n-1].Department != e.Department {
			groups = append(groups, DepartmentGroup{Department: e.Department})
		}
		g := &groups[len(groups)-1]
		g.Employees = append(g.Employees, e)
		g.Total += e.Payout()
	}
	return groups
}

// GrandTotal sums the group totals.
func GrandTotal(groups []DepartmentGroup) float64 {
	var total float64
	for _, g := range groups {
		total += g.Total
	}
	return total
}

// Payout renders hours, rate and payout per employee grouped by department,
// with department subtotals and a grand total.
type Payout struct{}

// Generate implements Generator.
func (Payout) Generate(records []model.Employee) string {
	groups := GroupByDepartment(records)

	lines := make([]string, 0, 3+len(records)+3*len(groups))
	lines = append(lines,
		fmt.Sprintf(headerFormat, "Department", "Name", "Hours", "Rate", "Payout"),
		rule(),
	)

	for _, g := range groups {
		lines = append(lines, fmt.Sprintf(departmentLine, g.Department))
		for _, e := range g.Employees {
			lines = append(lines, fmt.Sprintf(rowFormat, "", e.Name, e.HoursWorked, e.HourlyRate, e.Payout()))
		}
		lines = append(lines,
			fmt.Sprintf(totalFormat, "", departmentTotalLabel, "", "", g.Total),
			rule(),
		)
	}
	lines = append(lines, fmt.Sprintf(totalFormat, "", grandTotalLabel, "", "", GrandTotal(groups)))

	return strings.Join(lines, "\n")
}

func rule() string { return strings.Repeat("-", ruleWidth) }
