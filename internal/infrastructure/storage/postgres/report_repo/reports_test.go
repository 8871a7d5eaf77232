package report_repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardStatsQuery_EmployeesExcludeAdmins(t *testing.T) {
	// The employees card counts staff only, not admin accounts.
	assert.Contains(t, dashboardStatsQuery, "FROM cat_employees WHERE deletion_mark = false AND role = 'employee'")
}

func TestDashboardStatsQuery_AggregatesIgnoreDeleted(t *testing.T) {
	for _, line := range strings.Split(dashboardStatsQuery, "\n") {
		if !strings.Contains(line, "SELECT COUNT") && !strings.Contains(line, "SELECT COALESCE") {
			continue
		}
		assert.Contains(t, line, "deletion_mark = false")
	}
}
