// Package static provides non-interactive terminal output components.
//
// This package renders course lists for the list command when the output
// is a table. JSON and YAML output go through the output package instead.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/courses/internal/course"
	"github.com/raphi011/courses/internal/ui/styles"
)

// CourseHeaders are the columns of CourseRows.
var CourseHeaders = []string{"", "ID", "TITLE", "INSTRUCTOR"}

// CourseRows converts courses into table rows, one per course.
func CourseRows(courses []course.Course) [][]string {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			styles.FormatFavorite(c.Favorite),
			strconv.Itoa(c.ID),
			c.Title,
			c.InstructorName,
		})
	}
	return rows
}

// RenderCourses renders courses as a table, or "" when there are none.
func RenderCourses(courses []course.Course) string {
	return RenderTable(CourseHeaders, CourseRows(courses))
}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
