package course

import (
	"strconv"

	"github.com/sahilm/fuzzy"
)

// Course is a single catalog item as returned by the collection endpoint.
type Course struct {
	ID                 int    `json:"id" yaml:"id"`
	Title              string `json:"title" yaml:"title"`
	InstructorName     string `json:"instructor_name" yaml:"instructor_name"`
	InstructorImageURL string `json:"instructor_image_url" yaml:"instructor_image_url"`
	Favorite           bool   `json:"favorite" yaml:"favorite"`
}

// Order is the display order of a fetch: course ids in server order.
type Order []int

// Table maps Key(id) to the course with that id.
type Table map[string]Course

// Key returns the table key for a course id.
func Key(id int) string {
	return strconv.Itoa(id)
}

// Index builds the order and the table for one fetch.
// A duplicated id keeps its first position in the order and the last
// body in the table, so every id in the order has exactly one entry.
func Index(courses []Course) (Order, Table) {
	order := make(Order, 0, len(courses))
	table := make(Table, len(courses))

	for _, c := range courses {
		key := Key(c.ID)
		if _, seen := table[key]; !seen {
			order = append(order, c.ID)
		}
		table[key] = c
	}

	return order, table
}

// Lookup returns the course with the given id.
func (t Table) Lookup(id int) (Course, bool) {
	c, ok := t[Key(id)]
	return c, ok
}

// WithFavorite returns a copy of t with the favorite flag of id set to v.
// It reports false, and returns t unchanged, if id is not in the table.
func (t Table) WithFavorite(id int, v bool) (Table, bool) {
	c, ok := t.Lookup(id)
	if !ok {
		return t, false
	}

	next := make(Table, len(t))
	for k, existing := range t {
		next[k] = existing
	}
	c.Favorite = v
	next[Key(id)] = c

	return next, true
}

// Favorites returns the number of courses marked favorite.
func (t Table) Favorites() int {
	n := 0
	for _, c := range t {
		if c.Favorite {
			n++
		}
	}
	return n
}

// Visible returns the courses of order that a view should render.
// With onlyFavorites set, non-favorite courses are dropped; relative order
// is preserved either way. Ids without a table entry are skipped.
func Visible(order Order, table Table, onlyFavorites bool) []Course {
	visible := make([]Course, 0, len(order))
	for _, id := range order {
		c, ok := table.Lookup(id)
		if !ok {
			continue
		}
		if onlyFavorites && !c.Favorite {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// IDs returns the ids of courses in order.
func IDs(courses []Course) []int {
	ids := make([]int, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return ids
}

// searchSource implements fuzzy.Source over title and instructor.
type searchSource []Course

func (s searchSource) String(i int) string { return s[i].Title + " " + s[i].InstructorName }
func (s searchSource) Len() int            { return len(s) }

// Search returns the courses matching query, best match first.
// An empty query returns courses unchanged.
func Search(courses []Course, query string) []Course {
	if query == "" {
		return courses
	}

	matches := fuzzy.FindFrom(query, searchSource(courses))
	found := make([]Course, len(matches))
	for i, m := range matches {
		found[i] = courses[m.Index]
	}
	return found
}
