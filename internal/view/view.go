// Package view derives the visible page of tasks from the full list.
package view

import (
	"fmt"
	"strings"

	"todo/internal/task"
)

// DefaultPageSize is used when a caller passes a page size below 1.
const DefaultPageSize = 6

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
	}
}

// Match reports whether t belongs to the filtered set. Unknown filters match everything.
func (f Filter) Match(t task.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles all → active → completed → all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) String() string { return string(f) }

// Page is one screen of the filtered list.
type Page struct {
	Tasks      []task.Task
	Total      int // size of the filtered set, not of Tasks
	TotalPages int
	Number     int // 1-based, always within [1, TotalPages]
	Size       int
}

func (p Page) HasPrev() bool   { return p.Number > 1 }
func (p Page) HasNext() bool   { return p.Number < p.TotalPages }
func (p Page) Paginated() bool { return p.TotalPages > 1 }

// Offset is the index of the first visible task within the filtered set.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// Derive filters tasks, keeps their order, and slices out the requested
// page. A page outside [1, TotalPages] is clamped; callers should adopt
// the returned Number as their current page. Derive does not modify
// tasks and the returned slice never aliases it.
func Derive(tasks []task.Task, f Filter, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			filtered = append(filtered, t)
		}
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page = clamp(page, 1, totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	visible := make([]task.Task, end-start)
	copy(visible, filtered[start:end])

	return Page{
		Tasks:      visible,
		Total:      total,
		TotalPages: totalPages,
		Number:     page,
		Size:       pageSize,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
