// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "devfolio/internal/models"

// DefaultPageSize is the number of project cards per gallery page.
const DefaultPageSize = 4

// View is a fully derived gallery page: the visible slice plus the
// numbers the pagination controls need. It is computed from scratch on
// every request, never stored.
type View struct {
	Projects   []models.Project
	Category   string
	Page       int
	TotalPages int
	Total      int
}

// HasPrev reports whether a previous page exists.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// PrevPage returns the previous page number.
func (v View) PrevPage() int { return v.Page - 1 }

// NextPage returns the next page number.
func (v View) NextPage() int { return v.Page + 1 }

// Pages returns 1..TotalPages for the numbered pagination controls.
func (v View) Pages() []int {
	pages := make([]int, v.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// DeriveView filters projects by category, then slices out the requested
// page. The input order is preserved. An empty or "all" category matches
// everything. TotalPages is never below 1 even when nothing matches, so
// the pagination controls always have a current page to highlight. An
// out-of-range page is clamped into the valid range.
func DeriveView(projects []models.Project, category string, page, pageSize int) View {
	if category == "" {
		category = models.CategoryAll
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var filtered []models.Project
	if category == models.CategoryAll {
		filtered = projects
	} else {
		for _, p := range projects {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return View{
		Projects:   filtered[start:end],
		Category:   category,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// ViewState tracks the visitor's current filter and page selection.
// Selecting a category always resets to the first page; paging moves
// only within the range valid for the current filter.
type ViewState struct {
	Category string
	Page     int
}

// NewViewState returns the initial state: all categories, first page.
func NewViewState() ViewState {
	return ViewState{Category: models.CategoryAll, Page: 1}
}

// SelectCategory switches the filter and resets to page 1, even when
// the same category is selected again.
func (s ViewState) SelectCategory(category string) ViewState {
	if category == "" {
		category = models.CategoryAll
	}
	return ViewState{Category: category, Page: 1}
}

// GoToPage moves to the given page if it is valid for the current view.
// Out-of-range requests leave the state untouched.
func (s ViewState) GoToPage(page, totalPages int) ViewState {
	if page < 1 || page > totalPages {
		return s
	}
	s.Page = page
	return s
}
