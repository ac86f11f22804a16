package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ReviewPageSize is the fixed dashboard page size.
const ReviewPageSize = 10

// ReviewTab is a coarse status bucket of the reviewer dashboard.
type ReviewTab string

const (
	TabInReview  ReviewTab = "in_review"
	TabMissing   ReviewTab = "missing"
	TabCompliant ReviewTab = "compliant"
	TabApproved  ReviewTab = "approved"
	TabRefused   ReviewTab = "refused"
	TabAll       ReviewTab = "all"
)

var ErrInvalidTab = errors.New("invalid review tab")

var tabStatuses = map[ReviewTab][]ApplicationStatus{
	TabInReview:  {StatusUnderReview},
	TabMissing:   {StatusMissingElements},
	TabCompliant: {StatusCompliant},
	TabApproved:  {StatusApproved},
	TabRefused:   {StatusRefused},
	TabAll:       AllStatuses,
}

func ParseReviewTab(s string) (ReviewTab, error) {
	if _, ok := tabStatuses[ReviewTab(s)]; ok {
		return ReviewTab(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
}

// Statuses returns the bucket of the tab.
func (t ReviewTab) Statuses() []ApplicationStatus {
	return tabStatuses[t]
}

// DefaultTab is the landing tab of each reviewer dashboard.
func DefaultTab(actor Actor) ReviewTab {
	if actor == ActorReviewerTier2 {
		return TabCompliant
	}
	return TabInReview
}

// ReviewQuery is the dashboard list state: tab, filter, search and page.
type ReviewQuery struct {
	Tab          ReviewTab         `json:"tab"`
	StatusFilter ApplicationStatus `json:"status_filter,omitempty"`
	Search       string            `json:"search,omitempty"`
	Page         int               `json:"page"`
}

func NewReviewQuery(tab ReviewTab) ReviewQuery {
	return ReviewQuery{Tab: tab, Page: 1}
}

// WithSearch changes the search text and goes back to the first page.
func (q ReviewQuery) WithSearch(search string) ReviewQuery {
	if q.Search != search {
		q.Page = 1
	}
	q.Search = search
	return q
}

// WithStatusFilter changes the status filter and goes back to the first page.
func (q ReviewQuery) WithStatusFilter(status ApplicationStatus) ReviewQuery {
	if q.StatusFilter != status {
		q.Page = 1
	}
	q.StatusFilter = status
	return q
}

func (q ReviewQuery) WithPage(page int) ReviewQuery {
	q.Page = page
	return q
}

// Filter narrows already fetched applications by status filter and search,
// then orders them by creation time so refreshes never reshuffle the list.
func (q ReviewQuery) Filter(apps []Application) []Application {
	bucket := make(map[ApplicationStatus]bool)
	for _, s := range q.Tab.Statuses() {
		bucket[s] = true
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		if !bucket[a.Status] {
			continue
		}
		if q.StatusFilter != "" && a.Status != q.StatusFilter {
			continue
		}
		if needle != "" && !matchesSearch(a, needle) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func matchesSearch(a Application, needle string) bool {
	return strings.Contains(strings.ToLower(a.Form.Nom), needle) ||
		strings.Contains(strings.ToLower(a.Form.Email), needle)
}

// Page is one page of a filtered list.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Paginate returns items [(page-1)*size, page*size) clipped to the list. The
// page is clamped into [1, totalPages]; an empty list has a single empty page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = ReviewPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
