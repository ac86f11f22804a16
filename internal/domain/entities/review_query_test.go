package entities

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func makeApps(n int, status ApplicationStatus) []Application {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	out := make([]Application, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Application{
			ID:        fmt.Sprintf("app-%02d", i),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Form:      ApplicationForm{Nom: fmt.Sprintf("Exploitation %02d", i), Email: fmt.Sprintf("user%02d@example.yt", i)},
		})
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	cases := []struct {
		page      int
		wantPage  int
		wantFirst int
		wantLen   int
		prev      bool
		next      bool
	}{
		{page: 1, wantPage: 1, wantFirst: 0, wantLen: 10, prev: false, next: true},
		{page: 2, wantPage: 2, wantFirst: 10, wantLen: 10, prev: true, next: true},
		{page: 3, wantPage: 3, wantFirst: 20, wantLen: 3, prev: true, next: false},
		{page: 9, wantPage: 3, wantFirst: 20, wantLen: 3, prev: true, next: false},
		{page: 0, wantPage: 1, wantFirst: 0, wantLen: 10, prev: false, next: true},
	}
	for _, tc := range cases {
		p := Paginate(items, tc.page, ReviewPageSize)
		if p.Page != tc.wantPage || len(p.Items) != tc.wantLen || p.Items[0] != tc.wantFirst {
			t.Fatalf("page %d: unexpected %+v", tc.page, p)
		}
		if p.HasPrev != tc.prev || p.HasNext != tc.next {
			t.Fatalf("page %d: unexpected boundaries prev=%v next=%v", tc.page, p.HasPrev, p.HasNext)
		}
		if p.TotalPages != 3 || p.TotalItems != 23 {
			t.Fatalf("unexpected totals %+v", p)
		}
	}

	empty := Paginate([]int{}, 4, ReviewPageSize)
	if empty.Page != 1 || empty.TotalPages != 1 || len(empty.Items) != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}

func TestReviewQuery_ResetsPage(t *testing.T) {
	q := NewReviewQuery(TabAll).WithPage(3)

	if got := q.WithSearch("maoré"); got.Page != 1 {
		t.Fatalf("search change must reset page, got %d", got.Page)
	}
	if got := q.WithSearch(""); got.Page != 3 {
		t.Fatalf("unchanged search must keep page, got %d", got.Page)
	}
	if got := q.WithStatusFilter(StatusRefused); got.Page != 1 {
		t.Fatalf("filter change must reset page, got %d", got.Page)
	}
}

func TestReviewQuery_Filter(t *testing.T) {
	apps := append(makeApps(3, StatusUnderReview), makeApps(2, StatusRefused)...)
	apps[4].ID = "app-99"
	apps[4].Form.Nom = "GAEC Bandrélé"
	apps[4].Form.Email = "gaec@BANDRELE.yt"

	t.Run("tab bucket", func(t *testing.T) {
		got := NewReviewQuery(TabInReview).Filter(apps)
		if len(got) != 3 {
			t.Fatalf("expected 3, got %d", len(got))
		}
	})

	t.Run("status filter inside all", func(t *testing.T) {
		got := NewReviewQuery(TabAll).WithStatusFilter(StatusRefused).Filter(apps)
		if len(got) != 2 {
			t.Fatalf("expected 2, got %d", len(got))
		}
	})

	t.Run("status filter outside tab", func(t *testing.T) {
		got := NewReviewQuery(TabInReview).WithStatusFilter(StatusRefused).Filter(apps)
		if len(got) != 0 {
			t.Fatalf("expected none, got %d", len(got))
		}
	})

	t.Run("case insensitive search on name and email", func(t *testing.T) {
		if got := NewReviewQuery(TabAll).WithSearch("bandrélé").Filter(apps); len(got) != 1 || got[0].ID != "app-99" {
			t.Fatalf("unexpected name match %v", got)
		}
		if got := NewReviewQuery(TabAll).WithSearch("@bandrele").Filter(apps); len(got) != 1 {
			t.Fatalf("unexpected email match %v", got)
		}
	})

	t.Run("search ignores the application id", func(t *testing.T) {
		if got := NewReviewQuery(TabAll).WithSearch("app-99").Filter(apps); len(got) != 0 {
			t.Fatalf("search must only look at nom and email, got %v", got)
		}
	})

	t.Run("stable order", func(t *testing.T) {
		shuffled := []Application{apps[2], apps[0], apps[1]}
		got := NewReviewQuery(TabInReview).Filter(shuffled)
		for i, a := range got {
			if a.ID != fmt.Sprintf("app-%02d", i) {
				t.Fatalf("unexpected order at %d: %s", i, a.ID)
			}
		}
	})
}

func TestParseReviewTab(t *testing.T) {
	if tab, err := ParseReviewTab("compliant"); err != nil || tab != TabCompliant {
		t.Fatalf("unexpected %q %v", tab, err)
	}
	if _, err := ParseReviewTab("archived"); !errors.Is(err, ErrInvalidTab) {
		t.Fatalf("expected ErrInvalidTab, got %v", err)
	}
	if DefaultTab(ActorReviewerTier2) != TabCompliant || DefaultTab(ActorReviewerTier1) != TabInReview {
		t.Fatalf("unexpected default tabs")
	}
}

func TestResolveLandingPage(t *testing.T) {
	if ResolveLandingPage(nil, false) != PageDraftForm {
		t.Fatalf("absent record goes to the form")
	}
	cases := []struct {
		status ApplicationStatus
		edit   bool
		want   LandingPage
	}{
		{StatusDraft, false, PageDraftForm},
		{StatusUnderReview, false, PageStatus},
		{StatusMissingElements, false, PageStatus},
		{StatusMissingElements, true, PageDraftForm},
		{StatusCompliant, true, PageStatus},
		{StatusApproved, false, PageStatus},
		{StatusRefused, true, PageStatus},
	}
	for _, tc := range cases {
		app := Application{ID: "app-1", Status: tc.status}
		if got := ResolveLandingPage(&app, tc.edit); got != tc.want {
			t.Fatalf("%q edit=%v: expected %q got %q", tc.status, tc.edit, tc.want, got)
		}
	}
}
