package subjects

import (
	"context"
	"testing"

	"proflens/internal/rmp"
)

const schoolID = "U2Nob29sLTE1MTM"

type fakeSearcher struct {
	results  []rmp.Teacher
	calls    int
	lastText string
}

func (f *fakeSearcher) SearchTeachers(_ context.Context, text, _ string) []rmp.Teacher {
	f.calls++
	f.lastText = text
	return f.results
}

func (f *fakeSearcher) TeacherByID(context.Context, string) *rmp.Teacher { return nil }

func rated(first, last string, avgRating float64, numRatings int) rmp.Teacher {
	return rmp.Teacher{
		FirstName:  first,
		LastName:   last,
		AvgRating:  avgRating,
		NumRatings: numRatings,
		School:     rmp.School{ID: schoolID},
	}
}

func TestTermForSubject(t *testing.T) {
	cases := []struct{ in, want string }{
		{"STAT", "Statistics"},
		{"stats", "Statistics"},
		{"CMPSCI", "Computer Science"},
		{" phys ", "Physics"},
		{"NURSING", "NURSING"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TermForSubject(tc.in); got != tc.want {
			t.Errorf("TermForSubject(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestListAllFiltersAndSorts(t *testing.T) {
	offSchool := rated("Out", "Sider", 5.0, 40)
	offSchool.School.ID = "U2Nob29sLTk5OTk"
	searcher := &fakeSearcher{results: []rmp.Teacher{
		rated("Low", "Rater", 2.1, 8),
		rated("Un", "Rated", 0, 0),
		offSchool,
		rated("Top", "Scorer", 4.8, 15),
	}}

	browser := NewBrowser(searcher, nil)
	got := browser.ListAll(context.Background(), "STAT 240", schoolID)

	if searcher.lastText != "Statistics" {
		t.Fatalf("searched %q, want mapped department term", searcher.lastText)
	}
	if len(got) != 2 {
		t.Fatalf("got %d instructors, want 2: %#v", len(got), got)
	}
	if got[0].FirstName != "Top" || got[1].FirstName != "Low" {
		t.Fatalf("wrong order: %#v", got)
	}
}

func TestListAllRequiresSchoolAndSubject(t *testing.T) {
	searcher := &fakeSearcher{results: []rmp.Teacher{rated("A", "B", 4, 4)}}
	browser := NewBrowser(searcher, nil)

	if got := browser.ListAll(context.Background(), "STAT", ""); got != nil {
		t.Fatalf("expected nil without school id, got %#v", got)
	}
	if got := browser.ListAll(context.Background(), "", schoolID); got != nil {
		t.Fatalf("expected nil without subject, got %#v", got)
	}
	if got := browser.ListAll(context.Background(), "C 101", schoolID); got != nil {
		t.Fatalf("expected nil for one-letter subject, got %#v", got)
	}
	if searcher.calls != 0 {
		t.Fatalf("degenerate inputs must skip search, got %d calls", searcher.calls)
	}
}

func TestAlternativesThresholdAndExclusion(t *testing.T) {
	searcher := &fakeSearcher{results: []rmp.Teacher{
		rated("Jane", "Doe", 4.9, 30), // the current instructor, must be excluded
		rated("Near", "Miss", 3.2, 10),
		rated("Good", "Enough", 3.4, 12),
		rated("Even", "Better", 4.5, 6),
	}}

	browser := NewBrowser(searcher, nil)
	// Current rating 2.8 raises the bar to 3.3.
	got := browser.Alternatives(context.Background(), "STAT", "Jane Doe", 2.8, schoolID)

	if len(got) != 2 {
		t.Fatalf("got %d alternatives, want 2: %#v", len(got), got)
	}
	for _, alt := range got {
		if alt.LastName == "Doe" {
			t.Fatal("current instructor must never be suggested")
		}
		if alt.AvgRating < 3.3 {
			t.Fatalf("alternative below threshold: %#v", alt)
		}
	}
	if got[0].FirstName != "Even" {
		t.Fatalf("wrong order: %#v", got)
	}
}

func TestAlternativesFloorAtTwoPointFive(t *testing.T) {
	searcher := &fakeSearcher{results: []rmp.Teacher{
		rated("Barely", "Above", 2.6, 5),
		rated("Well", "Below", 2.0, 5),
	}}

	browser := NewBrowser(searcher, nil)
	got := browser.Alternatives(context.Background(), "STAT", "Someone Else", 1.0, schoolID)

	if len(got) != 1 || got[0].FirstName != "Barely" {
		t.Fatalf("floor of 2.5 not applied: %#v", got)
	}
}

func TestAlternativesCappedAtFive(t *testing.T) {
	var results []rmp.Teacher
	for _, last := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		results = append(results, rated("Prof", last, 4.0, 3))
	}
	searcher := &fakeSearcher{results: results}

	browser := NewBrowser(searcher, nil)
	got := browser.Alternatives(context.Background(), "MATH", "Someone Else", 3.0, schoolID)
	if len(got) != 5 {
		t.Fatalf("got %d alternatives, want at most 5", len(got))
	}
}
