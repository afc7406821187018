package rating

import (
	"encoding/json"
	"testing"

	"proflens/internal/rmp"
)

func TestTeacherBranches(t *testing.T) {
	found := Found(rmp.Teacher{FirstName: "Jane", LastName: "Doe"})
	if got, ok := found.Teacher(); !ok || got.LastName != "Doe" {
		t.Fatalf("Teacher() = (%#v, %v)", got, ok)
	}

	if _, ok := NoMatch().Teacher(); ok {
		t.Fatal("NoMatch should not yield a teacher")
	}
}

func TestValid(t *testing.T) {
	if !Found(rmp.Teacher{}).Valid() {
		t.Error("Found resolution should be valid")
	}
	if !NoMatch().Valid() {
		t.Error("NoMatch resolution should be valid")
	}
	if (Resolution{}).Valid() {
		t.Error("zero resolution should be invalid")
	}
	both := Resolution{Record: &rmp.Teacher{}, NotFound: true}
	if both.Valid() {
		t.Error("double-branch resolution should be invalid")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := Found(rmp.Teacher{ID: "VGVhY2hlci0x", LastName: "Smith", NumRatings: 7})
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Resolution
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, ok := decoded.Teacher()
	if !ok || got.ID != "VGVhY2hlci0x" || got.NumRatings != 7 {
		t.Fatalf("round trip lost data: %#v", decoded)
	}
}

func TestScore(t *testing.T) {
	teacher := rmp.Teacher{AvgRating: 4.5, AvgDifficulty: 2.0}
	got := Score(0.7, 0.3, teacher)
	want := 0.7*4.5 - 0.3*2.0
	if got != want {
		t.Errorf("Score = %v, want %v", got, want)
	}
}
