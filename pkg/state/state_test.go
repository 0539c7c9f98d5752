package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeKeepsDefaultsForMissingFields(t *testing.T) {
	s, err := Decode([]byte(`{"scratchpad":"hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TodayStyle != StyleOrange {
		t.Fatalf("expected default style, got %q", s.TodayStyle)
	}
	if s.Scratchpad != "hello" {
		t.Fatalf("expected scratchpad to load, got %q", s.Scratchpad)
	}
	if s.DotsData == nil || len(s.DotsData) != 0 {
		t.Fatalf("expected empty annotations map, got %#v", s.DotsData)
	}
	if s.DailyFocus.IsSet() {
		t.Fatalf("expected no focus, got %#v", s.DailyFocus)
	}
}

func TestDecodeReplacesNestedObjectsWholesale(t *testing.T) {
	data := []byte(`{
		"todayStyle": "hourglass",
		"dotsData": {"2025-06-01": {"note": "Trip", "type": "milestone"}},
		"dailyFocus": {"text": "write", "completed": true, "date": "Sat Oct 17 2026"},
		"focusHistory": null
	}`)
	s, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &State{
		TodayStyle: StyleHourglass,
		DotsData: map[string]DayAnnotation{
			"2025-06-01": {Note: "Trip", Type: TypeMilestone},
		},
		DailyFocus:   FocusRecord{Text: "write", Completed: true, Date: "Sat Oct 17 2026"},
		FocusHistory: []FocusRecord{},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("decoded state mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte(`{not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Decode([]byte(`{"dotsData": []}`)); err == nil {
		t.Fatalf("expected shape error for array annotations")
	}
}

func TestEncodeDecodeKeepsUnknownStyle(t *testing.T) {
	s := Default()
	s.TodayStyle = "neon"
	data, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.TodayStyle != "neon" {
		t.Fatalf("expected stored style to survive, got %q", back.TodayStyle)
	}
	if back.TodayStyle.Valid() {
		t.Fatalf("neon should not be a selectable style")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := Default()
	s.DotsData["2025-01-01"] = DayAnnotation{Note: "new year", Type: TypeJournal}
	c := s.Clone()
	c.DotsData["2025-01-02"] = DayAnnotation{Note: "x"}
	if _, ok := s.DotsData["2025-01-02"]; ok {
		t.Fatalf("clone shares the annotations map")
	}
}

func TestDatesSorted(t *testing.T) {
	s := Default()
	s.DotsData["2025-03-01"] = DayAnnotation{Note: "b"}
	s.DotsData["2025-01-01"] = DayAnnotation{Note: "a"}
	if diff := cmp.Diff([]string{"2025-01-01", "2025-03-01"}, s.Dates()); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotationEmpty(t *testing.T) {
	if !(DayAnnotation{}).Empty() {
		t.Fatalf("zero annotation should be empty")
	}
	if (DayAnnotation{Type: TypeJournal}).Empty() {
		t.Fatalf("typed annotation should not be empty")
	}
	if !TypeNone.Valid() || AnnotationType("todo").Valid() {
		t.Fatalf("unexpected type validity")
	}
}
