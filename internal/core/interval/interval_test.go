package interval

import (
	"math/rand"
	"testing"
	"time"

	"trawlwatch/internal/platform/testkit"
)

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", "2023-12-18T"+hhmm)
	if err != nil {
		t.Fatalf("bad test time %q: %v", hhmm, err)
	}
	return ts
}

func span(t *testing.T, start, end string) Span {
	t.Helper()
	s, err := New(at(t, start), at(t, end))
	if err != nil {
		t.Fatalf("new span: %v", err)
	}
	return s
}

func TestNew_RejectsInvertedSpan(t *testing.T) {
	_, err := New(at(t, "12:00"), at(t, "10:00"))
	if err == nil {
		t.Fatalf("expected inverted span to be rejected")
	}
}

func TestMerge_OverlapAndGap(t *testing.T) {
	in := []Span{
		span(t, "10:00", "12:00"),
		span(t, "11:30", "13:00"),
		span(t, "14:00", "15:00"),
	}
	got := Merge(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 merged spans, got %d: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, "10:00")) || !got[0].End.Equal(at(t, "13:00")) {
		t.Fatalf("first merged span wrong: %v", got[0])
	}
	if !got[1].Start.Equal(at(t, "14:00")) || !got[1].End.Equal(at(t, "15:00")) {
		t.Fatalf("second merged span wrong: %v", got[1])
	}
	testkit.NearlyEqual(t, TotalHours(got), 4.0, 1e-9)
}

func TestMerge_ContiguousSpansJoin(t *testing.T) {
	got := Merge([]Span{
		span(t, "10:00", "11:00"),
		span(t, "11:00", "12:00"),
	})
	if len(got) != 1 {
		t.Fatalf("contiguous spans should merge, got %v", got)
	}
	testkit.NearlyEqual(t, TotalHours(got), 2.0, 1e-9)
}

func TestMerge_ContainedSpanAbsorbed(t *testing.T) {
	got := Merge([]Span{
		span(t, "10:00", "15:00"),
		span(t, "11:00", "12:00"),
	})
	if len(got) != 1 || !got[0].End.Equal(at(t, "15:00")) {
		t.Fatalf("contained span should be absorbed, got %v", got)
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
	testkit.NearlyEqual(t, TotalHours(nil), 0, 1e-9)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []Span{
		span(t, "14:00", "15:00"),
		span(t, "10:00", "12:00"),
	}
	first := in[0]
	_ = Merge(in)
	if !in[0].Start.Equal(first.Start) || !in[0].End.Equal(first.End) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestMerge_PermutationInvariant(t *testing.T) {
	base := []Span{
		span(t, "10:00", "12:00"),
		span(t, "11:30", "13:00"),
		span(t, "14:00", "15:00"),
		span(t, "09:00", "09:30"),
		span(t, "12:30", "12:45"),
	}
	want := Merge(base)

	rng := rand.New(rand.NewSource(42))
	for range 20 {
		perm := make([]Span, len(base))
		copy(perm, base)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		got := Merge(perm)
		if len(got) != len(want) {
			t.Fatalf("permutation changed result: %v vs %v", got, want)
		}
		for i := range got {
			if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
				t.Fatalf("permutation changed span %d: %v vs %v", i, got[i], want[i])
			}
		}
	}
}

func TestMerge_Idempotent(t *testing.T) {
	in := []Span{
		span(t, "10:00", "12:00"),
		span(t, "11:30", "13:00"),
		span(t, "14:00", "15:00"),
	}
	once := Merge(in)
	twice := Merge(once)
	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("merge not idempotent at %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestTotalHours_Bounds(t *testing.T) {
	in := []Span{
		span(t, "10:00", "12:00"),
		span(t, "11:00", "13:00"),
		span(t, "16:00", "16:30"),
	}
	total := TotalHours(Merge(in))

	var longest, sum float64
	for _, s := range in {
		h := s.Hours()
		sum += h
		if h > longest {
			longest = h
		}
	}
	if total < longest {
		t.Fatalf("total %v below longest single span %v", total, longest)
	}
	if total > sum {
		t.Fatalf("total %v above sum of inputs %v", total, sum)
	}
}
