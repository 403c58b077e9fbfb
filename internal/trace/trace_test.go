package trace

import "testing"

func TestNewCopiesInput(t *testing.T) {
	input := []string{"a", "b"}
	tr := New(input, true)
	input[0] = "z"
	if tr.Input[0] != "a" {
		t.Fatalf("expected trace input to be independent, got %v", tr.Input)
	}
}

func TestDatasetBalance(t *testing.T) {
	d := Dataset{
		New([]string{"a"}, true),
		New([]string{"b"}, false),
		New([]string{"a", "a"}, true),
	}
	b := d.Balance()
	if b.Positive != 2 || b.Negative != 1 {
		t.Fatalf("unexpected balance %+v", b)
	}
	if b.Total() != 3 {
		t.Fatalf("expected total 3, got %d", b.Total())
	}
}

func TestSortedByLengthIsStableCopy(t *testing.T) {
	d := Dataset{
		New([]string{"a", "a", "a"}, true),
		New([]string{"b"}, false),
		New([]string{"c"}, true),
		New(nil, false),
	}
	sorted := d.SortedByLength()
	want := []string{"", "b", "c", "a\x1fa\x1fa"}
	for i, key := range want {
		if sorted[i].Key() != key {
			t.Fatalf("position %d: expected %q, got %q", i, key, sorted[i].Key())
		}
	}
	if d[0].Len() != 3 {
		t.Fatalf("expected original dataset to keep its order")
	}
}
