package deck

import (
	"errors"
	"testing"
)

func TestStore_AddPreservesOrder(t *testing.T) {
	s := NewStore()
	s.Add("2+2", "4")
	s.Add("3+3", "6")
	s.Add("2+2", "4")

	if s.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", s.Size())
	}

	want := []Entry{{"2+2", "4"}, {"3+3", "6"}, {"2+2", "4"}}
	for i, w := range want {
		got, err := s.Entry(i)
		if err != nil {
			t.Fatalf("Entry(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("Entry(%d) = %+v, want %+v", i, got, w)
		}
	}
}

func TestStore_EntryOutOfRange(t *testing.T) {
	s := NewStoreFrom([]Entry{{"a", "b"}})

	for _, i := range []int{-1, 1, 5} {
		if _, err := s.Entry(i); !errors.Is(err, ErrIndex) {
			t.Errorf("Entry(%d) error = %v, want ErrIndex", i, err)
		}
	}
}

func TestStore_EntriesIsCopy(t *testing.T) {
	s := NewStoreFrom([]Entry{{"a", "b"}})
	got := s.Entries()
	got[0].Prompt = "mutated"

	e, _ := s.Entry(0)
	if e.Prompt != "a" {
		t.Errorf("store mutated through Entries(): prompt = %q", e.Prompt)
	}
}

func TestStore_NilSize(t *testing.T) {
	var s *Store
	if s.Size() != 0 {
		t.Errorf("nil Size() = %d, want 0", s.Size())
	}
	if len(s.Entries()) != 0 {
		t.Error("expected no entries from nil store")
	}
}
