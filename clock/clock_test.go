package clock

import (
	"testing"
	"time"
)

func TestMock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)

	if !m.Now().Equal(start) {
		t.Fatalf("got %v, want %v", m.Now(), start)
	}

	m.Advance(90 * time.Second)
	if want := start.Add(90 * time.Second); !m.Now().Equal(want) {
		t.Errorf("after Advance: got %v, want %v", m.Now(), want)
	}

	later := start.Add(time.Hour)
	m.Set(later)
	if !m.Now().Equal(later) {
		t.Errorf("after Set: got %v, want %v", m.Now(), later)
	}
}

func TestSystemIsUTC(t *testing.T) {
	if loc := (System{}).Now().Location(); loc != time.UTC {
		t.Errorf("expected UTC, got %v", loc)
	}
}

func TestSetBackwards(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)
	m.Set(start.Add(-time.Hour))
	if want := start.Add(-time.Hour); !m.Now().Equal(want) {
		t.Errorf("got %v, want %v", m.Now(), want)
	}
}
