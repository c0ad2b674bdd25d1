package cli

import (
	"testing"
	"time"

	"github.com/sweepgo/sweepgo/history"
	"github.com/sweepgo/sweepgo/model"
)

func testEntries() []history.Entry {
	// Sorted newest first, as the view command does before resolving.
	return []history.Entry{
		{Sweep: model.Sweep{ID: "c3d4e5f6", Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}},
		{Sweep: model.Sweep{ID: "b2c3d4e5", Timestamp: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)}},
		{Sweep: model.Sweep{ID: "a1b2c3d4", Timestamp: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}},
	}
}

func TestResolveEntry(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantID  string
		wantErr bool
	}{
		{
			name:   "empty arg defaults to latest",
			arg:    "",
			wantID: "c3d4e5f6",
		},
		{
			name:   "index 0 is latest",
			arg:    "0",
			wantID: "c3d4e5f6",
		},
		{
			name:   "negative index counts back",
			arg:    "-1",
			wantID: "b2c3d4e5",
		},
		{
			name:   "negative index 2",
			arg:    "-2",
			wantID: "a1b2c3d4",
		},
		{
			name:    "index out of range",
			arg:     "-3",
			wantErr: true,
		},
		{
			name:   "unique ID prefix",
			arg:    "a1b2",
			wantID: "a1b2c3d4",
		},
		{
			name:   "full ID",
			arg:    "b2c3d4e5",
			wantID: "b2c3d4e5",
		},
		{
			name:    "unknown prefix",
			arg:     "ffff",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := resolveEntry(testEntries(), tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("resolveEntry(%q) expected error, got %q", tt.arg, entry.Sweep.ID)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveEntry(%q) error: %v", tt.arg, err)
			}
			if entry.Sweep.ID != tt.wantID {
				t.Errorf("resolveEntry(%q) = %q, want %q", tt.arg, entry.Sweep.ID, tt.wantID)
			}
		})
	}
}

func TestResolveEntryAmbiguousPrefix(t *testing.T) {
	entries := []history.Entry{
		{Sweep: model.Sweep{ID: "abc111"}},
		{Sweep: model.Sweep{ID: "abc222"}},
	}
	if _, err := resolveEntry(entries, "abc"); err == nil {
		t.Error("expected ambiguity error for shared prefix")
	}
}

func TestCombinationLabel(t *testing.T) {
	tests := []struct {
		name       string
		dimensions []string
		values     []string
		want       string
	}{
		{
			name:       "two dimensions",
			dimensions: []string{"dataset", "epsilon"},
			values:     []string{"flickr", "3.0"},
			want:       "dataset=flickr epsilon=3.0",
		},
		{
			name:       "single dimension",
			dimensions: []string{"dataset"},
			values:     []string{"lastfm"},
			want:       "dataset=lastfm",
		},
		{
			name:       "missing value renders empty",
			dimensions: []string{"dataset", "epsilon"},
			values:     []string{"flickr"},
			want:       "dataset=flickr epsilon=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := combinationLabel(tt.dimensions, tt.values); got != tt.want {
				t.Errorf("combinationLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
