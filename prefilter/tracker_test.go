package prefilter

import (
	"testing"
)

// listPrefilter reports every position of a fixed list at or after start.
type listPrefilter struct {
	positions []int
	complete  bool
}

func (l *listPrefilter) Find(_ []byte, start int) int {
	for _, pos := range l.positions {
		if pos >= start {
			return pos
		}
	}
	return -1
}

func (l *listPrefilter) IsComplete() bool { return l.complete }
func (l *listPrefilter) LiteralLen() int  { return 0 }

func everyPosition(n int) *listPrefilter {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	return &listPrefilter{positions: positions}
}

func TestTrackerBasic(t *testing.T) {
	tracker := NewTracker(&listPrefilter{positions: []int{5, 10}, complete: true})

	if !tracker.IsActive() {
		t.Fatal("tracker inactive on creation")
	}
	if pos := tracker.Find(nil, 0); pos != 5 {
		t.Errorf("Find() = %d, want 5", pos)
	}
	tracker.ConfirmMatch()

	candidates, confirms, efficiency, active := tracker.Stats()
	if candidates != 1 || confirms != 1 || efficiency != 1.0 || !active {
		t.Errorf("Stats() = (%d, %d, %v, %v), want (1, 1, 1, true)", candidates, confirms, efficiency, active)
	}
	if !tracker.IsComplete() || tracker.LiteralLen() != 0 {
		t.Error("IsComplete/LiteralLen not delegated")
	}
}

func TestTrackerRetirement(t *testing.T) {
	tests := []struct {
		name       string
		confirmOne int // confirm one candidate out of confirmOne, 0 for none
		seen       int
		active     bool
	}{
		{"no confirms", 0, 200, false},
		{"half confirmed", 2, 200, true},
		{"inside warmup", 0, 40, true},
	}

	config := TrackerConfig{CheckInterval: 10, MinEfficiency: 0.1, WarmupPeriod: 50}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTrackerWithConfig(everyPosition(tt.seen), config)
			for i := 0; i < tt.seen; i++ {
				if tracker.Find(nil, i) == -1 {
					break
				}
				if tt.confirmOne > 0 && i%tt.confirmOne == 0 {
					tracker.ConfirmMatch()
				}
			}
			if tracker.IsActive() != tt.active {
				t.Errorf("IsActive() = %v, want %v", tracker.IsActive(), tt.active)
			}
		})
	}
}

func TestTrackerRetiredFindsNothing(t *testing.T) {
	config := TrackerConfig{CheckInterval: 1, MinEfficiency: 0.5, WarmupPeriod: 1}
	tracker := NewTrackerWithConfig(everyPosition(10), config)

	tracker.Find(nil, 0)
	if tracker.IsActive() {
		t.Fatal("tracker still active after an unconfirmed candidate")
	}
	if pos := tracker.Find(nil, 0); pos != -1 {
		t.Errorf("Find() = %d after retirement, want -1", pos)
	}

	tracker.Reset()
	if !tracker.IsActive() {
		t.Error("Reset() did not re-enable the tracker")
	}
	if candidates, confirms, _, _ := tracker.Stats(); candidates != 0 || confirms != 0 {
		t.Errorf("Stats() after Reset() = (%d, %d), want zeros", candidates, confirms)
	}
}

func TestTrackerNilPrefilter(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("NewTracker(nil) != nil")
	}
}

func TestDefaultTrackerConfig(t *testing.T) {
	config := DefaultTrackerConfig()
	if config.CheckInterval == 0 || config.WarmupPeriod == 0 {
		t.Errorf("zero interval in %+v", config)
	}
	if config.MinEfficiency <= 0 || config.MinEfficiency >= 1 {
		t.Errorf("MinEfficiency = %v, want within (0, 1)", config.MinEfficiency)
	}
}
