package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Slot is the scheduling view of an event: where it takes place and during
// which time range. Start/end are pointers because draft events may not have
// their dates set yet; a slot missing either bound cannot conflict.
type Slot struct {
	ID       uuid.UUID
	Address  string
	StartsAt *time.Time
	EndsAt   *time.Time
}

// Overlaps reports whether two closed intervals share at least one instant.
// Boundaries are inclusive: a slot ending exactly when another starts still
// counts as an overlap, since venue use is exclusive.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// FindConflict returns the first slot in existing that overlaps the candidate
// at the same address, or nil when there is none. The candidate itself is
// skipped by ID so that editing an event never conflicts with its own stored
// schedule. Addresses must match exactly (case-sensitive).
//
// A candidate without both bounds cannot be checked and yields nil; callers
// enforce required dates before asking for conflicts.
func FindConflict(candidate Slot, existing []Slot) *Slot {
	if candidate.StartsAt == nil || candidate.EndsAt == nil {
		return nil
	}

	for i := range existing {
		other := &existing[i]

		if other.ID == candidate.ID {
			continue
		}
		if other.Address != candidate.Address {
			continue
		}
		if other.StartsAt == nil || other.EndsAt == nil {
			continue
		}

		if Overlaps(*candidate.StartsAt, *candidate.EndsAt, *other.StartsAt, *other.EndsAt) {
			return other
		}
	}

	return nil
}
