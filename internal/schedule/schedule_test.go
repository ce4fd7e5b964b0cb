package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func slot(id uuid.UUID, address, start, end string) Slot {
	return Slot{ID: id, Address: address, StartsAt: ts(start), EndsAt: ts(end)}
}

func TestFindConflict_OverlapSameAddress(t *testing.T) {
	existingID := uuid.New()
	existing := []Slot{
		slot(existingID, "Calle Sol 5", "2024-02-01T10:00:00Z", "2024-02-01T12:00:00Z"),
	}
	candidate := slot(uuid.New(), "Calle Sol 5", "2024-02-01T11:00:00Z", "2024-02-01T13:00:00Z")

	conflict := FindConflict(candidate, existing)
	require.NotNil(t, conflict)
	assert.Equal(t, existingID, conflict.ID)
}

func TestFindConflict_SelfIsExcluded(t *testing.T) {
	id := uuid.New()
	existing := []Slot{
		slot(id, "Calle Sol 5", "2024-02-01T10:00:00Z", "2024-02-01T12:00:00Z"),
	}
	// Editing the same event with a shifted but still-overlapping range.
	candidate := slot(id, "Calle Sol 5", "2024-02-01T11:00:00Z", "2024-02-01T13:00:00Z")

	assert.Nil(t, FindConflict(candidate, existing))
}

func TestFindConflict_SharedBoundaryConflicts(t *testing.T) {
	existing := []Slot{
		slot(uuid.New(), "Av. Reforma 100", "2024-03-10T18:00:00Z", "2024-03-10T20:00:00Z"),
	}
	// Back-to-back: candidate starts exactly when the existing event ends.
	candidate := slot(uuid.New(), "Av. Reforma 100", "2024-03-10T20:00:00Z", "2024-03-10T22:00:00Z")

	assert.NotNil(t, FindConflict(candidate, existing))
}

func TestFindConflict_DifferentAddressNeverConflicts(t *testing.T) {
	existing := []Slot{
		slot(uuid.New(), "Calle Sol 5", "2024-02-01T10:00:00Z", "2024-02-01T12:00:00Z"),
	}
	candidate := slot(uuid.New(), "Calle Luna 8", "2024-02-01T10:30:00Z", "2024-02-01T11:30:00Z")

	assert.Nil(t, FindConflict(candidate, existing))
}

func TestFindConflict_AddressMatchIsCaseSensitive(t *testing.T) {
	existing := []Slot{
		slot(uuid.New(), "calle sol 5", "2024-02-01T10:00:00Z", "2024-02-01T12:00:00Z"),
	}
	candidate := slot(uuid.New(), "Calle Sol 5", "2024-02-01T10:30:00Z", "2024-02-01T11:30:00Z")

	assert.Nil(t, FindConflict(candidate, existing))
}

func TestFindConflict_MissingBoundsAreSkipped(t *testing.T) {
	noEnd := Slot{ID: uuid.New(), Address: "Calle Sol 5", StartsAt: ts("2024-02-01T10:00:00Z")}
	existing := []Slot{noEnd}
	candidate := slot(uuid.New(), "Calle Sol 5", "2024-02-01T10:30:00Z", "2024-02-01T11:30:00Z")

	assert.Nil(t, FindConflict(candidate, existing))

	// Candidate without bounds cannot be checked at all.
	unbounded := Slot{ID: uuid.New(), Address: "Calle Sol 5"}
	full := []Slot{slot(uuid.New(), "Calle Sol 5", "2024-02-01T10:00:00Z", "2024-02-01T12:00:00Z")}
	assert.Nil(t, FindConflict(unbounded, full))
}

func TestFindConflict_FirstMatchWins(t *testing.T) {
	firstID := uuid.New()
	existing := []Slot{
		slot(firstID, "Calle Sol 5", "2024-02-01T09:00:00Z", "2024-02-01T11:00:00Z"),
		slot(uuid.New(), "Calle Sol 5", "2024-02-01T11:30:00Z", "2024-02-01T14:00:00Z"),
	}
	candidate := slot(uuid.New(), "Calle Sol 5", "2024-02-01T10:00:00Z", "2024-02-01T13:00:00Z")

	conflict := FindConflict(candidate, existing)
	require.NotNil(t, conflict)
	assert.Equal(t, firstID, conflict.ID)
}

func TestFindConflict_DisjointRangesDoNotConflict(t *testing.T) {
	existing := []Slot{
		slot(uuid.New(), "Calle Sol 5", "2024-02-01T10:00:00Z", "2024-02-01T12:00:00Z"),
	}
	candidate := slot(uuid.New(), "Calle Sol 5", "2024-02-01T12:00:01Z", "2024-02-01T14:00:00Z")

	assert.Nil(t, FindConflict(candidate, existing))
}
