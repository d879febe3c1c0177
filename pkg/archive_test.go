package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinctRuns(t *testing.T) {
	archive := &Archive{
		Run:   []uint32{841, 839, 841, 840, 839},
		Event: []uint32{1, 2, 3, 4, 5},
	}
	assert.Equal(t, []uint32{839, 840, 841}, archive.distinctRuns())
}

func TestEventsForRunKeepsRowOrder(t *testing.T) {
	archive := &Archive{
		Run:   []uint32{841, 839, 841, 840, 839},
		Event: []uint32{9, 2, 3, 4, 1},
	}
	assert.Equal(t, []uint32{2, 1}, archive.eventsForRun(839))
	assert.Equal(t, []uint32{9, 3}, archive.eventsForRun(841))
	assert.Empty(t, archive.eventsForRun(999))
}

func TestFindRow(t *testing.T) {
	archive := &Archive{
		Run:   []uint32{839, 839, 840},
		Event: []uint32{1, 2, 1},
	}

	row, err := archive.findRow(840, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, row)

	_, err = archive.findRow(840, 2)
	var idxErr *ErrIndexInconsistent
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 0, idxErr.Matches)

	archive.Run = append(archive.Run, 840)
	archive.Event = append(archive.Event, 1)
	_, err = archive.findRow(840, 1)
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 2, idxErr.Matches)
}

func TestNRows(t *testing.T) {
	assert.Equal(t, 0, (&Archive{}).NRows())
	assert.Equal(t, 4, testArchive().NRows())
}
