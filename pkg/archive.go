package reader

import (
	"golang.org/x/exp/slices"
)

// Archive holds all columns of the events table fully loaded in memory.
// Every slice has one entry per event, aligned by row index. The archive
// layout is fixed by the flight DAQ producer and treated as a versionless
// external contract. An Archive is built once and never mutated.
type Archive struct {
	Run                     []uint32
	Event                   []uint32
	EventSecond             []uint32
	EventTime               []uint32
	LastPPS                 []uint32
	LLastPPS                []uint32
	DeadtimeCounter         []uint32
	DeadtimeCounterLastPPS  []uint32
	DeadtimeCounterLLastPPS []uint32
	L2Mask                  []uint32
	SoftTrigger             []uint8
	PPSTrigger              []uint8
	ExtTrigger              []uint8
	ReadoutTimeUTCSecs      []uint32
	ReadoutTimeUTCNsecs     []uint32
	ChannelID               [][]int32
	SurfWord                [][]uint32
	WfLength                [][]uint32
	Wfs                     [][][]int16
}

// NRows returns the number of events stored in the archive.
func (a *Archive) NRows() int {
	return len(a.Run)
}

// distinctRuns returns the run numbers present in the archive,
// sorted ascending, each exactly once.
func (a *Archive) distinctRuns() []uint32 {
	runs := make([]uint32, 0, 1)
	for _, run := range a.Run {
		if !slices.Contains(runs, run) {
			runs = append(runs, run)
		}
	}
	slices.Sort(runs)
	return runs
}

// rowsForRun returns the row indices belonging to the given run,
// in archive row order.
func (a *Archive) rowsForRun(run uint32) []int {
	rows := make([]int, 0, len(a.Run))
	for i, r := range a.Run {
		if r == run {
			rows = append(rows, i)
		}
	}
	return rows
}

// eventsForRun returns the event numbers of the given run, in archive
// row order.
func (a *Archive) eventsForRun(run uint32) []uint32 {
	events := make([]uint32, 0, len(a.Run))
	for i, r := range a.Run {
		if r == run {
			events = append(events, a.Event[i])
		}
	}
	return events
}

// findRow resolves a (run, event) pair to its unique row index. Zero or
// multiple matching rows means the archive data is corrupted.
func (a *Archive) findRow(run uint32, event uint32) (int, error) {
	row := -1
	matches := 0
	for i := range a.Run {
		if a.Run[i] == run && a.Event[i] == event {
			if row < 0 {
				row = i
			}
			matches++
		}
	}
	if matches != 1 {
		return -1, &ErrIndexInconsistent{Run: run, Event: event, Matches: matches}
	}
	return row, nil
}
