package reader

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// EventReader gives random access to the events of a flight data archive
// by run and event number. One (run, event) pair is active at any time
// and all per-event fields are materialized for it, selection changes go
// through SetRun and SetEvent. The reader is not safe for concurrent
// mutation, callers sharing one instance must serialize access.
type EventReader struct {
	archive *Archive

	run    uint32
	event  uint32
	row    int
	runs   []uint32
	events []uint32
	fields EventFields
}

// OpenEventReader loads the archive at fname and builds a reader with
// the default selection.
func OpenEventReader(fname string) (*EventReader, error) {
	archive, err := OpenArchive(fname)
	if err != nil {
		return nil, err
	}
	return NewEventReader(archive)
}

// NewEventReader builds a reader over an already loaded archive. The
// first run found and its first event become active, which is reported
// as a warning since the choice is implicit.
func NewEventReader(archive *Archive) (*EventReader, error) {
	r := &EventReader{archive: archive, runs: archive.distinctRuns()}
	if len(r.runs) == 0 {
		return nil, fmt.Errorf("archive contains no events")
	}
	if len(r.runs) > 1 {
		message := fmt.Sprintf("no run specified, active run set to first found (%d), change it with SetRun", r.runs[0])
		logWarn(message, "reader")
	}
	if err := r.SetRun(r.runs[0], false); err != nil {
		return nil, err
	}
	message := fmt.Sprintf("no event specified, active event set to first found (%d), change it with SetEvent", r.event)
	logWarn(message, "reader")
	return r, nil
}

// NewEventReaderAt builds a reader with the given selection already
// active. It fails like SetRun and SetEvent do for unknown numbers.
func NewEventReaderAt(archive *Archive, run uint32, event uint32) (*EventReader, error) {
	r := &EventReader{archive: archive, runs: archive.distinctRuns()}
	if err := r.SetRun(run, false); err != nil {
		return nil, err
	}
	if err := r.SetEvent(event, false); err != nil {
		return nil, err
	}
	return r, nil
}

// Run returns the active run number.
func (r *EventReader) Run() uint32 {
	return r.run
}

// Event returns the active event number.
func (r *EventReader) Event() uint32 {
	return r.event
}

// Runs returns the run numbers found in the archive, sorted ascending.
// The slice is shared and must not be modified.
func (r *EventReader) Runs() []uint32 {
	return r.runs
}

// Events returns the event numbers of the active run in archive row
// order. The slice is shared and must not be modified.
func (r *EventReader) Events() []uint32 {
	return r.events
}

// N returns the number of events in the active run.
func (r *EventReader) N() int {
	return len(r.events)
}

// Fields returns the materialized fields of the active event.
func (r *EventReader) Fields() EventFields {
	return r.fields
}

// SetRun changes the active run. run is the run number, or with byIndex
// an ordinal into the sorted run list. Changing run always resets the
// active event to the first event of the new run, the previous event
// number is never kept.
func (r *EventReader) SetRun(run uint32, byIndex bool) error {
	if byIndex {
		if int(run) >= len(r.runs) {
			return fmt.Errorf("run index %d out of range, archive has %d runs", run, len(r.runs))
		}
		r.run = r.runs[run]
	} else {
		if !slices.Contains(r.runs, run) {
			return &ErrRunNotFound{Run: run, Available: r.runs}
		}
		r.run = run
	}
	r.events = r.archive.eventsForRun(r.run)

	return r.SetEvent(0, true)
}

// SetEvent changes the active event within the active run. event is the
// event number, or with byIndex an ordinal into the run's event list.
// All per-event fields are rebuilt before returning.
func (r *EventReader) SetEvent(event uint32, byIndex bool) error {
	if byIndex {
		if int(event) >= len(r.events) {
			return fmt.Errorf("event index %d out of range, run %d has %d events", event, r.run, len(r.events))
		}
		r.event = r.events[event]
	} else {
		if !slices.Contains(r.events, event) {
			return &ErrEventNotFound{Event: event, Run: r.run, Available: r.events}
		}
		r.event = event
	}

	row, err := r.archive.findRow(r.run, r.event)
	if err != nil {
		return err
	}
	r.row = row
	r.fields = deriveFields(r.archive, row)
	return nil
}

// GetWF returns the active event's waveform for the given channel, as
// stored in the archive. The first matching entry of the channel list
// decides the waveform position.
func (r *EventReader) GetWF(channel int32) ([]int16, error) {
	for i, id := range r.fields.ChannelIDs {
		if id == channel {
			return r.fields.Wfs[i], nil
		}
	}
	return nil, &ErrChannelNotFound{Channel: channel, Event: r.event, Available: r.fields.ChannelIDs}
}

// TriggerTypes returns the trigger classification of every event in the
// active run, in archive row order. Types: 0=RF, 1=SW, 2=PPS, 3=EXT.
func (r *EventReader) TriggerTypes() []uint8 {
	rows := r.archive.rowsForRun(r.run)
	types := make([]uint8, len(rows))
	for i, row := range rows {
		types[i] = triggerType(r.archive, row)
	}
	return types
}
