package reader

import "fmt"

// ErrOpenFile represents an error when opening an archive file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrMissingDataset represents an error when opening or reading one of
// the expected datasets of the events table.
type ErrMissingDataset struct {
	Name string
	Err  error
}

func (e *ErrMissingDataset) Error() string {
	return fmt.Sprintf("error reading dataset %q: %v", e.Name, e.Err)
}

// ErrColumnLength represents a column whose length does not match the
// rest of the table.
type ErrColumnLength struct {
	Name string
	Got  int
	Want int
}

func (e *ErrColumnLength) Error() string {
	return fmt.Sprintf("dataset %q has %d rows, expected %d", e.Name, e.Got, e.Want)
}

// ErrRunNotFound represents a run number not present in the archive.
type ErrRunNotFound struct {
	Run       uint32
	Available []uint32
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run %d not found, available runs are %v", e.Run, e.Available)
}

// ErrEventNotFound represents an event number not present in the active run.
type ErrEventNotFound struct {
	Event     uint32
	Run       uint32
	Available []uint32
}

func (e *ErrEventNotFound) Error() string {
	return fmt.Sprintf("event %d not found in run %d, available events are %v", e.Event, e.Run, e.Available)
}

// ErrChannelNotFound represents a channel id absent from the active event.
type ErrChannelNotFound struct {
	Channel   int32
	Event     uint32
	Available []int32
}

func (e *ErrChannelNotFound) Error() string {
	return fmt.Sprintf("channel %d not present in event %d, available channels are %v", e.Channel, e.Event, e.Available)
}

// ErrIndexInconsistent represents a (run, event) pair resolving to zero
// or multiple archive rows. Selections are validated before resolution,
// so this only happens with corrupted archive data.
type ErrIndexInconsistent struct {
	Run     uint32
	Event   uint32
	Matches int
}

func (e *ErrIndexInconsistent) Error() string {
	return fmt.Sprintf("run %d event %d resolves to %d rows, expected exactly one", e.Run, e.Event, e.Matches)
}
