package reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two runs with two events each. Run 839 event 7900 happens before two
// PPS boundaries have been seen, its last_pps is ahead of event_time.
func testArchive() *Archive {
	return &Archive{
		Run:                     []uint32{839, 839, 840, 840},
		Event:                   []uint32{7900, 7901, 12, 15},
		EventSecond:             []uint32{1000, 1001, 2000, 2001},
		EventTime:               []uint32{100, 250, 900, 1200},
		LastPPS:                 []uint32{150, 200, 700, 1100},
		LLastPPS:                []uint32{50, 100, 500, 1000},
		DeadtimeCounter:         []uint32{0, 10, 20, 30},
		DeadtimeCounterLastPPS:  []uint32{0, 5, 15, 25},
		DeadtimeCounterLLastPPS: []uint32{0, 2, 12, 22},
		L2Mask:                  []uint32{0xffffff, 0xffffff, 0x00ff00, 0x00ff00},
		SoftTrigger:             []uint8{1, 0, 0, 0},
		PPSTrigger:              []uint8{0, 0, 0, 1},
		ExtTrigger:              []uint8{0, 0, 1, 0},
		ReadoutTimeUTCSecs:      []uint32{1735689600, 1735689601, 1735693200, 1735693201},
		ReadoutTimeUTCNsecs:     []uint32{500000000, 250000000, 0, 125000000},
		ChannelID:               [][]int32{{0, 123}, {0, 123}, {0, 123}, {0, 123}},
		SurfWord:                [][]uint32{{11, 12}, {21, 22}, {31, 32}, {41, 42}},
		WfLength:                [][]uint32{{4, 4}, {4, 4}, {4, 4}, {4, 4}},
		Wfs: [][][]int16{
			{{1, 2, 3, 4}, {5, 6, 7, 8}},
			{{10, 20, 30, 40}, {50, 60, 70, 80}},
			{{-1, -2, -3, -4}, {-5, -6, -7, -8}},
			{{9, 8, 7, 6}, {5, 4, 3, 2}},
		},
	}
}

func TestNewEventReaderDefaults(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	assert.Equal(t, uint32(839), r.Run())
	assert.Equal(t, uint32(7900), r.Event())
	assert.Equal(t, []uint32{839, 840}, r.Runs())
	assert.Equal(t, []uint32{7900, 7901}, r.Events())
	assert.Equal(t, 2, r.N())
}

func TestNewEventReaderAt(t *testing.T) {
	r, err := NewEventReaderAt(testArchive(), 840, 15)
	require.NoError(t, err)
	assert.Equal(t, uint32(840), r.Run())
	assert.Equal(t, uint32(15), r.Event())

	_, err = NewEventReaderAt(testArchive(), 999, 15)
	var runErr *ErrRunNotFound
	require.ErrorAs(t, err, &runErr)

	_, err = NewEventReaderAt(testArchive(), 840, 7900)
	var evtErr *ErrEventNotFound
	require.ErrorAs(t, err, &evtErr)
}

func TestNewEventReaderEmptyArchive(t *testing.T) {
	_, err := NewEventReader(&Archive{})
	require.Error(t, err)
}

type recordLogger struct {
	warnings []string
}

func (l *recordLogger) Info(message string, module string) {}
func (l *recordLogger) Warn(message string, module string) {
	l.warnings = append(l.warnings, message)
}
func (l *recordLogger) Error(message string) {}

func TestDefaultSelectionWarns(t *testing.T) {
	log := &recordLogger{}
	SetLogger(log)
	defer SetLogger(nil)

	_, err := NewEventReader(testArchive())
	require.NoError(t, err)

	require.Len(t, log.warnings, 2)
	assert.Contains(t, log.warnings[0], "839")
	assert.Contains(t, log.warnings[1], "7900")
}

func TestSetRunResetsEvent(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	require.NoError(t, r.SetEvent(7901, false))
	require.NoError(t, r.SetRun(840, false))

	assert.Equal(t, uint32(840), r.Run())
	assert.Equal(t, uint32(12), r.Event())
	assert.Equal(t, []uint32{12, 15}, r.Events())
}

func TestSetRunByIndex(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	require.NoError(t, r.SetRun(1, true))
	assert.Equal(t, uint32(840), r.Run())

	err = r.SetRun(2, true)
	require.Error(t, err)
}

func TestSetRunNotFound(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	err = r.SetRun(999, false)
	var runErr *ErrRunNotFound
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, uint32(999), runErr.Run)
	assert.Equal(t, []uint32{839, 840}, runErr.Available)
	assert.Contains(t, err.Error(), "839")

	// Failed selection leaves the active run untouched.
	assert.Equal(t, uint32(839), r.Run())
}

func TestSetEventNotFound(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	err = r.SetEvent(12, false)
	var evtErr *ErrEventNotFound
	require.ErrorAs(t, err, &evtErr)
	assert.Equal(t, uint32(12), evtErr.Event)
	assert.Equal(t, uint32(839), evtErr.Run)
	assert.Equal(t, []uint32{7900, 7901}, evtErr.Available)
}

func TestSetEventByIndexRoundTrip(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	for i, event := range r.Events() {
		require.NoError(t, r.SetEvent(uint32(i), true))
		byIndexRow := r.row
		require.NoError(t, r.SetEvent(event, false))
		assert.Equal(t, byIndexRow, r.row)
	}
}

func TestSetEventIdempotent(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	require.NoError(t, r.SetEvent(7901, false))
	first := r.Fields()
	require.NoError(t, r.SetEvent(7901, false))
	assert.Equal(t, first, r.Fields())
}

func TestGetWF(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)
	require.NoError(t, r.SetEvent(7901, false))

	wf, err := r.GetWF(0)
	require.NoError(t, err)
	assert.Equal(t, []int16{10, 20, 30, 40}, wf)

	wf, err = r.GetWF(123)
	require.NoError(t, err)
	assert.Equal(t, []int16{50, 60, 70, 80}, wf)

	_, err = r.GetWF(7)
	var chErr *ErrChannelNotFound
	require.ErrorAs(t, err, &chErr)
	assert.Equal(t, int32(7), chErr.Channel)
	assert.Equal(t, []int32{0, 123}, chErr.Available)
}

func TestTriggerTypes(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	assert.Equal(t, []uint8{1, 0}, r.TriggerTypes())

	require.NoError(t, r.SetRun(840, false))
	assert.Equal(t, []uint8{3, 2}, r.TriggerTypes())

	for _, trigger := range r.TriggerTypes() {
		assert.LessOrEqual(t, trigger, uint8(3))
	}
}

func TestTriggerTypeField(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)
	assert.Equal(t, uint8(1), r.Fields().TriggerType)

	require.NoError(t, r.SetEvent(7901, false))
	assert.Equal(t, uint8(0), r.Fields().TriggerType)
}

func TestSubsecond(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	// Early event, last_pps > event_time: (100-150)/(150-50). The
	// negative value is expected and kept.
	assert.Equal(t, -0.5, r.Fields().Subsecond)

	require.NoError(t, r.SetEvent(7901, false))
	assert.Equal(t, 0.5, r.Fields().Subsecond)
}

func TestReadoutDate(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	want := time.Unix(1735689600, 500000000).UTC()
	assert.Equal(t, want, r.Fields().ReadoutDate)
	assert.Equal(t, time.UTC, r.Fields().ReadoutDate.Location())
}

func TestTimeAxis(t *testing.T) {
	r, err := NewEventReader(testArchive())
	require.NoError(t, err)

	axis := r.Fields().Time
	require.Len(t, axis, 4)
	assert.Equal(t, 0.0, axis[0])
	for i := 1; i < len(axis); i++ {
		assert.InDelta(t, 1e-9*float64(i)/3, axis[i], 1e-18)
	}
}

func TestRawFieldsProjection(t *testing.T) {
	r, err := NewEventReaderAt(testArchive(), 840, 12)
	require.NoError(t, err)

	fields := r.Fields()
	assert.Equal(t, uint32(2000), fields.EventSecond)
	assert.Equal(t, uint32(900), fields.EventTime)
	assert.Equal(t, uint32(20), fields.DeadtimeCounter)
	assert.Equal(t, uint32(0x00ff00), fields.L2Mask)
	assert.Equal(t, []uint32{31, 32}, fields.SurfWord)
	assert.Equal(t, []uint32{4, 4}, fields.WfLength)
}

func TestInconsistentArchive(t *testing.T) {
	archive := testArchive()
	// Duplicate the (839, 7900) row.
	archive.Run[1] = 839
	archive.Event[1] = 7900

	_, err := NewEventReader(archive)
	var idxErr *ErrIndexInconsistent
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 2, idxErr.Matches)
}
