package reader

import "time"

// Sampling constants of the SURF digitizers.
const SAMPLE_RATE float64 = 3 // GS/s
const SAMPLE_DT float64 = 1 / SAMPLE_RATE // ns

// EventFields holds every raw column of the active event plus the
// quantities derived from them. A new EventFields is built each time the
// active selection changes, there is no lazily computed state. Slices
// alias the archive arrays and must not be modified.
type EventFields struct {
	EventSecond             uint32
	EventTime               uint32
	LastPPS                 uint32
	LLastPPS                uint32
	DeadtimeCounter         uint32
	DeadtimeCounterLastPPS  uint32
	DeadtimeCounterLLastPPS uint32
	L2Mask                  uint32
	SoftTrigger             uint8
	PPSTrigger              uint8
	ExtTrigger              uint8
	ReadoutTimeUTCSecs      uint32
	ReadoutTimeUTCNsecs     uint32
	ChannelIDs              []int32
	SurfWord                []uint32
	WfLength                []uint32
	Wfs                     [][]int16

	// Trigger classification, 0=RF, 1=SW, 2=PPS, 3=EXT.
	TriggerType uint8
	// UTC timestamp at which the event was read out.
	ReadoutDate time.Time
	// GPS phase within the current PPS interval. Not meaningful for
	// events so early in a run that two PPS boundaries have not been
	// seen yet, the value may then be negative.
	Subsecond float64
	// Sampling time axis in seconds for the event's waveforms.
	Time []float64
}

func deriveFields(archive *Archive, row int) EventFields {
	fields := EventFields{
		EventSecond:             archive.EventSecond[row],
		EventTime:               archive.EventTime[row],
		LastPPS:                 archive.LastPPS[row],
		LLastPPS:                archive.LLastPPS[row],
		DeadtimeCounter:         archive.DeadtimeCounter[row],
		DeadtimeCounterLastPPS:  archive.DeadtimeCounterLastPPS[row],
		DeadtimeCounterLLastPPS: archive.DeadtimeCounterLLastPPS[row],
		L2Mask:                  archive.L2Mask[row],
		SoftTrigger:             archive.SoftTrigger[row],
		PPSTrigger:              archive.PPSTrigger[row],
		ExtTrigger:              archive.ExtTrigger[row],
		ReadoutTimeUTCSecs:      archive.ReadoutTimeUTCSecs[row],
		ReadoutTimeUTCNsecs:     archive.ReadoutTimeUTCNsecs[row],
		ChannelIDs:              archive.ChannelID[row],
		SurfWord:                archive.SurfWord[row],
		WfLength:                archive.WfLength[row],
		Wfs:                     archive.Wfs[row],
	}

	fields.TriggerType = triggerType(archive, row)
	fields.ReadoutDate = time.Unix(int64(fields.ReadoutTimeUTCSecs), int64(fields.ReadoutTimeUTCNsecs)).UTC()

	// Widen to float64 before subtracting. last_pps is larger than
	// event_time for events early in a run and uint32 arithmetic would
	// wrap around.
	fields.Subsecond = (float64(fields.EventTime) - float64(fields.LastPPS)) /
		(float64(fields.LastPPS) - float64(fields.LLastPPS))

	// All channels are assumed to share the first channel's length.
	if len(fields.WfLength) > 0 {
		axis := make([]float64, fields.WfLength[0])
		for i := range axis {
			axis[i] = 1e-9 * float64(i) * SAMPLE_DT
		}
		fields.Time = axis
	}

	return fields
}

// triggerType classifies why the readout at the given row happened,
// 0=RF, 1=SW, 2=PPS, 3=EXT. The flags come from mutually exclusive
// trigger paths and are not cross-checked here.
func triggerType(archive *Archive, row int) uint8 {
	return 1*archive.SoftTrigger[row] + 2*archive.PPSTrigger[row] + 3*archive.ExtTrigger[row]
}
