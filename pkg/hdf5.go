package reader

import (
	"github.com/jmbenlloch/go-hdf5"
)

// Dataset names of the events table.
const (
	EventsGroup = "events"

	ColRun                     = "run"
	ColEvent                   = "event"
	ColEventSecond             = "event_second"
	ColEventTime               = "event_time"
	ColLastPPS                 = "last_pps"
	ColLLastPPS                = "llast_pps"
	ColDeadtimeCounter         = "deadtime_counter"
	ColDeadtimeCounterLastPPS  = "deadtime_counter_last_pps"
	ColDeadtimeCounterLLastPPS = "deadtime_counter_llast_pps"
	ColL2Mask                  = "L2_mask"
	ColSoftTrigger             = "soft_trigger"
	ColPPSTrigger              = "pps_trigger"
	ColExtTrigger              = "ext_trigger"
	ColReadoutTimeUTCSecs      = "readout_time_utc_secs"
	ColReadoutTimeUTCNsecs     = "readout_time_utc_nsecs"
	ColChannelID               = "channel_id"
	ColSurfWord                = "surf_word"
	ColWfLength                = "wf_length"
	ColWfs                     = "wfs"
)

// OpenArchive loads every column of the events table into memory. The
// file handle is only held for the duration of the load. Any missing
// dataset or column length mismatch aborts the load.
func OpenArchive(fname string) (*Archive, error) {
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	defer f.Close()

	group, err := f.OpenGroup(EventsGroup)
	if err != nil {
		return nil, &ErrMissingDataset{Name: EventsGroup, Err: err}
	}
	defer group.Close()

	archive := &Archive{}
	if archive.Run, err = readColumn[uint32](group, ColRun, -1); err != nil {
		return nil, err
	}
	nRows := len(archive.Run)
	if archive.Event, err = readColumn[uint32](group, ColEvent, nRows); err != nil {
		return nil, err
	}
	if archive.EventSecond, err = readColumn[uint32](group, ColEventSecond, nRows); err != nil {
		return nil, err
	}
	if archive.EventTime, err = readColumn[uint32](group, ColEventTime, nRows); err != nil {
		return nil, err
	}
	if archive.LastPPS, err = readColumn[uint32](group, ColLastPPS, nRows); err != nil {
		return nil, err
	}
	if archive.LLastPPS, err = readColumn[uint32](group, ColLLastPPS, nRows); err != nil {
		return nil, err
	}
	if archive.DeadtimeCounter, err = readColumn[uint32](group, ColDeadtimeCounter, nRows); err != nil {
		return nil, err
	}
	if archive.DeadtimeCounterLastPPS, err = readColumn[uint32](group, ColDeadtimeCounterLastPPS, nRows); err != nil {
		return nil, err
	}
	if archive.DeadtimeCounterLLastPPS, err = readColumn[uint32](group, ColDeadtimeCounterLLastPPS, nRows); err != nil {
		return nil, err
	}
	if archive.L2Mask, err = readColumn[uint32](group, ColL2Mask, nRows); err != nil {
		return nil, err
	}
	if archive.SoftTrigger, err = readColumn[uint8](group, ColSoftTrigger, nRows); err != nil {
		return nil, err
	}
	if archive.PPSTrigger, err = readColumn[uint8](group, ColPPSTrigger, nRows); err != nil {
		return nil, err
	}
	if archive.ExtTrigger, err = readColumn[uint8](group, ColExtTrigger, nRows); err != nil {
		return nil, err
	}
	if archive.ReadoutTimeUTCSecs, err = readColumn[uint32](group, ColReadoutTimeUTCSecs, nRows); err != nil {
		return nil, err
	}
	if archive.ReadoutTimeUTCNsecs, err = readColumn[uint32](group, ColReadoutTimeUTCNsecs, nRows); err != nil {
		return nil, err
	}
	if archive.ChannelID, err = read2dColumn[int32](group, ColChannelID, nRows); err != nil {
		return nil, err
	}
	if archive.SurfWord, err = read2dColumn[uint32](group, ColSurfWord, nRows); err != nil {
		return nil, err
	}
	if archive.WfLength, err = read2dColumn[uint32](group, ColWfLength, nRows); err != nil {
		return nil, err
	}
	if archive.Wfs, err = read3dColumn[int16](group, ColWfs, nRows); err != nil {
		return nil, err
	}
	return archive, nil
}

// readColumn reads a full 1-d dataset. nRows < 0 skips the length check,
// it is used for the first column read, which fixes the table length.
func readColumn[T any](group *hdf5.Group, name string, nRows int) ([]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	defer dset.Close()

	dims, _, err := dset.Space().SimpleExtentDims()
	if err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	if nRows >= 0 && int(dims[0]) != nRows {
		return nil, &ErrColumnLength{Name: name, Got: int(dims[0]), Want: nRows}
	}

	data := make([]T, dims[0])
	if err := dset.Read(&data); err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	return data, nil
}

// read2dColumn reads a [nRows][nChannels] dataset into one sub-slice per row.
func read2dColumn[T any](group *hdf5.Group, name string, nRows int) ([][]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	defer dset.Close()

	dims, _, err := dset.Space().SimpleExtentDims()
	if err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	if int(dims[0]) != nRows {
		return nil, &ErrColumnLength{Name: name, Got: int(dims[0]), Want: nRows}
	}
	nChannels := int(dims[1])

	flat := make([]T, nRows*nChannels)
	if err := dset.Read(&flat); err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}

	data := make([][]T, nRows)
	for i := range data {
		data[i] = flat[i*nChannels : (i+1)*nChannels]
	}
	return data, nil
}

// read3dColumn reads a [nRows][nChannels][nSamples] dataset into one
// sample slice per row and channel.
func read3dColumn[T any](group *hdf5.Group, name string, nRows int) ([][][]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	defer dset.Close()

	dims, _, err := dset.Space().SimpleExtentDims()
	if err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}
	if int(dims[0]) != nRows {
		return nil, &ErrColumnLength{Name: name, Got: int(dims[0]), Want: nRows}
	}
	nChannels := int(dims[1])
	nSamples := int(dims[2])

	flat := make([]T, nRows*nChannels*nSamples)
	if err := dset.Read(&flat); err != nil {
		return nil, &ErrMissingDataset{Name: name, Err: err}
	}

	data := make([][][]T, nRows)
	for i := range data {
		row := make([][]T, nChannels)
		for j := range row {
			offset := (i*nChannels + j) * nSamples
			row[j] = flat[offset : offset+nSamples]
		}
		data[i] = row
	}
	return data, nil
}
