package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	sqlx "github.com/jmoiron/sqlx"
	reader "github.com/pueo-exp/reader_go/pkg"
)

var dbConn *sqlx.DB
var configuration Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	reader.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	archive, err := reader.OpenArchive(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("error loading archive: %w", err)
		logger.Error(message.Error())
		return
	}

	var events *reader.EventReader
	if configuration.Run >= 0 && configuration.Event >= 0 {
		events, err = reader.NewEventReaderAt(archive, uint32(configuration.Run), uint32(configuration.Event))
	} else {
		events, err = reader.NewEventReader(archive)
	}
	if err != nil {
		message := fmt.Errorf("error building event reader: %w", err)
		logger.Error(message.Error())
		return
	}

	var channelMap reader.ChannelMap
	if !configuration.NoDB {
		dbConn, err = reader.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()

		channelMap, err = reader.GetChannelMapFromDB(dbConn, int(events.Run()))
		if err != nil {
			message := fmt.Errorf("error reading channel map: %w", err)
			logger.Error(message.Error())
			return
		}
	}

	fmt.Println("Found runs: ", events.Runs())
	fmt.Println("Found events: ", events.Events())

	dumpEvent(events, channelMap)

	fmt.Println("Trigger types: ", events.TriggerTypes())

	waveform, err := events.GetWF(int32(configuration.Channel))
	if err != nil {
		logger.Error(err.Error())
		return
	}
	if info, ok := channelMap[int32(configuration.Channel)]; ok {
		fmt.Printf("Channel %d (SURF %d, antenna %s) waveform: %v\n", configuration.Channel, info.Surf, info.Antenna, waveform)
	} else {
		fmt.Printf("Channel %d waveform: %v\n", configuration.Channel, waveform)
	}
}

func dumpEvent(events *reader.EventReader, channelMap reader.ChannelMap) {
	fields := events.Fields()
	fmt.Printf("Data for: run %d, event %d\n", events.Run(), events.Event())
	fmt.Println("Event second: ", fields.EventSecond)
	fmt.Println("Event time (clock cycles): ", fields.EventTime)
	fmt.Println("Last PPS (clock cycles): ", fields.LastPPS)
	fmt.Println("Last last PPS (clock cycles): ", fields.LLastPPS)
	fmt.Println("Deadtime: ", fields.DeadtimeCounter)
	fmt.Printf("L2 mask: %#06x\n", fields.L2Mask)
	fmt.Println("Readout time UTC second: ", fields.ReadoutTimeUTCSecs)
	fmt.Println("Readout time UTC nano-subsecond: ", fields.ReadoutTimeUTCNsecs)
	fmt.Println("Channel IDs: ", fields.ChannelIDs)
	for _, channel := range fields.ChannelIDs {
		if info, ok := channelMap[channel]; ok {
			fmt.Printf("\tchannel %d: SURF %d, antenna %s\n", channel, info.Surf, info.Antenna)
		}
	}
	fmt.Println("Readout date UTC: ", fields.ReadoutDate)
	fmt.Println("Number of events: ", events.N())
	fmt.Println("Trigger type: ", fields.TriggerType)
	fmt.Println("Trigger subsecond: ", fields.Subsecond)
}
