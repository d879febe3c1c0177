package main

import (
	"encoding/json"
	"fmt"
	"os"
)

type Configuration struct {
	FileIn    string `json:"file_in"`
	Run       int    `json:"run"`
	Event     int    `json:"event"`
	Channel   int    `json:"channel"`
	Verbosity int    `json:"verbosity"`
	NoDB      bool   `json:"no_db"`
	Host      string `json:"host"`
	User      string `json:"user"`
	Passwd    string `json:"pass"`
	DBName    string `json:"dbname"`
}

func LoadConfiguration(filename string) (Configuration, error) {
	var config Configuration

	// Set default values. Run/event -1 means first found.
	config.Run = -1
	config.Event = -1
	config.Channel = 0
	config.Verbosity = 0
	config.NoDB = false
	config.Host = "pueo.phys.hawaii.edu"
	config.User = "pueoreader"
	config.Passwd = "readonly"
	config.DBName = "PUEOFLIGHT"

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Run: %d", config.Run), "config")
	logger.Info(fmt.Sprintf("Event: %d", config.Event), "config")
	logger.Info(fmt.Sprintf("Channel: %d", config.Channel), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
}
