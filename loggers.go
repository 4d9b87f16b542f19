package main

import (
	"io"
	"log"
	"os"

	"github.com/midimap/tsidump/memorywriter"
	"gopkg.in/natefinch/lumberjack.v2"
)

func initLoggers(logfile string, verbose bool) (
	stderrWriter io.Writer, // where we write short messages to stderr (or to a file)
	stderrLogger *log.Logger, // logger for stderrWriter
	shortMemoryWriter *memorywriter.MemoryWriter, // what we write to the status page
	longMemoryWriter *memorywriter.MemoryWriter, // what we write to the detailed status file
) {
	if logfile != "" {
		stderrWriter = &lumberjack.Logger{
			Filename:   logfile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
		}
	} else {
		stderrWriter = os.Stderr
	}

	stderrLogger = log.New(stderrWriter, "", log.LstdFlags)
	shortMemoryWriter = memorywriter.New(2000, 200, false, nil)

	verboseWriter := io.Writer(nil)
	if verbose {
		verboseWriter = stderrWriter
	}

	longMemoryWriter = memorywriter.New(90000, 200, true, verboseWriter)
	return stderrWriter, stderrLogger, shortMemoryWriter, longMemoryWriter
}
