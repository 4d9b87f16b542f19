package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/midimap/tsidump/dcdt"
	"github.com/midimap/tsidump/probe"
	"github.com/midimap/tsidump/report"
	"github.com/midimap/tsidump/server"
	"github.com/midimap/tsidump/tsi"
	"github.com/midimap/tsidump/vocab"
)

const version = "1.1.0"

func main() {
	options := parseFlags()

	if options.versionFlag {
		fmt.Printf("tsidump %s\n", version)
		return
	}

	if options.file == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !validSignature(options.signature) {
		fmt.Fprintf(os.Stderr, "-sig must be 4 ASCII bytes, got %q\n", options.signature)
		os.Exit(2)
	}
	if options.probeValue > 127 {
		fmt.Fprintf(os.Stderr, "-value must be 0-127, got %d\n", options.probeValue)
		os.Exit(2)
	}

	stderrWriter, stderrLogger, shortMemoryWriter, longMemoryWriter := initLoggers(options.logfile, options.verbose)

	stderrLogger.Print("tsidump is starting.")

	vocabulary, err := vocab.Load(options.vocabFile)
	if err != nil {
		stderrLogger.Fatalf("vocab: %s", err)
	}

	longMemoryWriter.Log("loading " + options.file)
	container, err := tsi.LoadFile(options.file)
	if err != nil {
		stderrLogger.Fatalf("%s: %s", options.file, err)
	}
	longMemoryWriter.Log(fmt.Sprintf("parsed container with %d entries", container.Len()))

	payload, err := container.ControllerPayload()
	if errors.Is(err, tsi.ErrNoController) {
		// expected condition, not a failure: the file simply has
		// no controller mapping in it
		fmt.Printf("%s: no controller configured\n", options.file)
		return
	}
	if err != nil {
		stderrLogger.Fatalf("%s: %s", options.file, err)
	}
	longMemoryWriter.Log(fmt.Sprintf("controller payload is %d bytes", len(payload)))

	result := dcdt.Decode(payload, dcdt.Options{
		Signature:  options.signature,
		Vocabulary: vocabulary,
		Log:        longMemoryWriter,
	})

	if options.probe {
		err = probe.Run(result, probe.Options{
			Port:  options.port,
			Value: uint8(options.probeValue),
			In:    os.Stdin,
			Out:   os.Stdout,
			Log:   longMemoryWriter,
		})
		if err != nil {
			stderrLogger.Fatalf("probe: %s", err)
		}
	}

	if options.sortOut {
		dcdt.SortMappings(result.Mappings)
	}

	if options.jsonOut {
		err = report.WriteJSON(os.Stdout, result)
	} else {
		err = report.WriteTable(os.Stdout, result)
	}
	if err != nil {
		stderrLogger.Fatalf("report: %s", err)
	}

	if options.jsonFile != "" {
		err = writeJSONFile(options.jsonFile, result)
		if err != nil {
			stderrLogger.Fatalf("report: %s", err)
		}
	}

	if options.serve {
		longMemoryWriter.Log("creating HTTP server")
		s, err := server.New(
			result,
			filepath.Base(options.file),
			stderrWriter,
			shortMemoryWriter,
			longMemoryWriter,
			version,
		)
		if err != nil {
			stderrLogger.Fatalf("server: %s", err)
		}

		stderrLogger.Printf("status page on http://%s/status/", s.Addr)
		err = s.Run()
		if err != nil {
			stderrLogger.Fatalf("server: %s", err)
		}
	}

	longMemoryWriter.Log("main ended successfully")
}

func writeJSONFile(path string, result *dcdt.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = report.WriteJSON(f, result)
	if errClose := f.Close(); err == nil {
		err = errClose
	}
	return err
}

func validSignature(sig string) bool {
	if len(sig) != 4 {
		return false
	}
	for i := 0; i < len(sig); i++ {
		if sig[i] < 0x20 || sig[i] > 0x7e {
			return false
		}
	}
	return true
}
