package main

import (
	"flag"
	"fmt"
)

type initOptions struct {
	logfile     string
	verbose     bool
	versionFlag bool

	signature string
	vocabFile string

	jsonOut  bool
	jsonFile string
	sortOut  bool

	probe      bool
	port       string
	probeValue uint

	serve bool

	file string
}

func parseFlags() initOptions {
	var options initOptions
	flag.StringVar(
		&(options.logfile),
		"l",
		"",
		"Log into a file, rotating after 20MB",
	)
	flag.BoolVar(
		&(options.verbose),
		"v",
		false,
		"Write verbose logs to either stderr or logfile",
	)
	flag.BoolVar(
		&(options.versionFlag),
		"version",
		false,
		"Write version",
	)
	flag.StringVar(
		&(options.signature),
		"sig",
		"DCDT",
		"Segment signature to scan for, 4 ASCII bytes",
	)
	flag.StringVar(
		&(options.vocabFile),
		"vocab",
		"",
		"YAML file with extra label keywords. Example: tsidump -vocab keywords.yml mapping.tsi",
	)
	flag.BoolVar(
		&(options.jsonOut),
		"json",
		false,
		"Write the JSON report to stdout instead of the text table",
	)
	flag.StringVar(
		&(options.jsonFile),
		"o",
		"",
		"Also write the JSON report to a file",
	)
	flag.BoolVar(
		&(options.sortOut),
		"sort",
		false,
		"Sort mappings by channel and number instead of file order",
	)
	flag.BoolVar(
		&(options.probe),
		"probe",
		false,
		"Interactively verify mappings by sending them over MIDI after decoding",
	)
	flag.StringVar(
		&(options.port),
		"port",
		"",
		"MIDI output port for -probe, matched as a substring. Example: tsidump -probe -port 'Traktor Virtual Input' mapping.tsi",
	)
	flag.UintVar(
		&(options.probeValue),
		"value",
		127,
		"Controller value sent during -probe (0-127)",
	)
	flag.BoolVar(
		&(options.serve),
		"s",
		false,
		"Serve the decoded mappings on a local status page after decoding",
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: tsidump [flags] file.tsi\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	options.file = flag.Arg(0)
	return options
}
