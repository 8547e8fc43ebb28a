package main

import (
	"bytes"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/illuscio-dev/geotools-go/encoding"
	"github.com/illuscio-dev/geotools-go/mimetype"
)

type Options struct {
	From string `short:"f" long:"from" description:"Source format. Sniffed from the content if empty" choice:"geojson" choice:"geojson-seq" choice:"wkt" choice:"wkb" default:""`
	To   string `short:"t" long:"to" description:"Target format" choice:"geojson" choice:"geojson-seq" choice:"wkt" choice:"wkb" required:"true"`

	Input  string `short:"i" long:"in" description:"Input file path. Reads from stdin if empty"`
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`

	SwapXY   bool `long:"swap-xy" description:"Swap the first two values of every position and bbox pair"`
	Decimals int  `short:"d" long:"decimals" description:"Fraction digits for coordinate output. Shortest round-trip form if unset"`

	Offset int `long:"offset" description:"Skip this many leading collection items"`
	Limit  int `long:"limit" description:"Emit at most this many collection items"`

	BigEndian bool `long:"big-endian" description:"Write WKB in big-endian byte order"`

	Verbose bool `short:"v" long:"verbose" description:"Log conversion details"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if !opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	reader, err := openInput(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open input")
	}

	engineOpts := &encoding.Options{
		SwapXY:    opts.SwapXY,
		Decimals:  opts.Decimals,
		BigEndian: opts.BigEndian,
		Range: encoding.ItemRange{
			Offset: opts.Offset,
			Limit:  opts.Limit,
		},
	}

	engine := encoding.NewFormatEngine(true)
	output := &bytes.Buffer{}

	err = engine.Stream(
		mimetype.FromString(opts.From),
		mimetype.FromString(opts.To),
		reader,
		output,
		engineOpts,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}

	if err = writeOutput(opts.Output, output.Bytes()); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}

	log.Info().
		Str("from", opts.From).
		Str("to", opts.To).
		Int("bytes", output.Len()).
		Msg("Converted")
}

func openInput(path string) (io.Reader, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
