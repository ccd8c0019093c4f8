// Package main implements dhtpos, a command line tool that computes DHT positions, vertical
// slots and ring distances for terms and references.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
	"github.com/yacy/yacy-search-server-sub051/pkg/netparams"
	"github.com/yacy/yacy-search-server-sub051/pkg/partition"
	"github.com/yacy/yacy-search-server-sub051/pkg/wordhash"
)

// Build-time variables set by ldflags
var (
	version    = "dev"
	buildTime  = "unknown"
	commitHash = "unknown"
)

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "version", "--version", "-v":
		printVersion(stdout)
	case "help", "--help", "-h":
		printUsage(stdout)
	case "hash":
		err = hashCommand("hash", args[1:], stdout, stderr, wordhash.TermCodec)
	case "urlhash":
		err = hashCommand("urlhash", args[1:], stdout, stderr, wordhash.ReferenceCodec)
	case "position":
		err = positionCommand(args[1:], stdout, stderr)
	case "positions":
		err = positionsCommand(args[1:], stdout, stderr)
	case "slot":
		err = slotCommand(args[1:], stdout, stderr)
	case "distance":
		err = distanceCommand(args[1:], stdout, stderr)
	case "fingerprint":
		err = fingerprintCommand(args[1:], stdout, stderr)
	case "encode":
		err = encodeCommand(args[1:], stdout, stderr)
	case "compare":
		err = compareCommand(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "dhtpos %s\n", version)
	fmt.Fprintf(w, "Built: %s\n", buildTime)
	fmt.Fprintf(w, "Commit: %s\n", commitHash)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `dhtpos %s - DHT position calculator

Usage:
  dhtpos <command> [options] <args>

Commands:
  hash         Hash a word into a term hash
  urlhash      Hash a URL into a reference hash
  position     Storage position of a term, optionally for one reference
  positions    All vertical positions of a term
  slot         Vertical slot of a reference
  distance     Ring distance between two hashes
  fingerprint  Fingerprint of the network parameters
  encode       Handshake encoding of the network parameters (hex)
  compare      Check a remote handshake encoding against the local parameters
  version      Show version information
  help         Show this help message

Options (all commands except version and help):
  -config <file>  network parameter file (YAML)
  -e <n>          partition exponent, overrides the file (not for hash, urlhash, distance)
  -debug          development logging

Arguments that are not %d-symbol hashes are hashed as words first, with the alphabet
of the network.

Examples:
  dhtpos position -e 4 yacy hHJBztzcFn76
  dhtpos positions -config network.yaml yacy
  dhtpos fingerprint -config network.yaml
  dhtpos compare -config network.yaml $(dhtpos encode -config remote.yaml)

`, version, constants.HashLength)
}

// env is the state shared by the subcommands that compute positions
type env struct {
	params netparams.Params
	scheme partition.Scheme
	codec  *cardinal.Codec
	logger *zap.Logger
}

type commonFlags struct {
	config   string
	exponent int
	debug    bool
}

func newFlagSet(name string, stderr io.Writer, withExponent bool) (*flag.FlagSet, *commonFlags) {
	cf := &commonFlags{exponent: -1}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cf.config, "config", "", "network parameter file")
	fs.BoolVar(&cf.debug, "debug", false, "development logging")
	if withExponent {
		fs.IntVar(&cf.exponent, "e", -1, "partition exponent")
	}
	return fs, cf
}

func (cf *commonFlags) env() (*env, error) {
	logger, err := newLogger(cf.debug)
	if err != nil {
		return nil, err
	}

	params := netparams.Default()
	if cf.config != "" {
		params, err = netparams.Load(cf.config)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded network parameters",
			zap.String("path", cf.config),
			zap.String("network", params.Network),
			zap.Int("exponent", params.PartitionExponent))
	}
	if cf.exponent >= 0 {
		params.PartitionExponent = cf.exponent
	}

	scheme, err := params.Scheme()
	if err != nil {
		return nil, err
	}
	return &env{
		params: params,
		scheme: scheme,
		codec:  scheme.Codec(),
		logger: logger,
	}, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// hashArg returns s when it already is a hash, else the term hash of s
func (e *env) hashArg(s string) ([]byte, error) {
	h := []byte(s)
	if len(h) != constants.HashLength || !e.codec.Wellformed(h) {
		h = wordhash.TermCodec(s, e.codec)
		e.logger.Debug("hashed argument", zap.String("word", s), zap.ByteString("hash", h))
	}
	return h, nil
}

func hashCommand(name string, args []string, stdout, stderr io.Writer, hash func(string, *cardinal.Codec) []byte) error {
	fs, cf := newFlagSet(name, stderr, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: %s <input>", errUsage, name)
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	h := hash(fs.Arg(0), e.codec)
	fmt.Fprintf(stdout, "%s %d\n", h, partition.NewHorizontal(e.codec).Position(h))
	return nil
}

func positionCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("position", stderr, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("%w: position <term> [<ref>]", errUsage)
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	term, err := e.hashArg(fs.Arg(0))
	if err != nil {
		return err
	}
	pos := e.scheme.Position(term)
	if fs.NArg() == 2 {
		ref, err := e.hashArg(fs.Arg(1))
		if err != nil {
			return err
		}
		pos = e.scheme.PositionForStorage(term, ref)
	}
	fmt.Fprintf(stdout, "%d %s\n", pos, pos.Hash(e.codec))
	return nil
}

func positionsCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("positions", stderr, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: positions <term>", errUsage)
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	term, err := e.hashArg(fs.Arg(0))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tPOSITION\tHASH")
	for slot, pos := range e.scheme.AllPositions(term) {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", slot, pos, pos.Hash(e.codec))
	}
	return tw.Flush()
}

func slotCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("slot", stderr, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: slot <ref>", errUsage)
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	ref, err := e.hashArg(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d\n", e.scheme.VerticalSlotOf(ref))
	return nil
}

func distanceCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("distance", stderr, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: distance <from-hash> <to-hash>", errUsage)
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	from, err := e.hashArg(fs.Arg(0))
	if err != nil {
		return err
	}
	to, err := e.hashArg(fs.Arg(1))
	if err != nil {
		return err
	}
	d := partition.NewHorizontal(e.codec).HashDistance(from, to)
	fmt.Fprintf(stdout, "%d %.6f\n", d, d.Normalized())
	return nil
}

func fingerprintCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("fingerprint", stderr, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	fp, err := e.params.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %s\n", e.params.Network, fp)
	return nil
}

func encodeCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("encode", stderr, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	data, err := e.params.Encode()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hex.EncodeToString(data))
	return nil
}

func compareCommand(args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("compare", stderr, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: compare <hex>", errUsage)
	}
	e, err := cf.env()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	data, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	remote, err := netparams.Decode(data)
	if err != nil {
		return err
	}
	if err := e.params.Compatible(remote); err != nil {
		e.logger.Debug("remote parameters rejected", zap.Error(err), zap.Bool("mismatch", netparams.IsMismatch(err)))
		return err
	}
	fp, err := remote.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "compatible %s\n", fp)
	return nil
}
