// zfp compresses and decompresses raw binary arrays of int32, int64,
// float32 or float64 values.
//
// Compress a 3D double array at 16 bits per value and report the error:
//
//	zfp -i in.raw -z out.zfp -t f64 -3 100,100,100 -r 16 -s
//
// Decompress a blob written by the command:
//
//	zfp -z out.zfp -o out.raw
//
// With both -i and -o the input is compressed and decompressed in one run.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/arloliu/zfp/blob"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zfp: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	input, compressed, output string
	typ                       string
	extents                   [4][]int
	rate                      float64
	precision                 int
	accuracy                  float64
	reversible                bool
	expert                    []int
	threads                   int
	codec                     string
	stats                     bool
	verbose                   bool
}

func parseFlags(args []string, out io.Writer) (*options, *pflag.FlagSet, error) {
	var o options
	fs := pflag.NewFlagSet("zfp", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&o.input, "input", "i", "", "uncompressed raw input file")
	fs.StringVarP(&o.compressed, "compressed", "z", "", "compressed file (output with -i, input otherwise)")
	fs.StringVarP(&o.output, "output", "o", "", "decompressed raw output file")
	fs.StringVarP(&o.typ, "type", "t", "f64", "scalar type: i32, i64, f32 or f64")
	fs.IntSliceVarP(&o.extents[0], "1d", "1", nil, "1D extent nx")
	fs.IntSliceVarP(&o.extents[1], "2d", "2", nil, "2D extents nx,ny")
	fs.IntSliceVarP(&o.extents[2], "3d", "3", nil, "3D extents nx,ny,nz")
	fs.IntSliceVarP(&o.extents[3], "4d", "4", nil, "4D extents nx,ny,nz,nw")
	fs.Float64VarP(&o.rate, "rate", "r", 0, "fixed-rate mode with this many bits per value")
	fs.IntVarP(&o.precision, "precision", "p", 0, "fixed-precision mode with this many bit planes")
	fs.Float64VarP(&o.accuracy, "accuracy", "a", 0, "fixed-accuracy mode with this absolute error tolerance")
	fs.BoolVarP(&o.reversible, "reversible", "R", false, "reversible (lossless) mode")
	fs.IntSliceVarP(&o.expert, "expert", "c", nil, "expert mode minbits,maxbits,maxprec,minexp")
	fs.IntVarP(&o.threads, "threads", "x", 0, "compress with this many goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&o.codec, "codec", "none", "secondary compression: none, zstd, s2 or lz4")
	fs.BoolVarP(&o.stats, "stats", "s", false, "print error statistics")
	fs.BoolVar(&o.verbose, "verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if fs.NArg() > 0 {
		return nil, fs, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	return &o, fs, nil
}

func run(args []string, out io.Writer) error {
	o, fs, err := parseFlags(args, out)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if o.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	switch {
	case o.input != "":
		return compressFile(o, fs, out, logger)
	case o.compressed != "":
		return decompressFile(o, out, logger)
	default:
		return errors.New("one of -i or -z is required")
	}
}

func compressFile(o *options, fs *pflag.FlagSet, out io.Writer, logger *zap.Logger) error {
	typ, err := format.ParseScalarType(o.typ)
	if err != nil {
		return err
	}
	dims, err := extents(o, fs)
	if err != nil {
		return err
	}
	opts, err := encodeOptions(o, fs)
	if err != nil {
		return err
	}
	opts = append(opts, blob.WithLogger(logger))

	raw, err := os.ReadFile(o.input)
	if err != nil {
		return err
	}
	orig, err := decodeRaw(raw, typ, dims)
	if err != nil {
		return fmt.Errorf("%s: %w", o.input, err)
	}

	data, err := blob.EncodeStream(orig, opts...)
	if err != nil {
		return err
	}
	if o.compressed != "" {
		if err := os.WriteFile(o.compressed, data, 0o644); err != nil {
			return err
		}
	}
	logger.Debug("compressed",
		zap.String("input", o.input),
		zap.Int("raw", len(raw)),
		zap.Int("blob", len(data)))

	if o.output == "" && !o.stats {
		return nil
	}
	recon, err := decodeBlob(data, o, logger)
	if err != nil {
		return err
	}
	if o.output != "" {
		if err := os.WriteFile(o.output, encodeRaw(recon), 0o644); err != nil {
			return err
		}
	}
	if o.stats {
		return report(out, orig, recon, len(raw), len(data))
	}

	return nil
}

func decompressFile(o *options, out io.Writer, logger *zap.Logger) error {
	data, err := os.ReadFile(o.compressed)
	if err != nil {
		return err
	}
	recon, err := decodeBlob(data, o, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", o.compressed, err)
	}
	raw := encodeRaw(recon)
	if o.output != "" {
		if err := os.WriteFile(o.output, raw, 0o644); err != nil {
			return err
		}
	}
	if o.stats {
		_, err := fmt.Fprintf(out, "type=%s dims=%v raw=%d zfp=%d ratio=%.3g\n",
			recon.Type, nonzero(recon.Extents()), len(raw), len(data), float64(len(raw))/float64(len(data)))
		return err
	}

	return nil
}

func decodeBlob(data []byte, o *options, logger *zap.Logger) (*field.Field, error) {
	b, err := blob.Decode(data)
	if err != nil {
		return nil, err
	}
	opts := []blob.Option{blob.WithLogger(logger)}
	if o.threads > 0 {
		opts = append(opts, blob.WithThreads(o.threads))
	}

	return b.Field(opts...)
}

// extents returns the array shape from the single -1..-4 flag given.
func extents(o *options, fs *pflag.FlagSet) ([4]int, error) {
	var dims [4]int
	found := 0
	for d := range 4 {
		if !fs.Changed(strconv.Itoa(d+1) + "d") {
			continue
		}
		found++
		if len(o.extents[d]) != d+1 {
			return dims, fmt.Errorf("-%d takes %d extents, got %d", d+1, d+1, len(o.extents[d]))
		}
		for i, n := range o.extents[d] {
			if n <= 0 {
				return dims, fmt.Errorf("extent %d must be positive, got %d", i, n)
			}
			dims[i] = n
		}
	}
	if found != 1 {
		return dims, errors.New("exactly one of -1, -2, -3 or -4 is required")
	}

	return dims, nil
}

// encodeOptions maps the mode and codec flags onto blob options.
func encodeOptions(o *options, fs *pflag.FlagSet) ([]blob.Option, error) {
	var opts []blob.Option
	modes := 0
	if fs.Changed("rate") {
		modes++
		opts = append(opts, blob.WithRate(o.rate))
	}
	if fs.Changed("precision") {
		modes++
		opts = append(opts, blob.WithPrecision(o.precision))
	}
	if fs.Changed("accuracy") {
		modes++
		opts = append(opts, blob.WithAccuracy(o.accuracy))
	}
	if o.reversible {
		modes++
		opts = append(opts, blob.WithReversible())
	}
	if fs.Changed("expert") {
		modes++
		if len(o.expert) != 4 {
			return nil, fmt.Errorf("-c takes minbits,maxbits,maxprec,minexp, got %d values", len(o.expert))
		}
		opts = append(opts, blob.WithParams(o.expert[0], o.expert[1], o.expert[2], o.expert[3]))
	}
	if modes != 1 {
		return nil, errors.New("exactly one of -r, -p, -a, -R or -c is required")
	}

	comp, err := format.ParseCompressionType(o.codec)
	if err != nil {
		return nil, err
	}
	opts = append(opts, blob.WithCompression(comp))
	if fs.Changed("threads") {
		opts = append(opts, blob.WithThreads(o.threads))
	}

	return opts, nil
}

func nonzero(ext [4]int) []int {
	var dims []int
	for _, n := range ext {
		if n == 0 {
			break
		}
		dims = append(dims, n)
	}

	return dims
}
