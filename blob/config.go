package blob

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/zfp/endian"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/options"
	"github.com/arloliu/zfp/stream"
)

// Config holds the settings used to encode and decode blobs.
type Config struct {
	compression format.CompressionType
	bigEndian   bool
	mode        func(s *stream.Stream, f *field.Field) error
	threaded    bool
	threads     int
	logger      *zap.Logger
}

// Option represents a functional option for encoding or decoding blobs.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		compression: format.CompressionNone,
		logger:      zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) engine() endian.EndianEngine {
	if c.bigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// configure applies the compression mode and execution policy to s.
func (c *Config) configure(s *stream.Stream, f *field.Field) error {
	s.SetLogger(c.logger)
	if c.mode != nil {
		if err := c.mode(s, f); err != nil {
			return err
		}
	}

	return c.parallel(s)
}

func (c *Config) parallel(s *stream.Stream) error {
	if !c.threaded {
		return nil
	}
	if err := s.SetExecution(format.ExecThreads); err != nil {
		return err
	}
	s.SetThreads(c.threads)

	return nil
}

// WithCompression sets the secondary compression applied to the payload.
// Payloads that do not shrink are stored uncompressed.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("invalid payload compression: %v", comp)
		}
	})
}

// WithLittleEndian writes the envelope and stream words little-endian. This
// is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = false
	})
}

// WithBigEndian writes the envelope and stream words big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = true
	})
}

// WithRate selects fixed-rate mode with rate compressed bits per value.
func WithRate(rate float64) Option {
	return options.New(func(c *Config) error {
		if rate <= 0 {
			return fmt.Errorf("%w: %v", errs.ErrInvalidRate, rate)
		}
		c.mode = func(s *stream.Stream, f *field.Field) error {
			s.SetRate(rate, f.Type, f.Dims(), false)
			return nil
		}

		return nil
	})
}

// WithPrecision selects fixed-precision mode with prec uncompressed bits
// per value.
func WithPrecision(prec int) Option {
	return options.NoError(func(c *Config) {
		c.mode = func(s *stream.Stream, _ *field.Field) error {
			s.SetPrecision(prec)
			return nil
		}
	})
}

// WithAccuracy selects fixed-accuracy mode with an absolute error bound.
func WithAccuracy(tolerance float64) Option {
	return options.NoError(func(c *Config) {
		c.mode = func(s *stream.Stream, _ *field.Field) error {
			s.SetAccuracy(tolerance)
			return nil
		}
	})
}

// WithReversible selects lossless compression.
func WithReversible() Option {
	return options.NoError(func(c *Config) {
		c.mode = func(s *stream.Stream, _ *field.Field) error {
			s.SetReversible()
			return nil
		}
	})
}

// WithParams selects expert mode.
func WithParams(minbits, maxbits, maxprec, minexp int) Option {
	return options.NoError(func(c *Config) {
		c.mode = func(s *stream.Stream, _ *field.Field) error {
			return s.SetParams(minbits, maxbits, maxprec, minexp)
		}
	})
}

// WithThreads compresses with n goroutines, 0 meaning GOMAXPROCS. On
// decode it applies to fixed-rate streams only.
func WithThreads(n int) Option {
	return options.NoError(func(c *Config) {
		c.threaded = true
		c.threads = n
	})
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
