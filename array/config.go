package array

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/internal/options"
)

// Config holds the construction settings of a compressed array.
type Config struct {
	data       any
	cacheBytes int
	logger     *zap.Logger
}

func newConfig() *Config {
	return &Config{logger: zap.NewNop()}
}

// Option represents a functional option for configuring a compressed array.
type Option = options.Option[*Config]

// WithData initializes the array from data, stored in raster order with x
// varying fastest. len(data) must equal the number of elements.
func WithData[T codec.Scalar](data []T) Option {
	return options.NoError(func(c *Config) {
		c.data = data
	})
}

// WithCacheSize sets the cache size in bytes. 0 selects a default that
// scales with the square root of the number of blocks.
func WithCacheSize(bytes int) Option {
	return options.New(func(c *Config) error {
		if bytes < 0 {
			return fmt.Errorf("negative cache size %d", bytes)
		}
		c.cacheBytes = bytes

		return nil
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

// initialData returns the data option as []T.
func initialData[T codec.Scalar](c *Config, size int) ([]T, error) {
	if c.data == nil {
		return nil, nil
	}

	data, ok := c.data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: initial data is %T, want %T", errs.ErrInvalidType, c.data, data)
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: initial data has %d values, want %d", errs.ErrDataSize, len(data), size)
	}

	return data, nil
}
