// Package errs defines the errors returned by the zfp packages.
//
// Parameter and blob errors are sentinel values meant for errors.Is.
// Header validation produces a single *HeaderError that carries every
// violation found, so callers see the whole picture in one message.
package errs

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrInvalidParams is returned when minbits > maxbits or maxprec is outside [1, 64].
	ErrInvalidParams = errors.New("invalid compression parameters")
	// ErrInvalidDims is returned for a dimensionality outside the supported range.
	ErrInvalidDims = errors.New("invalid dimensionality")
	// ErrInvalidType is returned for an unsupported or mismatched scalar type.
	ErrInvalidType = errors.New("invalid scalar type")
	// ErrInvalidRate is returned for a non-positive rate.
	ErrInvalidRate = errors.New("invalid rate")
	// ErrDataSize is returned when a slice is shorter than the extents require.
	ErrDataSize = errors.New("data slice too short for extents")
	// ErrExecutionUnavailable is returned for an execution policy with no dispatch entry.
	ErrExecutionUnavailable = errors.New("execution policy unavailable")
	// ErrPartition is returned for a partition index outside [0, count).
	ErrPartition = errors.New("invalid partition")

	// ErrInvalidHeaderSize is returned when an envelope header is not exactly section.HeaderSize bytes.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidHeaderFlags is returned when an envelope header carries unknown flag values.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	// ErrInvalidBlobSize is returned when a blob is shorter than its envelope header says.
	ErrInvalidBlobSize = errors.New("invalid blob size")
	// ErrInvalidMagic is returned when a blob does not start with the envelope magic.
	ErrInvalidMagic = errors.New("invalid blob magic")
	// ErrInvalidBlobKind is returned when a blob payload kind is unknown or unexpected.
	ErrInvalidBlobKind = errors.New("invalid blob kind")
	// ErrChecksumMismatch is returned when a blob payload fails verification.
	ErrChecksumMismatch = errors.New("blob checksum mismatch")
)

// Header violation messages.
const (
	MsgBadMagic       = "header does not start with the zfp magic"
	MsgBadMeta        = "header field metadata is invalid"
	MsgBadMode        = "header compression mode is invalid"
	MsgTypeMismatch   = "header specifies a scalar type different from this array's"
	MsgDimsMismatch   = "header specifies a dimensionality different from this array's"
	MsgNotFixedRate   = "header specifies a non fixed-rate mode, unsupported by compressed arrays"
	MsgLongHeader     = "compressed arrays only support short headers"
	MsgBufferTooSmall = "buffer is smaller than the header's compressed size"
	MsgUnalignedRate  = "header specifies a rate whose blocks are not whole 64-bit words"
	MsgHeaderSize     = "header has the wrong size"
)

// HeaderError reports every problem found while validating a zfp header.
type HeaderError struct {
	err error
}

// NewHeaderError returns nil when msgs is empty and a *HeaderError otherwise.
func NewHeaderError(msgs ...string) error {
	var err error
	for _, msg := range msgs {
		err = multierr.Append(err, errors.New(msg))
	}
	if err == nil {
		return nil
	}

	return &HeaderError{err: err}
}

func (e *HeaderError) Error() string {
	return "zfp header: " + e.err.Error()
}

// Messages returns the individual violations in the order they were found.
func (e *HeaderError) Messages() []string {
	errs := multierr.Errors(e.err)
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return msgs
}

// Has reports whether msg is one of the violations.
func (e *HeaderError) Has(msg string) bool {
	for _, m := range e.Messages() {
		if strings.EqualFold(m, msg) {
			return true
		}
	}

	return false
}

// IsHeaderError reports whether err is, or wraps, a *HeaderError.
func IsHeaderError(err error) bool {
	var he *HeaderError
	return errors.As(err, &he)
}
