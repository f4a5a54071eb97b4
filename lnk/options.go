package lnk

import (
	"github.com/rs/zerolog"

	"github.com/andrewstucki/lnkparse/internal"
)

// Option configures a decode.
type Option func(*options)

type options struct {
	strict       bool
	encodingName string
	hostEncoding func() string
	logger       zerolog.Logger

	encoding *internal.Encoding
}

// WithStrict toggles the structural cross-checks (block sizes, signatures,
// versions and class type indicators). Decoding is strict by default.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithSystemDefaultEncoding sets the 8-bit codepage used for every
// non-Unicode string, e.g. "cp1252" or "shift_jis". Shortcut files never
// record the codepage of the machine that wrote them.
func WithSystemDefaultEncoding(name string) Option {
	return func(o *options) {
		o.encodingName = name
	}
}

// WithHostEncoding replaces the host locale query used when no system
// default encoding was given.
func WithHostEncoding(query func() string) Option {
	return func(o *options) {
		o.hostEncoding = query
	}
}

// WithLogger sets the logger receiving non-fatal diagnostics such as
// unsupported extra data blocks.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		strict:       true,
		hostEncoding: internal.HostEncoding,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.encodingName != "" {
		enc, err := internal.LookupEncoding(o.encodingName)
		if err != nil {
			return nil, err
		}
		o.encoding = enc
		return o, nil
	}

	host := o.hostEncoding()
	enc, err := internal.LookupEncoding(host)
	if err != nil {
		o.logger.Warn().Err(err).Str("encoding", host).Msg("host encoding is not supported, falling back to utf-8")
		enc = internal.UTF8
	}
	o.encoding = enc
	return o, nil
}
