package epubgen

// Defaults for the input size ceilings and language tag. The byte ceilings
// match the 16 MiB upload limit typical of the web frontends this engine
// sits behind.
const (
	DefaultMaxContentBytes int64 = 16 * 1024 * 1024
	DefaultMaxImageBytes   int64 = 16 * 1024 * 1024
	DefaultLanguage              = "en"
)

// options holds the per-call configuration assembled from Option values.
type options struct {
	maxContentBytes int64
	maxImageBytes   int64
	language        string
}

// Option configures a Convert or Preview call.
type Option func(*options)

// WithMaxContentBytes sets the ceiling for the Markdown source size.
// Oversize input is rejected before any processing begins.
func WithMaxContentBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxContentBytes = n
		}
	}
}

// WithMaxImageBytes sets the ceiling for a single cover or inline image
// payload.
func WithMaxImageBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxImageBytes = n
		}
	}
}

// WithLanguage sets the dc:language tag recorded in the package document.
// Blank values are ignored.
func WithLanguage(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.language = tag
		}
	}
}

// buildOptions applies opts over the defaults.
func buildOptions(opts []Option) options {
	o := options{
		maxContentBytes: DefaultMaxContentBytes,
		maxImageBytes:   DefaultMaxImageBytes,
		language:        DefaultLanguage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
