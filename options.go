package xlmerge

// DefaultSheet is the nominated sheet used when none is configured.
const DefaultSheet = "Sheet1"

// Options holds configuration for validation and merging.
type Options struct {
	sheet              string
	preserveHiddenRows bool
	concurrency        int
	listeners          []MergeListener
}

func defaultOptions() *Options {
	return &Options{
		sheet:       DefaultSheet,
		concurrency: 4,
	}
}

func newOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Merger or Batch.
type Option func(*Options)

// WithSheet sets the nominated sheet name (default: "Sheet1").
func WithSheet(name string) Option {
	return func(o *Options) { o.sheet = name }
}

// WithPreserveHiddenRows keeps hidden source rows hidden in the summary (default: false).
// When disabled every appended row is visible.
func WithPreserveHiddenRows(preserve bool) Option {
	return func(o *Options) { o.preserveHiddenRows = preserve }
}

// WithConcurrency bounds how many source files Batch.Validate decodes at once (default: 4).
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithListener adds a listener notified while merging.
func WithListener(l MergeListener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, l) }
}
