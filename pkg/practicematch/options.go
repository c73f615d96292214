package practicematch

type options struct {
	threshold int
	areas     []Area
}

// Option configures a Matcher.
type Option func(*options)

// WithThreshold sets the minimum winning score. Below it SelectPrimaryArea
// reports no match. Default: 10. A zero threshold still never matches an
// area that scored nothing.
func WithThreshold(t int) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithAreas replaces the built-in catalog. Areas are ranked in the given
// order when score and priority tie.
func WithAreas(areas []Area) Option {
	return func(o *options) {
		o.areas = areas
	}
}
