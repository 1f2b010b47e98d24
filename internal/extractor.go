package internal

// ExtractorSource extracts a value from the request context.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Header(name) })
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Query(name) })
}

// FromForm returns a source that reads from a form field or, failing that,
// the query string.
func FromForm(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Form(name) })
}

// FromCookie returns a source that reads from a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil || v == "" {
			return "", false
		}
		return v, true
	}
}

func nonEmpty(get func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := get(c)
		return v, v != ""
	}
}
