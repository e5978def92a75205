package httpmetrics

// The route set is small and static, so anything off the known list collapses
// into one label to keep metric cardinality bounded against path scanning.
var knownPaths = map[string]struct{}{
	"/register":       {},
	"/login":          {},
	"/health":         {},
	"/metrics":        {},
	"/username-check": {},
	"/email-check":    {},
	"/handle-check":   {},
}

func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return "/other"
}
