package search

import "strings"

// Synonyms maps a normalized query to alternative phrasings candidates
// actually type. Lookups are exact on the normalized query.
var Synonyms = map[string][]string{
	"frontend":   {"front end", "desarrollador frontend", "ui developer"},
	"backend":    {"back end", "desarrollador backend", "server developer"},
	"fullstack":  {"full stack", "desarrollador full stack"},
	"javascript": {"js", "node", "nodejs"},
	"diseñador":  {"designer", "diseñador ux", "diseñador ui"},
	"movil":      {"mobile", "android", "ios"},
	"datos":      {"data", "data engineer", "analista de datos"},
}

// Normalize lowercases, trims and collapses internal whitespace so that
// cache keys and synonym lookups treat "  Frontend " and "frontend" alike.
func Normalize(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	return strings.Join(strings.Fields(query), " ")
}

// Expand returns the normalized query followed by its synonyms, if any.
// The original query always comes first so its results rank ahead.
func Expand(query string) []string {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	out := []string{q}
	for _, s := range Synonyms[q] {
		s = Normalize(s)
		if s != "" && s != q {
			out = append(out, s)
		}
	}
	return out
}
