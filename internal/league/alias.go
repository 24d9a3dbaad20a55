package league

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug normalizes a name into the public team-id scheme: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, outer hyphens
// trimmed. Slugs are also the identity key for alias lookup.
func Slug(v string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(v), "-"), "-")
}

type aliasKey struct {
	league string
	slug   string
}

// Historical and rebrand aliases, tried after the canonical name when a
// provider's data predates a relocation or rename. Order matters.
var searchAliases = map[aliasKey][]string{
	{"nhl", "utah-mammoth"}:      {"Utah Hockey Club", "Arizona Coyotes"},
	{"mlb", "oakland-athletics"}: {"Athletics", "Sacramento Athletics"},
}

// SearchCandidates expands a canonical team name into the ordered list of
// search strings to try against a provider: the canonical name first, then
// any configured aliases, de-duplicated by slug.
func SearchCandidates(leagueKey, teamName string) []string {
	base := strings.TrimSpace(teamName)
	if base == "" {
		return nil
	}

	aliases := searchAliases[aliasKey{league: strings.ToLower(leagueKey), slug: Slug(base)}]

	candidates := make([]string, 0, 1+len(aliases))
	seen := make(map[string]bool, 1+len(aliases))
	for _, candidate := range append([]string{base}, aliases...) {
		cleaned := strings.TrimSpace(candidate)
		if cleaned == "" {
			continue
		}
		normalized := Slug(cleaned)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		candidates = append(candidates, cleaned)
	}
	return candidates
}
