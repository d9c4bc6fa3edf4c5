// Package rewrite turns social-media links into embed-friendly ones and
// escapes URLs so Discord does not auto-expand them.
package rewrite

import (
	"regexp"
	"strings"
)

// urlPattern matches http/https URLs. The body excludes angle brackets so an
// already wrapped URL is not matched through its wrapper. Callers must apply
// SuppressPreviews at most once per text; a second pass would wrap again.
var urlPattern = regexp.MustCompile(`https?://[^\s<>]+`)

// Replacement substitutes one source domain token with a target domain.
type Replacement struct {
	From string
	To   string
}

// Rule rewrites URLs of one service to a mirror domain that renders proper
// embeds. A Rule matches when the URL contains any of its source domains.
type Rule struct {
	Name         string
	Replacements []Replacement
}

// Apply rewrites url if it belongs to the rule's service. The second return
// value reports whether the rule matched.
func (r Rule) Apply(url string) (string, bool) {
	matched := false
	for _, rep := range r.Replacements {
		if strings.Contains(url, rep.From) {
			matched = true
		}
	}
	if !matched {
		return "", false
	}
	out := url
	for _, rep := range r.Replacements {
		out = strings.ReplaceAll(out, rep.From, rep.To)
	}
	return out, true
}

// Instagram rewrites instagram.com links to kkinstagram.com.
var Instagram = Rule{
	Name: "instagram",
	Replacements: []Replacement{
		{From: "instagram.com", To: "kkinstagram.com"},
	},
}

// Reddit rewrites reddit.com links to rxddit.com.
var Reddit = Rule{
	Name: "reddit",
	Replacements: []Replacement{
		{From: "reddit.com", To: "rxddit.com"},
	},
}

// SuppressPreviews wraps every URL in text in angle brackets so Discord skips
// the link preview. Text without URLs is returned unchanged.
func SuppressPreviews(text string) string {
	if text == "" {
		return text
	}
	return urlPattern.ReplaceAllString(text, "<$0>")
}
