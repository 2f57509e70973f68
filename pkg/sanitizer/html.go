// Package sanitizer cleans user-supplied markup before it is mailed out.
package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Campaign bodies come from markdown, so the policy mirrors what goldmark emits
		// plus the button extension's anchor class.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a", "p", "span")
		emailPolicy.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
		emailPolicy.AllowAttrs("align").OnElements("td", "th", "p")
		emailPolicy.RequireNoFollowOnLinks(false)
		emailPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// EmailHTML keeps formatting tags, links, images and tables and strips
// scripts, event handlers and javascript: URLs.
func EmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// StripTags removes all markup and collapses surrounding whitespace.
// Subjects go through it because mail clients render them as plain text.
func StripTags(s string) string {
	initPolicies()
	return strings.Join(strings.Fields(strictPolicy.Sanitize(s)), " ")
}

// Custom applies a caller-supplied policy. A nil policy returns s unchanged.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
