package preview

import (
	"regexp"
	"unicode/utf8"
)

// ExcerptLength is the number of characters shown in a preview.
const ExcerptLength = 300

var leadingFrontmatter = regexp.MustCompile(`\A---[\s\S]*?---\n`)

// Excerpt strips a leading frontmatter block from content and shortens the
// rest to ExcerptLength characters, appending "..." when cut.
func Excerpt(content string) string {
	body := leadingFrontmatter.ReplaceAllString(content, "")
	if utf8.RuneCountInString(body) <= ExcerptLength {
		return body
	}
	runes := []rune(body)
	return string(runes[:ExcerptLength]) + "..."
}
