package util

import "strings"

// Mention formats an @username prefix for a reply composer.
func Mention(username string) string {
	return "@" + username + " "
}

// StripMention removes a single leading @username mention from reply content,
// returning the content unchanged when no mention is present.
func StripMention(content string) string {
	if !strings.HasPrefix(content, "@") {
		return content
	}
	rest := content[1:]
	i := strings.IndexByte(rest, ' ')
	if i < 0 {
		return content
	}
	return strings.TrimLeft(rest[i+1:], " ")
}
