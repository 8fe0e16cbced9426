package probe

import "strings"

// Match reports the first marker present in content. Matching is exact and
// case-sensitive; an empty marker never matches.
func Match(content string, markers []string) (string, bool) {
	for _, m := range markers {
		if m == "" {
			continue
		}
		if strings.Contains(content, m) {
			return m, true
		}
	}
	return "", false
}

// preview trims content to n bytes without splitting a UTF-8 sequence.
func preview(content string, n int) string {
	if len(content) <= n {
		return content
	}
	cut := n
	for cut > 0 && !utf8Start(content[cut]) {
		cut--
	}
	return content[:cut]
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
