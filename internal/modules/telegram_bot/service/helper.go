package service

import (
	"strings"
	"unicode/utf16"
)

// лимит Telegram на одно сообщение, в UTF-16 code units
const maxMessageLen = 4096

// textLen считает длину так же, как Telegram: эмодзи вне BMP занимают две единицы.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// splitMessage режет по переводам строк, длинную строку без переводов режет по символам.
func splitMessage(text string, limit int) []string {
	if textLen(text) <= limit {
		return []string{text}
	}

	var (
		parts []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, strings.TrimRight(cur.String(), "\n"))
			cur.Reset()
			n = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		ln := textLen(line)
		if n+ln > limit {
			flush()
		}
		if ln <= limit {
			cur.WriteString(line)
			n += ln
			continue
		}
		for _, r := range line {
			rl := utf16.RuneLen(r)
			if n+rl > limit {
				flush()
			}
			cur.WriteRune(r)
			n += rl
		}
	}
	flush()
	return parts
}
