package blocksinfo

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	genesisMiner   = "-"
	malformedMiner = "---"
)

// Patterns run over the coinbase script with every byte mapped to the rune of
// the same value, so \x{80}-\x{ff} match single raw bytes. Order matters: the
// first pattern that matches wins.
var minerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\x60/([_a-zA-Z0-9&. #/-]+)/`),
	regexp.MustCompile(`[\x{e3}\x{e4}\x{e5}][\^/](.*?)\x{fa}`),
	regexp.MustCompile(`([a-zA-Z0-9&. -]+/Mined by [a-zA-Z0-9. ]+)`),
	regexp.MustCompile(`\x08/(.*Mined by [a-zA-Z0-9. ]+)`),
	regexp.MustCompile(`Mined by ([a-zA-Z0-9. ]+)`),
	regexp.MustCompile(`[\x60]([_a-zA-Z0-9&. #/-]+)[/\x{fa}]`),
	regexp.MustCompile(`[/^]([a-zA-Z0-9&. #/-]{5,})`),
	regexp.MustCompile(`[/^]([_a-zA-Z0-9&. #/-]+)/`),
}

// ExtractMiner returns the best-effort miner tag embedded in a coinbase
// signature script, or "" when no pattern matches.
func ExtractMiner(script []byte) string {
	s := latin1(script)
	for _, re := range minerPatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		var b strings.Builder
		for _, r := range m[1] {
			if r > 31 && r < 127 {
				b.WriteRune(r)
			}
		}
		tag := strings.Trim(b.String(), "^")
		tag = strings.Trim(tag, "/")
		return strings.ReplaceAll(tag, "/", " ")
	}
	return ""
}

// RawMiner returns the coinbase script as a quoted byte string.
func RawMiner(script []byte) string {
	return fmt.Sprintf("%q", script)
}

func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
