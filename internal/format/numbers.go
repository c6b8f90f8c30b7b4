package format

import (
	"fmt"
	"strings"
)

// FormatBytes renders a byte count with binary units ("1.5 MiB").
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// CountDigits returns the number of decimal digits of a base-10 integer
// string, ignoring a leading sign.
func CountDigits(s string) int {
	return len(strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+"))
}

// Truncate shortens a long decimal string to its first and last edge digits
// joined by "...". Strings of at most limit digits are returned unchanged.
func Truncate(s string, limit, edge int) string {
	if CountDigits(s) <= limit || len(s) <= 2*edge {
		return s
	}
	return s[:edge] + "..." + s[len(s)-edge:]
}

// GroupDigits inserts thousand separators into a base-10 integer string.
func GroupDigits(s string) string {
	prefix := ""
	if strings.HasPrefix(s, "-") {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var b strings.Builder
	b.Grow(len(prefix) + n + (n-1)/3)
	b.WriteString(prefix)
	first := n % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
