package fieldtype

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maskChar         = "•"
	shortMaskLength  = 8
	longMaskLength   = 12
	walletEdgeLength = 4
	walletMaxPlain   = 10

	invalidDate = "Invalid Date"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// FormatOptions carries the per-call display state for a field.
type FormatOptions struct {
	RevealSecret bool
}

// FormatValue renders raw for display according to the field's resolved type.
// It never fails; values that cannot be interpreted are returned unchanged.
func FormatValue(field ClassifiedField, raw string, opts FormatOptions) string {
	switch field.Value {
	case TypePassword, TypeKey:
		if !opts.RevealSecret {
			return mask(shortMaskLength)
		}
		return raw
	case TypePrivateKey:
		if !opts.RevealSecret {
			return mask(longMaskLength)
		}
		return raw
	case TypeWallet:
		if field.IsSecret && !opts.RevealSecret {
			return mask(longMaskLength)
		}
		return TruncateWallet(raw)
	case TypeNumber:
		return GroupThousands(raw)
	case TypePhone:
		return FormatPhone(raw)
	case TypeURL:
		return FormatURL(raw)
	case TypeDate, TypeTime, TypeDateTime:
		return formatDate(field.Value, raw)
	}
	return raw
}

// InputType returns the HTML input control type for a type value.
func InputType(typeValue string, visible bool) string {
	switch typeValue {
	case TypePassword, TypeKey:
		if visible {
			return "text"
		}
		return "password"
	case TypeNumber:
		return "number"
	case TypeEmail:
		return "email"
	case TypeURL:
		return "url"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeDateTime:
		return "datetime-local"
	case "tel":
		return "tel"
	}
	return "text"
}

// GroupThousands inserts a comma before every run of three digits that ends a
// digit sequence, wherever the preceding character is a word character.
// "1234567" becomes "1,234,567".
func GroupThousands(s string) string {
	if len(s) < 4 {
		return s
	}

	// run[i] is the number of consecutive digits starting at byte i.
	run := make([]int, len(s)+1)
	for i := len(s) - 1; i >= 0; i-- {
		if isDigit(s[i]) {
			run[i] = run[i+1] + 1
		}
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	b.WriteByte(s[0])
	for i := 1; i < len(s); i++ {
		if run[i] > 0 && run[i]%3 == 0 && isWordChar(s[i-1]) {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// FormatPhone keeps only digits and groups a ten-digit number as "NNN NNN NNNN".
func FormatPhone(s string) string {
	var digits strings.Builder
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			digits.WriteByte(s[i])
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return d
	}
	return d[:3] + " " + d[3:6] + " " + d[6:]
}

// FormatURL shows the host plus any non-root path of an absolute URL. Anything
// that does not parse as an absolute URL is returned verbatim.
func FormatURL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return s
	}
	path := u.EscapedPath()
	if u.Opaque != "" {
		path = u.Opaque
	}
	if path == "/" {
		path = ""
	}
	return u.Hostname() + path
}

// TruncateWallet shortens addresses longer than ten characters to "abcd...wxyz".
func TruncateWallet(s string) string {
	if utf8.RuneCountInString(s) <= walletMaxPlain {
		return s
	}
	r := []rune(s)
	return string(r[:walletEdgeLength]) + "..." + string(r[len(r)-walletEdgeLength:])
}

func formatDate(typeValue, raw string) string {
	var (
		t   time.Time
		err error
	)
	for _, layout := range dateLayouts {
		t, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return invalidDate
	}

	switch typeValue {
	case TypeDate:
		return t.Format("Jan 2, 2006")
	case TypeTime:
		return t.Format("3:04 PM")
	}
	return t.Format("Jan 2, 2006, 3:04 PM")
}

func mask(n int) string {
	return strings.Repeat(maskChar, n)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordChar(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
