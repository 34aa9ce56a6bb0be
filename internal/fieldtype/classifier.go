package fieldtype

import (
	"regexp"
	"strings"
	"unicode"
)

// Group names.
const (
	GroupNumber    = "number"
	GroupPhone     = "phone"
	GroupCode      = "code"
	GroupSensitive = "sensitive"
	GroupURL       = "url"
	GroupIdentity  = "identity"
	GroupSystem    = "system"
	GroupCrypto    = "crypto"
	GroupNotes     = "notes"
	GroupOther     = "other"
)

// Group is a named bucket of related semantic types sharing match keywords.
type Group struct {
	Name         string
	AllowedTypes []string
	Keywords     []string
}

var (
	numberGroup = Group{
		Name:         GroupNumber,
		AllowedTypes: []string{TypeNumber},
		Keywords:     []string{"number", "count", "amount", "quantity", "total", "id"},
	}
	phoneGroup = Group{
		Name:         GroupPhone,
		AllowedTypes: []string{TypePhone},
		Keywords:     []string{"phone", "mobile", "cell", "telephone", "contact"},
	}
	codeGroup = Group{
		Name:         GroupCode,
		AllowedTypes: []string{TypeCode},
		Keywords: []string{
			"code", "command", "script", "query", "shell", "bash",
			"sql", "terminal", "console", "cmd", "powershell",
		},
	}
)

// keywordGroups are checked in order after the number, phone and code rules.
// "hidden" is not a registered type, so sensitive always resolves to password.
var keywordGroups = []Group{
	{
		Name:         GroupSensitive,
		AllowedTypes: []string{TypePassword, TypeKey, "hidden"},
		Keywords:     []string{"password", "secret", "key", "token", "auth", "private", "credential"},
	},
	{
		Name:         GroupURL,
		AllowedTypes: []string{TypeURL},
		Keywords:     []string{"url", "endpoint", "link", "documentation", "website", "site", "api"},
	},
	{
		Name:         GroupIdentity,
		AllowedTypes: []string{TypeUsername, TypeEmail},
		Keywords:     []string{"username", "user", "email", "login", "account"},
	},
	{
		Name:         GroupSystem,
		AllowedTypes: []string{TypeText, TypeNumber},
		Keywords:     []string{"host", "port", "server", "domain", "ip", "path"},
	},
	{
		Name:         GroupCrypto,
		AllowedTypes: []string{TypeWallet},
		Keywords:     []string{"wallet", "address", "crypto", "bitcoin", "ethereum"},
	},
	{
		Name:         GroupNotes,
		AllowedTypes: []string{TypeNote},
		Keywords:     []string{"note", "description", "comment", "memo", "details", "text", "content"},
	},
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ClassifiedField is the classification of a single field name. It is derived
// from the name on every call and never stored.
type ClassifiedField struct {
	FieldName string `json:"fieldName"`
	Descriptor
	Group    string `json:"group"`
	IsSecret bool   `json:"isSecret"`
}

// Groups returns every classification group in evaluation order.
func Groups() []Group {
	out := []Group{numberGroup, phoneGroup, codeGroup}
	return append(out, keywordGroups...)
}

// MatchesGroupKeyword reports whether normalizedName contains any keyword.
func MatchesGroupKeyword(normalizedName string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalizedName, kw) {
			return true
		}
	}
	return false
}

// MatchesTypeConfigKeyword reports whether normalizedName and typeValue contain
// one another. Unlike MatchesGroupKeyword this also matches names shorter than
// the type value, e.g. "k" against "key".
func MatchesTypeConfigKeyword(normalizedName, typeValue string) bool {
	return strings.Contains(normalizedName, typeValue) || strings.Contains(typeValue, normalizedName)
}

// Classify resolves the semantic type used to render the input for fieldName.
func Classify(fieldName string) ClassifiedField {
	name := strings.ToLower(fieldName)

	if digitsOnly.MatchString(name) || MatchesGroupKeyword(name, numberGroup.Keywords) {
		return newClassified(fieldName, Lookup(TypeNumber), GroupNumber)
	}
	if MatchesGroupKeyword(name, phoneGroup.Keywords) {
		return newClassified(fieldName, Lookup(TypePhone), GroupPhone)
	}
	if MatchesGroupKeyword(name, codeGroup.Keywords) {
		return newClassified(fieldName, Lookup(TypeCode), GroupCode)
	}

	for _, g := range keywordGroups {
		if !MatchesGroupKeyword(name, g.Keywords) {
			continue
		}
		return newClassified(fieldName, resolveAllowed(g), g.Name)
	}

	return newClassified(fieldName, Lookup(TypeText), GroupOther)
}

// ClassifyForDisplay is Classify with the display overrides applied: the code
// group always renders as a code block and the notes group as a note.
func ClassifyForDisplay(fieldName string) ClassifiedField {
	cf := Classify(fieldName)
	switch cf.Group {
	case GroupCode:
		return newClassified(fieldName, Lookup(TypeCode), GroupCode)
	case GroupNotes:
		return newClassified(fieldName, Lookup(TypeNote), GroupNotes)
	}
	return cf
}

// TypeConfigFor picks the input widget descriptor for a field name by matching
// it against registry values. Whitespace is removed before matching.
func TypeConfigFor(fieldName string) Descriptor {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(fieldName))

	for _, d := range registry {
		if MatchesTypeConfigKeyword(name, d.Value) {
			return d
		}
	}
	return registry[0]
}

// IsSecretField reports whether fieldName classifies into the sensitive group.
func IsSecretField(fieldName string) bool {
	return Classify(fieldName).IsSecret
}

func resolveAllowed(g Group) Descriptor {
	for _, v := range g.AllowedTypes {
		if d, ok := find(v); ok {
			return d
		}
	}
	return Lookup(TypeText)
}

func newClassified(fieldName string, d Descriptor, group string) ClassifiedField {
	return ClassifiedField{
		FieldName:  fieldName,
		Descriptor: d,
		Group:      group,
		IsSecret:   group == GroupSensitive,
	}
}
