// Package fieldtype classifies user-supplied field names into semantic field
// types and renders field values for display.
package fieldtype

// Canonical type values.
const (
	TypeText       = "text"
	TypeNumber     = "number"
	TypeEmail      = "email"
	TypeURL        = "url"
	TypePassword   = "password"
	TypeTextarea   = "textarea"
	TypeKey        = "key"
	TypePrivateKey = "privateKey"
	TypeCode       = "code"
	TypeNote       = "note"
	TypeDate       = "date"
	TypeTime       = "time"
	TypeDateTime   = "datetime"
	TypePhone      = "phone"
	TypeUsername   = "username"
	TypeWallet     = "wallet"
)

// Descriptor is a catalog entry for one semantic field type.
// StyleClass and IconID are presentation hints and carry no classification meaning.
type Descriptor struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	StyleClass string `json:"styleClass"`
	IconID     string `json:"iconId"`
}

// registry is ordered; TypeConfigFor returns the first entry that matches,
// so reordering changes observable behavior.
var registry = []Descriptor{
	{Value: TypeText, Label: "Text", StyleClass: "field-text", IconID: "type"},
	{Value: TypeNumber, Label: "Number", StyleClass: "field-number", IconID: "hash"},
	{Value: TypeEmail, Label: "Email", StyleClass: "field-email", IconID: "mail"},
	{Value: TypeURL, Label: "URL", StyleClass: "field-url", IconID: "globe"},
	{Value: TypePassword, Label: "Password", StyleClass: "field-password", IconID: "lock"},
	{Value: TypeTextarea, Label: "Text Area", StyleClass: "field-textarea", IconID: "align-left"},
	{Value: TypeKey, Label: "API Key", StyleClass: "field-key", IconID: "key"},
	{Value: TypePrivateKey, Label: "Private Key", StyleClass: "field-private-key", IconID: "shield"},
	{Value: TypeCode, Label: "Code Block", StyleClass: "field-code", IconID: "terminal"},
	{Value: TypeNote, Label: "Note", StyleClass: "field-note", IconID: "file-text"},
	{Value: TypeDate, Label: "Date", StyleClass: "field-date", IconID: "calendar"},
	{Value: TypeTime, Label: "Time", StyleClass: "field-time", IconID: "clock"},
	{Value: TypeDateTime, Label: "Date & Time", StyleClass: "field-datetime", IconID: "calendar-clock"},
	{Value: TypePhone, Label: "Phone Number", StyleClass: "field-phone", IconID: "phone"},
	{Value: TypeUsername, Label: "Username", StyleClass: "field-username", IconID: "user"},
	{Value: TypeWallet, Label: "Wallet Address", StyleClass: "field-wallet", IconID: "wallet"},
}

// byValue indexes registry for Lookup.
var byValue = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(registry))
	for _, d := range registry {
		m[d.Value] = d
	}
	return m
}()

// All returns a copy of the catalog in declaration order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the descriptor for value, or the text descriptor when value is unknown.
func Lookup(value string) Descriptor {
	if d, ok := byValue[value]; ok {
		return d
	}
	return registry[0]
}

// IsKnown reports whether value is a registered type value.
func IsKnown(value string) bool {
	_, ok := byValue[value]
	return ok
}

// find is Lookup without the fallback.
func find(value string) (Descriptor, bool) {
	d, ok := byValue[value]
	return d, ok
}
