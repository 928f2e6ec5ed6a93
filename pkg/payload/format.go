package payload

import "strings"

const defaultScheme = "https://"

// FormState is the raw form input the payload is derived from.
type FormState struct {
	Kind    Kind
	URL     string
	Text    string
	Contact ContactRecord
}

// Derive picks the formatter for state.Kind and returns the encodable string.
// Unknown kinds derive the empty payload.
func Derive(state FormState) string {
	switch state.Kind {
	case KindURL:
		return FormatURL(state.URL)
	case KindText:
		return FormatText(state.Text)
	case KindContact:
		return FormatContact(state.Contact)
	default:
		return ""
	}
}

// FormatURL trims raw and prepends https:// unless it already starts with
// http:// or https://. Host names are not validated.
func FormatURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return defaultScheme + trimmed
}

// FormatText returns raw unchanged, surrounding whitespace included.
func FormatText(raw string) string {
	return raw
}

// FormatContact serialises the record as a vCard 3.0 block. Every line is
// emitted even when its value is empty, and values are not escaped, so a ';'
// or ',' in a field lands in the card as typed. A record without a first
// name, last name, phone or email yields the empty payload, even when the
// organization or website is set.
func FormatContact(record ContactRecord) string {
	if !record.HasPrimaryFields() {
		return ""
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:3.0\n")
	b.WriteString("FN:" + record.FirstName + " " + record.LastName + "\n")
	b.WriteString("N:" + record.LastName + ";" + record.FirstName + ";;;\n")
	b.WriteString("ORG:" + record.Organization + "\n")
	b.WriteString("TEL:" + record.Phone + "\n")
	b.WriteString("EMAIL:" + record.Email + "\n")
	b.WriteString("URL:" + record.URL + "\n")
	b.WriteString("END:VCARD")
	return b.String()
}
