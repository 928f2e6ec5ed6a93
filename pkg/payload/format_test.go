package payload_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrgen/pkg/payload"
)

func TestFormatURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "example.com", want: "https://example.com"},
		{in: "  example.com/path  ", want: "https://example.com/path"},
		{in: "http://example.com", want: "http://example.com"},
		{in: "https://example.com?q=1", want: "https://example.com?q=1"},
		{in: "ftp://example.com", want: "https://ftp://example.com"},
		{in: "not a host", want: "https://not a host"},
		{in: "HTTPS://example.com", want: "https://HTTPS://example.com"},
		{in: "\thttps://example.com \n", want: "https://example.com"},
	}
	for _, tc := range cases {
		if got := payload.FormatURL(tc.in); got != tc.want {
			t.Errorf("FormatURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatURLIdempotent(t *testing.T) {
	inputs := []string{"", " ", "example.com", "http://a.b", "https://c.d", " x "}
	for _, in := range inputs {
		once := payload.FormatURL(in)
		if twice := payload.FormatURL(once); twice != once {
			t.Errorf("FormatURL not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFormatTextIsVerbatim(t *testing.T) {
	for _, in := range []string{"", "  padded  ", "line1\nline2"} {
		if got := payload.FormatText(in); got != in {
			t.Errorf("FormatText(%q) = %q", in, got)
		}
	}
}

func TestFormatContactWithoutPrimaryFields(t *testing.T) {
	tests := []struct {
		name   string
		record payload.ContactRecord
	}{
		{name: "all empty", record: payload.ContactRecord{}},
		{name: "organization and url only", record: payload.ContactRecord{Organization: "Acme", URL: "https://acme.test"}},
		{name: "organization only", record: payload.ContactRecord{Organization: "Acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payload.FormatContact(tt.record); got != "" {
				t.Fatalf("expected empty payload, got %q", got)
			}
		})
	}
}

func TestFormatContactNameOnly(t *testing.T) {
	got := payload.FormatContact(payload.ContactRecord{FirstName: "John", LastName: "Doe"})

	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:John Doe",
		"N:Doe;John;;;",
		"ORG:",
		"TEL:",
		"EMAIL:",
		"URL:",
		"END:VCARD",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("vcard mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatContactKeepsSpecialCharacters(t *testing.T) {
	got := payload.FormatContact(payload.ContactRecord{
		FirstName:    "Ann",
		Organization: "Acme; Inc, \\Ltd",
	})
	if !strings.Contains(got, "ORG:Acme; Inc, \\Ltd\n") {
		t.Fatalf("expected unescaped organization line, got %q", got)
	}
	if !strings.Contains(got, "FN:Ann \n") {
		t.Fatalf("expected trailing space in FN when last name empty, got %q", got)
	}
}

func TestDerive(t *testing.T) {
	contact := payload.ContactRecord{FirstName: "John", LastName: "Doe"}
	orgOnly := payload.ContactRecord{Organization: "Acme", URL: "https://acme.test"}

	tests := []struct {
		name  string
		state payload.FormState
		want  string
	}{
		{name: "url", state: payload.FormState{Kind: payload.KindURL, URL: "go.dev"}, want: "https://go.dev"},
		{name: "url ignores other inputs", state: payload.FormState{Kind: payload.KindURL, Text: "hello"}, want: ""},
		{name: "text verbatim", state: payload.FormState{Kind: payload.KindText, Text: "  hi  "}, want: "  hi  "},
		{name: "contact", state: payload.FormState{Kind: payload.KindContact, Contact: contact}, want: payload.FormatContact(contact)},
		{name: "contact gate ignores organization and url", state: payload.FormState{Kind: payload.KindContact, Contact: orgOnly}, want: ""},
		{name: "contact phone only", state: payload.FormState{Kind: payload.KindContact, Contact: payload.ContactRecord{Phone: "555"}}, want: payload.FormatContact(payload.ContactRecord{Phone: "555"})},
		{name: "unknown kind", state: payload.FormState{Kind: "sms", Text: "x"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, payload.Derive(tt.state)); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := payload.ParseKind(" Contact ")
	if err != nil {
		t.Fatalf("parse kind: %v", err)
	}
	if kind != payload.KindContact {
		t.Fatalf("expected contact, got %q", kind)
	}

	if _, err := payload.ParseKind("wifi"); err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
}
