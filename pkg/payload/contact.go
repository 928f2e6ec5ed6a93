package payload

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Contact field names, as used by SetContactField style updates.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldOrganization = "organization"
	FieldURL          = "url"
)

// ContactRecord holds the raw contact card inputs. No field is validated.
type ContactRecord struct {
	FirstName    string `json:"firstName" yaml:"firstName"`
	LastName     string `json:"lastName" yaml:"lastName"`
	Phone        string `json:"phone" yaml:"phone"`
	Email        string `json:"email" yaml:"email"`
	Organization string `json:"organization" yaml:"organization"`
	URL          string `json:"url" yaml:"url"`
}

// ContactFields lists the contact field names in form order.
func ContactFields() []string {
	return []string{FieldFirstName, FieldLastName, FieldPhone, FieldEmail, FieldOrganization, FieldURL}
}

// HasPrimaryFields reports whether any of first name, last name, phone or
// email is set. Organization and URL alone never produce a card.
func (c ContactRecord) HasPrimaryFields() bool {
	return c.FirstName != "" || c.LastName != "" || c.Phone != "" || c.Email != ""
}

// Get returns the value of the named field.
func (c ContactRecord) Get(field string) (string, bool) {
	switch field {
	case FieldFirstName:
		return c.FirstName, true
	case FieldLastName:
		return c.LastName, true
	case FieldPhone:
		return c.Phone, true
	case FieldEmail:
		return c.Email, true
	case FieldOrganization:
		return c.Organization, true
	case FieldURL:
		return c.URL, true
	default:
		return "", false
	}
}

// With returns a copy of the record with the named field replaced.
func (c ContactRecord) With(field, value string) (ContactRecord, error) {
	switch field {
	case FieldFirstName:
		c.FirstName = value
	case FieldLastName:
		c.LastName = value
	case FieldPhone:
		c.Phone = value
	case FieldEmail:
		c.Email = value
	case FieldOrganization:
		c.Organization = value
	case FieldURL:
		c.URL = value
	default:
		return c, fmt.Errorf("payload: unknown contact field %q", field)
	}
	return c, nil
}

// LoadContact reads a contact card from a JSON or YAML file.
func LoadContact(path string) (ContactRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContactRecord{}, fmt.Errorf("payload: read contact %s: %w", path, err)
	}
	return ParseContact(data, path)
}

// ParseContact decodes a contact card. The source name only picks the
// decoder: .json files decode as JSON, everything else as YAML (a JSON
// superset).
func ParseContact(data []byte, source string) (ContactRecord, error) {
	var record ContactRecord
	if len(strings.TrimSpace(string(data))) == 0 {
		return record, fmt.Errorf("payload: contact %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &record); err != nil {
			return ContactRecord{}, fmt.Errorf("payload: parse contact %s: %w", source, err)
		}
		return record, nil
	}

	if err := yaml.Unmarshal(data, &record); err != nil {
		return ContactRecord{}, fmt.Errorf("payload: parse contact %s: %w", source, err)
	}
	return record, nil
}
