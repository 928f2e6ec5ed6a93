package payload

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects which formatter produces the payload.
type Kind string

const (
	KindURL     Kind = "url"
	KindText    Kind = "text"
	KindContact Kind = "contact"
)

// ErrUnknownKind is returned by ParseKind for unsupported payload kinds.
var ErrUnknownKind = errors.New("payload: unknown kind")

// Kinds lists the supported payload kinds in tab order.
func Kinds() []Kind {
	return []Kind{KindURL, KindText, KindContact}
}

// ParseKind resolves a user supplied kind name. Matching is case-insensitive.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindURL:
		return KindURL, nil
	case KindText:
		return KindText, nil
	case KindContact:
		return KindContact, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindURL, KindText, KindContact:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}
