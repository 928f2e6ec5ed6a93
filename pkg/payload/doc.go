// Package payload turns raw form state into the exact string a QR code
// encodes. The formatters are pure: URL inputs gain an https:// scheme when
// none is present, text is used verbatim, and contact records serialise into a
// vCard 3.0 block. An empty string is a meaningful result and means "nothing
// to render".
package payload
