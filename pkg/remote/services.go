package remote

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-qrgen/pkg/render"
)

const (
	// GoogleChartsName identifies the first fallback service.
	GoogleChartsName = "googlecharts"
	// QRServerName identifies the second fallback service.
	QRServerName = "qrserver"

	DefaultGoogleChartsURL = "https://chart.googleapis.com/chart"
	DefaultQRServerURL     = "https://api.qrserver.com/v1/create-qr-code/"

	dimensions = "300x300"
)

// GoogleCharts is the first fallback chart service.
type GoogleCharts struct {
	BaseURL string
}

func (GoogleCharts) Name() string { return GoogleChartsName }

// URL returns base?chs=300x300&cht=qr&chl=<payload>&choe=UTF-8.
func (g GoogleCharts) URL(payload string) string {
	return orDefault(g.BaseURL, DefaultGoogleChartsURL) +
		"?chs=" + dimensions +
		"&cht=qr" +
		"&chl=" + EncodeComponent(payload) +
		"&choe=UTF-8"
}

// QRServer is the second fallback chart service.
type QRServer struct {
	BaseURL string
}

func (QRServer) Name() string { return QRServerName }

// URL returns base?size=300x300&data=<payload>&format=png&margin=10.
func (q QRServer) URL(payload string) string {
	return orDefault(q.BaseURL, DefaultQRServerURL) +
		"?size=" + dimensions +
		"&data=" + EncodeComponent(payload) +
		"&format=png" +
		"&margin=10"
}

// NewRegistry returns a registry holding both chart services under their
// default base URLs.
func NewRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(GoogleCharts{})
	registry.MustRegister(QRServer{})
	return registry
}

// EncodeComponent percent-encodes s the way browsers' encodeURIComponent
// does: everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is escaped, and
// spaces become %20.
func EncodeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
