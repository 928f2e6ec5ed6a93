package remote_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrgen/pkg/remote"
)

func TestEncodeComponentMatchesBrowserEncoding(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "hello world", want: "hello%20world"},
		{in: "https://example.com/?a=b&c", want: "https%3A%2F%2Fexample.com%2F%3Fa%3Db%26c"},
		{in: "it's (fine)!*~", want: "it's%20(fine)!*~"},
		{in: "a+b", want: "a%2Bb"},
		{in: "l\u00ednea\nnueva", want: "l%C3%ADnea%0Anueva"},
		{in: "N:Doe;John;;;", want: "N%3ADoe%3BJohn%3B%3B%3B"},
	}
	for _, tc := range cases {
		if got := remote.EncodeComponent(tc.in); got != tc.want {
			t.Errorf("EncodeComponent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestServiceURLs(t *testing.T) {
	payload := "https://example.com/a b"

	google := remote.GoogleCharts{}
	wantGoogle := "https://chart.googleapis.com/chart?chs=300x300&cht=qr&chl=https%3A%2F%2Fexample.com%2Fa%20b&choe=UTF-8"
	if got := google.URL(payload); got != wantGoogle {
		t.Fatalf("google url\n got: %s\nwant: %s", got, wantGoogle)
	}

	qrserver := remote.QRServer{}
	wantQRServer := "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=https%3A%2F%2Fexample.com%2Fa%20b&format=png&margin=10"
	if got := qrserver.URL(payload); got != wantQRServer {
		t.Fatalf("qrserver url\n got: %s\nwant: %s", got, wantQRServer)
	}

	custom := remote.QRServer{BaseURL: "http://127.0.0.1:9000/qr"}
	if got := custom.URL("x"); got != "http://127.0.0.1:9000/qr?size=300x300&data=x&format=png&margin=10" {
		t.Fatalf("unexpected custom url %s", got)
	}

	if google.Name() != remote.GoogleChartsName || qrserver.Name() != remote.QRServerName {
		t.Fatalf("unexpected service names")
	}
}

func TestNewRegistry(t *testing.T) {
	registry := remote.NewRegistry()
	if diff := cmp.Diff([]string{remote.GoogleChartsName, remote.QRServerName}, registry.Names()); diff != "" {
		t.Fatalf("services mismatch (-want +got):\n%s", diff)
	}
	service, err := registry.Get(remote.QRServerName)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := service.(remote.QRServer); !ok {
		t.Fatalf("expected QRServer, got %T", service)
	}
}
