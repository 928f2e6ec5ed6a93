package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-qrgen/internal/config"
	"github.com/goliatone/go-qrgen/pkg/backend"
	"github.com/goliatone/go-qrgen/pkg/export"
	"github.com/goliatone/go-qrgen/pkg/metrics"
	"github.com/goliatone/go-qrgen/pkg/orchestrator"
	"github.com/goliatone/go-qrgen/pkg/payload"
	"github.com/goliatone/go-qrgen/pkg/prompt"
	"github.com/goliatone/go-qrgen/pkg/remote"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	kind := flag.String("kind", "url", "payload kind: url, text or contact")
	rawURL := flag.String("url", "", "URL to encode")
	text := flag.String("text", "", "text to encode")
	contactFile := flag.String("contact", "", "contact card file (.json or .yaml)")
	firstName := flag.String("first", "", "contact first name")
	lastName := flag.String("last", "", "contact last name")
	phone := flag.String("phone", "", "contact phone number")
	email := flag.String("email", "", "contact email address")
	organization := flag.String("org", "", "contact organization")
	website := flag.String("site", "", "contact website")
	outputDir := flag.String("output", "", "directory for the downloaded PNG (overrides config)")
	copyPayload := flag.Bool("copy", false, "copy the payload to the clipboard")
	showPayload := flag.Bool("show", false, "print the encoded payload")
	printHTML := flag.Bool("html", false, "print the sanitised HTML fragment for the QR code")
	noSave := flag.Bool("no-save", false, "skip writing the PNG")
	interactive := flag.Bool("interactive", false, "fill the form interactively")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	chain, err := remote.NewRegistry().Chain(cfg.Services.Primary, cfg.Services.Secondary)
	if err != nil {
		log.Fatalf("Invalid fallback services: %v", err)
	}

	recorder := metrics.New(prometheus.DefaultRegisterer)
	if err := recorder.Register(); err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}
	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	library := backend.NewLibrary(backend.QRCodeLoader(),
		backend.WithLogger(logger),
		backend.WithLoadObserver(recorder.ObserveLoad),
	)

	orch := orchestrator.New(
		orchestrator.WithLibrary(library),
		orchestrator.WithServices(chain[0], chain[1]),
		orchestrator.WithSaver(export.NewFileSaver(cfg.Output.Dir, nil)),
		orchestrator.WithLogger(logger),
		orchestrator.WithMetrics(recorder),
	)

	if *interactive {
		session, err := prompt.NewSession(orch)
		if err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}
		if err := session.Run(ctx); err != nil && !errors.Is(err, prompt.ErrAborted) {
			log.Fatalf("Session failed: %v", err)
		}
		return
	}

	selected, err := payload.ParseKind(*kind)
	if err != nil {
		log.Fatalf("Invalid kind: %v", err)
	}
	if _, err := orch.SetKind(ctx, selected); err != nil {
		log.Fatalf("Failed to set kind: %v", err)
	}

	switch selected {
	case payload.KindURL:
		orch.SetURL(ctx, *rawURL)
	case payload.KindText:
		orch.SetText(ctx, *text)
	case payload.KindContact:
		record, err := contactRecord(*contactFile, map[string]string{
			payload.FieldFirstName:    *firstName,
			payload.FieldLastName:     *lastName,
			payload.FieldPhone:        *phone,
			payload.FieldEmail:        *email,
			payload.FieldOrganization: *organization,
			payload.FieldURL:          *website,
		})
		if err != nil {
			log.Fatalf("Invalid contact: %v", err)
		}
		orch.SetContact(ctx, record)
	}

	if orch.Payload() == "" {
		log.Fatalf("Nothing to encode for kind %q", selected)
	}

	result, err := orch.Last().Wait(ctx)
	if err != nil {
		log.Fatalf("Render interrupted: %v", err)
	}
	logger.Debug("render settled",
		"render_id", result.ID,
		"stage", result.Stage,
		"elapsed", time.Since(result.Started))

	if *showPayload {
		fmt.Println(orch.Payload())
	}
	if *printHTML {
		markup, err := orch.Markup()
		if err != nil {
			log.Fatalf("Failed to describe QR code: %v", err)
		}
		fmt.Println(markup)
	}
	if !*noSave {
		path, err := orch.Download(ctx)
		if err != nil {
			log.Fatalf("Failed to save QR code: %v", err)
		}
		fmt.Printf("QR code written to %s\n", path)
	}
	if *copyPayload {
		if orch.CopyToClipboard(ctx) {
			fmt.Println("Copied!")
		}
	}
}

// contactRecord loads file, when given, and lets non-empty flag values
// override its fields.
func contactRecord(file string, overrides map[string]string) (payload.ContactRecord, error) {
	var record payload.ContactRecord
	if file != "" {
		loaded, err := payload.LoadContact(file)
		if err != nil {
			return payload.ContactRecord{}, err
		}
		record = loaded
	}
	for _, field := range payload.ContactFields() {
		value := overrides[field]
		if value == "" {
			continue
		}
		next, err := record.With(field, value)
		if err != nil {
			return payload.ContactRecord{}, err
		}
		record = next
	}
	return record, nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", "error", err)
	}
}
