package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-qrgen/pkg/orchestrator"
	"github.com/goliatone/go-qrgen/pkg/payload"
	"github.com/goliatone/go-qrgen/pkg/resolver"
)

// Action is an entry of the post-render menu.
type Action string

const (
	ActionDownload Action = "Download"
	ActionCopy     Action = "Copy data"
	ActionShow     Action = "Show data"
	ActionEdit     Action = "Edit"
	ActionClear    Action = "Clear all fields"
	ActionQuit     Action = "Quit"
)

// Actions lists the menu entries in display order.
func Actions() []Action {
	return []Action{ActionDownload, ActionCopy, ActionShow, ActionEdit, ActionClear, ActionQuit}
}

var kindLabels = map[payload.Kind]string{
	payload.KindURL:     "URL",
	payload.KindText:    "Text",
	payload.KindContact: "Contact",
}

var contactLabels = map[string]string{
	payload.FieldFirstName:    "First name",
	payload.FieldLastName:     "Last name",
	payload.FieldPhone:        "Phone number",
	payload.FieldEmail:        "Email address",
	payload.FieldOrganization: "Organization",
	payload.FieldURL:          "Website",
}

// Theme holds optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// Session is one interactive run of the form against an orchestrator.
type Session struct {
	orch   *orchestrator.Orchestrator
	driver PromptDriver
	theme  Theme
}

// NewSession builds a session for orch with the survey driver by default.
func NewSession(orch *orchestrator.Orchestrator, options ...Option) (*Session, error) {
	if orch == nil {
		return nil, errors.New("prompt: orchestrator is required")
	}
	s := &Session{orch: orch}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run loops over editing the form and acting on the result until the user
// quits. Quitting returns nil; an interrupt returns ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("prompt: context is required")
	}
	for {
		if err := s.edit(ctx); err != nil {
			return err
		}
		quit, err := s.actions(ctx)
		if err != nil || quit {
			return err
		}
	}
}

func (s *Session) edit(ctx context.Context) error {
	kinds := payload.Kinds()
	options := make([]string, len(kinds))
	current := 0
	for i, kind := range kinds {
		options[i] = kindLabels[kind]
		if kind == s.orch.Kind() {
			current = i
		}
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Payload type",
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(kinds) {
		return fmt.Errorf("prompt: invalid payload type selection %d", idx)
	}
	if _, err := s.orch.SetKind(ctx, kinds[idx]); err != nil {
		return err
	}

	state := s.orch.State()
	switch kinds[idx] {
	case payload.KindURL:
		value, err := s.driver.Input(ctx, InputConfig{
			Message: "Website URL",
			Default: state.URL,
			Help:    "https:// is added when no scheme is given",
		})
		if err != nil {
			return err
		}
		s.orch.SetURL(ctx, value)
	case payload.KindText:
		value, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: "Text content",
			Default: state.Text,
		})
		if err != nil {
			return err
		}
		s.orch.SetText(ctx, value)
	case payload.KindContact:
		for _, field := range payload.ContactFields() {
			existing, _ := state.Contact.Get(field)
			value, err := s.driver.Input(ctx, InputConfig{
				Message: contactLabels[field],
				Default: existing,
			})
			if err != nil {
				return err
			}
			if _, err := s.orch.SetContactField(ctx, field, value); err != nil {
				return err
			}
		}
	}

	return s.report(ctx)
}

func (s *Session) report(ctx context.Context) error {
	pending := s.orch.Last()
	if pending == nil {
		return nil
	}
	res, err := pending.Wait(ctx)
	if err != nil {
		return err
	}
	return s.info(ctx, describe(res))
}

func describe(res resolver.Result) string {
	switch res.Stage {
	case resolver.StageEmpty:
		return "Fill in the form to generate a QR code"
	case resolver.StageLocal:
		return "QR code generated"
	case resolver.StagePrimary, resolver.StageSecondary:
		return "QR code generated by a remote service"
	case resolver.StageBroken:
		return "QR code could not be generated"
	default:
		return "QR code superseded by a newer edit"
	}
}

func (s *Session) actions(ctx context.Context) (bool, error) {
	actions := Actions()
	options := make([]string, len(actions))
	for i, action := range actions {
		options[i] = string(action)
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "Action", Options: options})
		if err != nil {
			return false, err
		}
		if idx < 0 || idx >= len(actions) {
			return false, fmt.Errorf("prompt: invalid action selection %d", idx)
		}

		switch actions[idx] {
		case ActionDownload:
			path, err := s.orch.Download(ctx)
			switch {
			case err != nil:
				err = s.fail(ctx, err)
			case path == "":
				err = s.info(ctx, "Nothing to download")
			default:
				err = s.info(ctx, "Saved "+path)
			}
			if err != nil {
				return false, err
			}
		case ActionCopy:
			msg := "Nothing copied"
			if s.orch.CopyToClipboard(ctx) {
				msg = "Copied!"
			}
			if err := s.info(ctx, msg); err != nil {
				return false, err
			}
		case ActionShow:
			value := s.orch.Payload()
			if value == "" {
				value = "(empty)"
			}
			if err := s.info(ctx, value); err != nil {
				return false, err
			}
		case ActionEdit:
			return false, nil
		case ActionClear:
			s.orch.Reset(ctx)
			return false, s.report(ctx)
		case ActionQuit:
			return true, nil
		}
	}
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) fail(ctx context.Context, err error) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error())
}
