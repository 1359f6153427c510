package snippet

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
)

// Field identifies one of the three editable inputs of a snippet form.
type Field int

const (
	FieldContent Field = iota
	FieldMarkdown
	FieldPrivate
)

func (f Field) String() string {
	switch f {
	case FieldContent:
		return "content"
	case FieldMarkdown:
		return "is_markdown"
	case FieldPrivate:
		return "private"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Fields is the value of a snippet form. It is compared with == and copied by
// assignment, so saved and live state can never alias each other.
type Fields struct {
	Content    string
	IsMarkdown bool
	IsPrivate  bool
}

// Phase tracks the save control of a snippet.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInFlight:
		return "in-flight"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Save control labels.
const (
	LabelSave       = "Save"
	LabelSaving     = "Saving..."
	LabelSaveFailed = "Re-save (saving failed!)"
)

var (
	ErrSubmitInFlight  = errors.New("snippet: submit already in flight")
	ErrStaleSubmission = errors.New("snippet: submission is not the pending one")
	ErrUnknownField    = errors.New("snippet: unknown field")
	ErrFieldType       = errors.New("snippet: wrong value type for field")
)

// Descriptor describes one discovered snippet form.
type Descriptor struct {
	Label    string     // display label, usually the week
	Endpoint string     // absolute submission URL (the form action)
	Initial  Fields     // values rendered into the form at page load
	Extra    url.Values // hidden inputs sent with every submission
}

// Renderer turns raw markdown text into sanitized HTML.
type Renderer interface {
	Render(text string) string
}

// Sink receives every presentation a snippet renders.
type Sink interface {
	Apply(p Presentation)
}

// Submitter sends a serialized form to its endpoint.
type Submitter interface {
	SubmitSnippet(ctx context.Context, endpoint string, form url.Values) error
}

// Presentation is the UI projection of a snippet's state.
type Presentation struct {
	Dirty       bool
	SaveEnabled bool
	UndoEnabled bool
	Empty       bool
	Markdown    bool
	Private     bool
	PreviewHTML string
	SaveLabel   string
	Phase       Phase
}

// Submission is a snapshot of the live fields taken when a submit starts.
type Submission struct {
	ID       string
	Endpoint string
	Fields   Fields
	Extra    url.Values
}

// Form serializes the submission the way the snippet server expects it.
func (s Submission) Form() url.Values {
	form := make(url.Values, len(s.Extra)+3)
	for k, vs := range s.Extra {
		form[k] = append([]string(nil), vs...)
	}
	form.Set("snippet", s.Fields.Content)
	form.Set("is_markdown", formBool(s.Fields.IsMarkdown))
	form.Set("private", formBool(s.Fields.IsPrivate))
	return form
}

func formBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// Option configures a Snippet.
type Option func(*Snippet)

// WithRenderer sets the markdown preview renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Snippet) { s.renderer = r }
}

// WithSink sets the presentation sink.
func WithSink(sink Sink) Option {
	return func(s *Snippet) { s.sink = sink }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Snippet) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Snippet owns the saved and live state of one form. It is not safe for
// concurrent use; all calls belong on the UI event loop.
type Snippet struct {
	label    string
	endpoint string
	extra    url.Values

	saved Fields
	live  Fields

	phase   Phase
	pending *Submission

	renderer Renderer
	sink     Sink
	logger   *slog.Logger
}

// New binds a snippet to a form descriptor and performs the initial render.
func New(desc Descriptor, opts ...Option) *Snippet {
	s := &Snippet{
		label:    desc.Label,
		endpoint: desc.Endpoint,
		extra:    cloneValues(desc.Extra),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.live = desc.Initial
	s.save(desc.Initial)
	return s
}

func (s *Snippet) Label() string    { return s.label }
func (s *Snippet) Endpoint() string { return s.endpoint }
func (s *Snippet) Saved() Fields    { return s.saved }
func (s *Snippet) Live() Fields     { return s.live }
func (s *Snippet) Phase() Phase     { return s.phase }

// Pending reports whether a submission is in flight.
func (s *Snippet) Pending() bool { return s.pending != nil }

// IsDirty reports whether any live field differs from the saved one.
func (s *Snippet) IsDirty() bool {
	return s.live != s.saved
}

// UpdateField applies one input change to the live state.
func (s *Snippet) UpdateField(field Field, value any) error {
	next := s.live
	switch field {
	case FieldContent:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants string, got %T", ErrFieldType, field, value)
		}
		next.Content = v
	case FieldMarkdown, FieldPrivate:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrFieldType, field, value)
		}
		if field == FieldMarkdown {
			next.IsMarkdown = v
		} else {
			next.IsPrivate = v
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	s.live = next
	if s.phase == PhaseFailed && !s.IsDirty() {
		s.phase = PhaseIdle
	}
	s.Render()
	return nil
}

func (s *Snippet) SetContent(text string) { _ = s.UpdateField(FieldContent, text) }
func (s *Snippet) SetMarkdown(on bool)    { _ = s.UpdateField(FieldMarkdown, on) }
func (s *Snippet) SetPrivate(on bool)     { _ = s.UpdateField(FieldPrivate, on) }

// Undo restores the live state to the last saved state.
func (s *Snippet) Undo() {
	s.live = s.saved
	if s.phase == PhaseFailed {
		s.phase = PhaseIdle
	}
	s.logger.Debug("snippet undo", "label", s.label)
	s.Render()
}

// save is the only transition that advances the last known good state.
func (s *Snippet) save(confirmed Fields) {
	s.saved = confirmed
	s.phase = PhaseIdle
	s.Render()
}

// BeginSubmit snapshots the live state for sending. Only one submission may
// be pending at a time.
func (s *Snippet) BeginSubmit() (Submission, error) {
	if s.pending != nil {
		return Submission{}, ErrSubmitInFlight
	}
	sub := Submission{
		ID:       uuid.NewString(),
		Endpoint: s.endpoint,
		Fields:   s.live,
		Extra:    cloneValues(s.extra),
	}
	s.pending = &sub
	s.phase = PhaseInFlight
	s.logger.Debug("snippet submit started", "label", s.label, "submission", sub.ID)
	s.Render()
	return sub, nil
}

// FinishSubmit records the outcome of the pending submission. On success the
// submitted fields become the saved state. On failure nothing but the phase
// changes, so the form stays dirty and can be retried or undone.
func (s *Snippet) FinishSubmit(sub Submission, err error) error {
	if s.pending == nil || s.pending.ID != sub.ID {
		return ErrStaleSubmission
	}
	s.pending = nil
	if err != nil {
		s.phase = PhaseFailed
		s.logger.Warn("snippet submit failed", "label", s.label, "submission", sub.ID, "error", err)
		s.Render()
		return nil
	}
	s.logger.Info("snippet saved", "label", s.label, "submission", sub.ID)
	s.save(sub.Fields)
	return nil
}

// Submit runs a whole submission on the calling goroutine. The transport
// error is returned after it has been folded into the snippet state.
func (s *Snippet) Submit(ctx context.Context, submitter Submitter) error {
	sub, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	sendErr := submitter.SubmitSnippet(ctx, sub.Endpoint, sub.Form())
	if err := s.FinishSubmit(sub, sendErr); err != nil {
		return err
	}
	return sendErr
}

// Render projects the current state and hands it to the sink.
func (s *Snippet) Render() Presentation {
	p := s.present()
	if s.sink != nil {
		s.sink.Apply(p)
	}
	return p
}

func (s *Snippet) present() Presentation {
	dirty := s.IsDirty()
	p := Presentation{
		Dirty:       dirty,
		SaveEnabled: dirty && s.phase != PhaseInFlight,
		UndoEnabled: dirty,
		Empty:       s.live.Content == "",
		Markdown:    s.live.IsMarkdown,
		Private:     s.live.IsPrivate,
		Phase:       s.phase,
	}
	switch s.phase {
	case PhaseInFlight:
		p.SaveLabel = LabelSaving
	case PhaseFailed:
		p.SaveLabel = LabelSaveFailed
	default:
		p.SaveLabel = LabelSave
	}
	if s.live.IsMarkdown && s.renderer != nil {
		p.PreviewHTML = s.renderer.Render(s.live.Content)
	} else {
		p.PreviewHTML = html.EscapeString(s.live.Content)
	}
	return p
}

func cloneValues(v url.Values) url.Values {
	if len(v) == 0 {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
