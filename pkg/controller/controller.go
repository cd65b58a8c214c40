package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/helmcode/configlint-ai/pkg/model"
)

const (
	// CopyAckDuration is how long the copy acknowledgement stays visible.
	CopyAckDuration = 2 * time.Second

	AdvisoryMessage = "The model flagged an issue but did not provide specific details."
)

var ErrNothingToCopy = errors.New("no corrected code to copy")

// Analyzer is the analysis boundary the controller depends on.
type Analyzer interface {
	Analyze(ctx context.Context, source string, category model.Category) (*model.AnalysisResult, error)
}

// Clipboard receives corrected code on Copy.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function such as clipboard.WriteAll.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// Snapshot is an immutable copy of the controller state.
type Snapshot struct {
	Source   string
	Category model.Category
	Phase    Phase
	Tab      Tab
	Copied   bool
}

// Loading reports whether an analysis call is in flight.
func (s Snapshot) Loading() bool {
	_, ok := s.Phase.(Loading)
	return ok
}

// CanAnalyze reports whether the trigger should be enabled.
func (s Snapshot) CanAnalyze() bool {
	return !s.Loading() && strings.TrimSpace(s.Source) != ""
}

type Option func(*Controller)

func WithClock(c clock.WithDelayedExecution) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

func WithClipboard(cb Clipboard) Option {
	return func(ctl *Controller) { ctl.clipboard = cb }
}

func WithLogger(l *zap.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

func WithSource(source string) Option {
	return func(ctl *Controller) { ctl.source = source }
}

func WithCategory(cat model.Category) Option {
	return func(ctl *Controller) { ctl.category = cat }
}

// Controller owns the state of one interactive session: the snippet, the
// selected category and the request lifecycle. At most one analysis call
// is in flight per controller.
type Controller struct {
	ctx       context.Context
	analyzer  Analyzer
	clock     clock.WithDelayedExecution
	clipboard Clipboard
	logger    *zap.Logger

	mu        sync.Mutex
	source    string
	category  model.Category
	phase     Phase
	tab       Tab
	copied    bool
	copyGen   uint64
	copyTimer clock.Timer

	updates  chan struct{}
	inflight sync.WaitGroup
}

// New returns a controller in the Idle phase. ctx bounds every analysis
// call the controller starts.
func New(ctx context.Context, a Analyzer, opts ...Option) *Controller {
	c := &Controller{
		ctx:      ctx,
		analyzer: a,
		clock:    clock.RealClock{},
		logger:   zap.NewNop(),
		category: model.DefaultCategory,
		phase:    Idle{},
		tab:      TabErrors,
		updates:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Updates signals every state change. Signals coalesce; read Snapshot
// after each one.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Source:   c.source,
		Category: c.category,
		Phase:    c.phase,
		Tab:      c.tab,
		Copied:   c.copied,
	}
}

func (c *Controller) SetSource(source string) {
	c.mu.Lock()
	c.source = source
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) SetCategory(cat model.Category) {
	c.mu.Lock()
	c.category = cat
	c.mu.Unlock()
	c.notify()
}

// Analyze starts one analysis of the current snippet. It is a no-op that
// returns false when the snippet is blank or a call is already in flight.
// Otherwise the controller is Loading when Analyze returns.
func (c *Controller) Analyze() bool {
	c.mu.Lock()
	if strings.TrimSpace(c.source) == "" {
		c.mu.Unlock()
		return false
	}
	if _, loading := c.phase.(Loading); loading {
		c.mu.Unlock()
		return false
	}
	c.phase = Loading{}
	c.tab = TabErrors
	timer := c.clearCopyLocked()
	source, category := c.source, c.category
	c.inflight.Add(1)
	c.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	c.logger.Debug("analysis started", zap.String("category", string(category)), zap.Int("bytes", len(source)))
	c.notify()

	go c.run(source, category)
	return true
}

func (c *Controller) run(source string, category model.Category) {
	defer c.inflight.Done()

	var next Phase
	func() {
		defer func() {
			if r := recover(); r != nil {
				next = Failed{Message: ErrorMessage(fmt.Errorf("panic: %v", r))}
			}
		}()
		result, err := c.analyzer.Analyze(c.ctx, source, category)
		switch {
		case err != nil:
			next = Failed{Message: ErrorMessage(err)}
		case result == nil:
			next = Failed{Message: ErrorMessage(errors.New("empty analysis result"))}
		default:
			s := Succeeded{Result: result}
			if result.MissingDetails() {
				s.Advisory = AdvisoryMessage
			}
			next = s
		}
	}()

	c.mu.Lock()
	c.phase = next
	c.mu.Unlock()

	if f, ok := next.(Failed); ok {
		c.logger.Debug("analysis settled", zap.String("phase", next.Name()), zap.String("message", f.Message))
	} else {
		c.logger.Debug("analysis settled", zap.String("phase", next.Name()))
	}
	c.notify()
}

// SelectTab switches the result view. It only applies while the tabbed
// view is shown.
func (c *Controller) SelectTab(t Tab) bool {
	if t < TabErrors || t > TabBestPractices {
		return false
	}
	c.mu.Lock()
	s, ok := c.phase.(Succeeded)
	if !ok || !s.ShowTabs() {
		c.mu.Unlock()
		return false
	}
	c.tab = t
	c.mu.Unlock()
	c.notify()
	return true
}

// Copy places the corrected code on the clipboard and raises the copy
// acknowledgement for CopyAckDuration. Copying again restarts the timer.
func (c *Controller) Copy() error {
	c.mu.Lock()
	s, ok := c.phase.(Succeeded)
	if !ok || !s.ShowTabs() {
		c.mu.Unlock()
		return ErrNothingToCopy
	}
	text := s.Result.CorrectedCode
	c.mu.Unlock()

	if c.clipboard != nil {
		if err := c.clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}

	c.mu.Lock()
	c.copyGen++
	gen := c.copyGen
	prev := c.copyTimer
	c.copyTimer = nil
	c.copied = true
	c.mu.Unlock()

	// clock calls stay outside mu: fake clocks run callbacks under their own lock
	if prev != nil {
		prev.Stop()
	}
	timer := c.clock.AfterFunc(CopyAckDuration, func() { c.revertCopy(gen) })

	c.mu.Lock()
	if c.copyGen == gen {
		c.copyTimer = timer
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *Controller) revertCopy(gen uint64) {
	c.mu.Lock()
	if c.copyGen != gen || !c.copied {
		c.mu.Unlock()
		return
	}
	c.copied = false
	c.copyTimer = nil
	c.mu.Unlock()
	c.notify()
}

// clearCopyLocked drops the acknowledgement and returns the timer to stop.
func (c *Controller) clearCopyLocked() clock.Timer {
	c.copyGen++
	c.copied = false
	t := c.copyTimer
	c.copyTimer = nil
	return t
}

// Wait blocks until the in-flight analysis, if any, has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close stops the copy timer and waits for the in-flight call.
func (c *Controller) Close() {
	c.mu.Lock()
	timer := c.clearCopyLocked()
	c.mu.Unlock()
	if timer != nil {
		timer.Stop()
	}
	c.Wait()
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// ErrorMessage is the user-facing text for a failed analysis.
func ErrorMessage(err error) string {
	return fmt.Sprintf("An error occurred: %s. Please try again.", strings.TrimSuffix(err.Error(), "."))
}
