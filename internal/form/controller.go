package form

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/Altinity/site-sync/internal/publish"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// State is the phase of the form between user actions.
type State int

const (
	Idle State = iota
	Busy
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrBusy  = errors.New("a publish run is already in progress")
	ErrNoURL = errors.New("there is no website URL yet")
)

// Publisher runs one publish of a local folder and returns the website URL.
type Publisher interface {
	SyncAndPublish(ctx context.Context, localFolder string) (string, error)
}

type Clipboard interface {
	WriteAll(text string) error
}

// Result is the outcome of a Job.
type Result struct {
	URL string
	Err error
}

// Job performs a publish run. It blocks and must not be called from the UI
// goroutine.
type Job func() Result

// Controller holds the form state. Only Browse, Begin and Complete change it
// and they must be called from the UI goroutine; the busy flag additionally
// guards against overlapping runs.
type Controller struct {
	publisher Publisher
	clipboard Clipboard
	openURL   func(url string) error

	busy atomic.Bool

	folder string
	url    string
	state  State
	err    error
}

type ControllerOption func(*Controller)

func WithClipboard(c Clipboard) ControllerOption {
	return func(ctrl *Controller) {
		ctrl.clipboard = c
	}
}

// WithBrowser replaces the function used to open the website URL.
func WithBrowser(open func(url string) error) ControllerOption {
	return func(ctrl *Controller) {
		ctrl.openURL = open
	}
}

// WithFolder pre-selects a folder. Invalid folders are ignored with a warning.
func WithFolder(folder string) ControllerOption {
	return func(ctrl *Controller) {
		if folder == "" {
			return
		}

		if err := ctrl.Browse(folder); err != nil {
			log.Warn().
				Err(err).
				Str("folder", folder).
				Msg("Ignoring configured site folder")
		}
	}
}

func NewController(p Publisher, opts ...ControllerOption) *Controller {
	c := &Controller{
		publisher: p,
		clipboard: systemClipboard{},
		openURL:   browser.OpenURL,
		state:     Idle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) Folder() string { return c.folder }
func (c *Controller) URL() string    { return c.url }
func (c *Controller) State() State   { return c.state }

// Err is the error of the last failed run.
func (c *Controller) Err() error { return c.err }

// Busy reports whether a run is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Browse selects the local folder to publish. "~" is expanded and the path is
// made absolute.
func (c *Controller) Browse(path string) error {
	if c.Busy() {
		return ErrBusy
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return &publish.ValidationError{Err: publish.ErrNoFolder}
	}

	expanded, err := expandHome(path)
	if err != nil {
		return &publish.ValidationError{Folder: path, Err: err}
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return &publish.ValidationError{Folder: expanded, Err: err}
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return &publish.ValidationError{Folder: abs, Err: err}
	}

	if !fi.IsDir() {
		return &publish.ValidationError{Folder: abs, Err: fmt.Errorf("not a directory")}
	}

	c.folder = abs

	log.Debug().
		Str("folder", abs).
		Msg("Folder selected")

	return nil
}

// ClearFolder drops the selected folder, so the next Begin fails validation.
func (c *Controller) ClearFolder() {
	if c.Busy() {
		return
	}

	c.folder = ""
}

// Begin starts a run for the selected folder and returns the job to execute.
// Complete must be called with the job's result.
func (c *Controller) Begin(ctx context.Context) (Job, error) {
	if c.folder == "" {
		return nil, &publish.ValidationError{Err: publish.ErrNoFolder}
	}

	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	c.state = Busy
	c.err = nil

	folder := c.folder

	return func() Result {
		url, err := c.publisher.SyncAndPublish(ctx, folder)
		return Result{URL: url, Err: err}
	}, nil
}

// Complete records the result of the running job. The URL is only replaced on
// success.
func (c *Controller) Complete(r Result) {
	if r.Err != nil {
		c.state = Failed
		c.err = r.Err
	} else {
		c.state = Done
		c.url = r.URL
		c.err = nil
	}

	c.busy.Store(false)
}

// Copy puts the website URL on the clipboard.
func (c *Controller) Copy() (string, error) {
	if c.url == "" {
		return "", ErrNoURL
	}

	if err := c.clipboard.WriteAll(c.url); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	return c.url, nil
}

// Open shows the website in the default browser.
func (c *Controller) Open() error {
	if c.url == "" {
		return ErrNoURL
	}

	if err := c.openURL(c.url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
