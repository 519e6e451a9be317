package websummary

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-websummary/internal/fileutil"
	"github.com/alnah/go-websummary/internal/pipeline"
	"github.com/alnah/go-websummary/internal/process"
)

// defaultVerifyTimeout bounds one page load when the context has no deadline.
const defaultVerifyTimeout = 30 * time.Second

// VerifyReport describes how a summary behaved in a sandboxed browser.
type VerifyReport struct {
	// BlockedRequests lists every non-local URL the page tried to fetch.
	BlockedRequests []string
	// Exceptions lists uncaught script errors.
	Exceptions []string
	// DataDefined reports whether the data variable exists after load.
	DataDefined bool
}

// OK reports whether the page loaded offline, without script errors, and
// defined its data.
func (r *VerifyReport) OK() bool {
	return len(r.BlockedRequests) == 0 && len(r.Exceptions) == 0 && r.DataDefined
}

// Problems describes each failed check, one line per finding.
func (r *VerifyReport) Problems() []string {
	var out []string
	for _, u := range r.BlockedRequests {
		out = append(out, "external request blocked: "+u)
	}
	for _, e := range r.Exceptions {
		out = append(out, "script error: "+e)
	}
	if !r.DataDefined {
		out = append(out, "data variable is not defined after load")
	}
	return out
}

// documentLoader abstracts the browser so Verifier can be tested without one.
type documentLoader interface {
	Load(ctx context.Context, fileURL, dataVariable string) (*VerifyReport, error)
	Close() error
}

// Verifier loads assembled summaries in headless Chrome with the network
// cut off. Create with NewVerifier and Close when done.
type Verifier struct {
	loader       documentLoader
	timeout      time.Duration
	dataVariable string
	log          *zap.Logger
}

// VerifyOption configures a Verifier.
type VerifyOption func(*Verifier)

// WithVerifyTimeout bounds each page load.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithVerifyTimeout(d time.Duration) VerifyOption {
	if d <= 0 {
		panic("websummary: WithVerifyTimeout duration must be positive")
	}
	return func(v *Verifier) {
		v.timeout = d
	}
}

// WithVerifyDataVariable sets the variable checked after load (default "data").
func WithVerifyDataVariable(name string) VerifyOption {
	return func(v *Verifier) {
		v.dataVariable = name
	}
}

// WithVerifyLogger sets the logger. Nil keeps the no-op default.
func WithVerifyLogger(l *zap.Logger) VerifyOption {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// NewVerifier creates a Verifier. The browser starts on first use.
func NewVerifier(opts ...VerifyOption) (*Verifier, error) {
	v := &Verifier{
		timeout:      defaultVerifyTimeout,
		dataVariable: pipeline.DefaultVariable,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := pipeline.ValidateVariableName(v.dataVariable); err != nil {
		return nil, err
	}
	if v.loader == nil {
		v.loader = &rodLoader{log: v.log}
	}
	return v, nil
}

// Verify writes html to a temporary file and loads it from disk.
func (v *Verifier) Verify(ctx context.Context, html []byte) (*VerifyReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(string(html), "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationSetup, err)
	}
	defer cleanup()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationSetup, err)
	}
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	report, err := v.loader.Load(ctx, fileURL, v.dataVariable)
	if err != nil {
		return nil, err
	}
	v.log.Debug("verified summary",
		zap.Int("blocked", len(report.BlockedRequests)),
		zap.Int("exceptions", len(report.Exceptions)),
		zap.Bool("dataDefined", report.DataDefined))
	return report, nil
}

// Close stops the browser, if one was started.
func (v *Verifier) Close() error {
	if v.loader != nil {
		return v.loader.Close()
	}
	return nil
}

// rodLoader implements documentLoader using go-rod.
// Rod downloads Chromium on first run if none is found.
type rodLoader struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	log      *zap.Logger
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodLoader) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// Containers and CI runners usually cannot use the Chrome sandbox.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher, r.browser = l, browser
	r.log.Debug("browser started", zap.Int("pid", l.PID()))
	return nil
}

// Load opens fileURL with every non-local request failed and recorded.
func (r *rodLoader) Load(ctx context.Context, fileURL, dataVariable string) (*VerifyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()
	page = page.Context(ctx)

	var (
		mu         sync.Mutex
		blocked    []string
		exceptions []string
	)

	router := page.HijackRequests()
	if err := router.Add("*", "", func(h *rod.Hijack) {
		u := h.Request.URL()
		if isLocalScheme(u.Scheme) {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		mu.Lock()
		blocked = append(blocked, u.String())
		mu.Unlock()
		h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	go router.Run()
	defer func() { _ = router.Stop() }()

	if err := (proto.RuntimeEnable{}).Call(page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	go page.EachEvent(func(e *proto.RuntimeExceptionThrown) {
		msg := e.ExceptionDetails.Text
		if ex := e.ExceptionDetails.Exception; ex != nil && ex.Description != "" {
			msg = ex.Description
		}
		mu.Lock()
		exceptions = append(exceptions, msg)
		mu.Unlock()
	})()

	if err := page.Navigate(fileURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	obj, err := page.Eval(`(name) => typeof window[name] !== "undefined"`, dataVariable)
	if err != nil {
		return nil, fmt.Errorf("%w: evaluating data check: %v", ErrPageLoad, err)
	}

	mu.Lock()
	defer mu.Unlock()
	sort.Strings(blocked)
	return &VerifyReport{
		BlockedRequests: blocked,
		Exceptions:      exceptions,
		DataDefined:     obj.Value.Bool(),
	}, nil
}

// Close kills the browser and its process group.
func (r *rodLoader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.browser, r.launcher = nil, nil
	return err
}

// isLocalScheme reports whether a URL scheme never reaches the network.
func isLocalScheme(scheme string) bool {
	switch scheme {
	case "file", "data", "blob", "about":
		return true
	}
	return false
}
