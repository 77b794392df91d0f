// Package verify gates generated code before the surrounding pattern library
// promotes it from candidate to proven. Verification hands code plus a
// synthesized test to a per-language sandbox and reports compiled/not-compiled;
// it is a blocking, time-bounded call that never hangs the caller and never
// retries (retry policy belongs to the orchestrator).
package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"snipforge/internal/transpile"
)

// Report is the outcome of one verification. Sandboxed is false when no
// sandbox was available for the language, the degraded contract.
type Report struct {
	ID        string
	Language  transpile.Language
	Compiled  bool
	Output    string
	Sandboxed bool
	Duration  time.Duration
}

// Sandbox runs code plus its test in isolation and returns the run output.
// A non-nil error means the code did not compile or an assertion failed.
type Sandbox interface {
	Run(ctx context.Context, code, testSource string) (string, error)
}

// Verifier dispatches verification to per-language sandboxes.
type Verifier struct {
	sandboxes map[transpile.Language]Sandbox
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithTimeout bounds each sandbox run.
func WithTimeout(d time.Duration) Option {
	return func(v *Verifier) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// WithSandbox registers (or replaces) the sandbox for a language.
func WithSandbox(lang transpile.Language, sb Sandbox) Option {
	return func(v *Verifier) {
		v.sandboxes[lang] = sb
	}
}

// WithLogger attaches a logger; the default is a nop.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVerifier builds a Verifier with the in-process Go sandbox registered.
// Other languages degrade to not-sandboxed until a sandbox is wired in.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		sandboxes: map[transpile.Language]Sandbox{
			transpile.Go: NewGoSandbox(),
		},
		timeout: 30 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs code and testSource in the language's sandbox. On timeout or
// sandbox crash the report is not-compiled; the call returns within the
// configured bound regardless of sandbox behavior.
func (v *Verifier) Verify(ctx context.Context, code, testSource string, language transpile.Language) Report {
	report := Report{
		ID:       uuid.NewString(),
		Language: language,
	}
	start := time.Now()

	sandbox, ok := v.sandboxes[language]
	if !ok {
		report.Output = fmt.Sprintf("no sandbox available for %s", language)
		report.Duration = time.Since(start)
		return report
	}
	report.Sandboxed = true

	runCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	type runResult struct {
		output string
		err    error
	}
	resultCh := make(chan runResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- runResult{err: fmt.Errorf("sandbox panicked: %v", r)}
			}
		}()
		output, err := sandbox.Run(runCtx, code, testSource)
		resultCh <- runResult{output: output, err: err}
	}()

	select {
	case res := <-resultCh:
		report.Duration = time.Since(start)
		if res.err != nil {
			report.Output = res.err.Error()
			v.logger.Debug("verification failed",
				zap.String("id", report.ID),
				zap.String("language", string(language)),
				zap.Error(res.err))
			return report
		}
		report.Compiled = true
		report.Output = res.output
		v.logger.Debug("verification passed",
			zap.String("id", report.ID),
			zap.String("language", string(language)),
			zap.Duration("duration", report.Duration))
		return report
	case <-runCtx.Done():
		report.Duration = time.Since(start)
		report.Output = fmt.Sprintf("verification timed out after %s: %v", v.timeout, runCtx.Err())
		return report
	}
}
