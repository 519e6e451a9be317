package main

import (
	"context"
	"io"
	"os"
	"time"

	websummary "github.com/alnah/go-websummary"
)

// Verifier loads an assembled document offline and reports problems.
type Verifier interface {
	Verify(ctx context.Context, html []byte) (*websummary.VerifyReport, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Verifier = (*websummary.Verifier)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewVerifier func(opts ...websummary.VerifyOption) (Verifier, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewVerifier: func(opts ...websummary.VerifyOption) (Verifier, error) {
			return websummary.NewVerifier(opts...)
		},
	}
}
