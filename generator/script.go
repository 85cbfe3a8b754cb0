package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// ScriptOptions controls how a statement list is rendered to SQL text.
type ScriptOptions struct {
	// Header prepends a comment block with the generation time and the
	// fingerprint of the body.
	Header bool
	// Source is recorded in the header when set, e.g. the schema file name.
	Source string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Script joins statements into one SQL text, each terminated by ";" on its
// own line.
func Script(stmts []string, opts ScriptOptions) string {
	body := Body(stmts)
	if !opts.Header {
		return body
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var b strings.Builder
	b.WriteString("-- Generated by schemato\n")
	b.WriteString("-- Generated at: " + now().UTC().Format(time.RFC3339) + "\n")
	if opts.Source != "" {
		b.WriteString("-- Source: " + opts.Source + "\n")
	}
	b.WriteString("-- Fingerprint: " + Fingerprint(stmts) + "\n")
	b.WriteString("-- Statements: " + fmt.Sprint(len(stmts)) + "\n\n")
	b.WriteString(body)
	return b.String()
}

// Body renders only the statements, without any header.
func Body(stmts []string) string {
	var b strings.Builder
	for _, stmt := range stmts {
		b.WriteString(stmt)
		b.WriteString(";\n")
	}
	return b.String()
}

// Fingerprint is the xxh3 hash of the rendered statements. Two scripts with
// the same statements always share a fingerprint, regardless of header time.
func Fingerprint(stmts []string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(Body(stmts)))
}
