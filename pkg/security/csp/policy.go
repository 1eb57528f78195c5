// Package csp builds Content-Security-Policy header values.
package csp

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the output order so header values are stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// CSPBuilder provides a fluent interface for constructing Content-Security-Policy headers.
//
//	policy := NewCSPBuilder().
//	    DefaultSrc("'self'").
//	    StyleSrc("'self'", "'unsafe-inline'").
//	    Build()
//	// "default-src 'self'; style-src 'self' 'unsafe-inline'"
//
// CSPBuilder is not safe for concurrent use. Build the header value once and
// share the string.
type CSPBuilder struct {
	directives map[string][]string
	reportOnly bool
}

// NewCSPBuilder creates an empty builder.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{directives: make(map[string][]string)}
}

func (b *CSPBuilder) set(directive string, sources []string) *CSPBuilder {
	b.directives[directive] = sources
	return b
}

// DefaultSrc sets default-src, the fallback for every fetch directive.
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder {
	return b.set("default-src", sources)
}

// ScriptSrc sets script-src.
func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder {
	return b.set("script-src", sources)
}

// StyleSrc sets style-src.
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder {
	return b.set("style-src", sources)
}

// ImgSrc sets img-src.
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder {
	return b.set("img-src", sources)
}

// FontSrc sets font-src.
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder {
	return b.set("font-src", sources)
}

// ConnectSrc sets connect-src.
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder {
	return b.set("connect-src", sources)
}

// FrameAncestors sets frame-ancestors ("'none'" forbids framing entirely).
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets form-action.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder {
	return b.set("form-action", sources)
}

// BaseUri sets base-uri.
func (b *CSPBuilder) BaseUri(sources ...string) *CSPBuilder {
	return b.set("base-uri", sources)
}

// ObjectSrc sets object-src.
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder {
	return b.set("object-src", sources)
}

// ReportOnly switches the header to report-only mode.
func (b *CSPBuilder) ReportOnly(enabled bool) *CSPBuilder {
	b.reportOnly = enabled
	return b
}

// Build renders the policy. Directives with no sources are omitted, and an
// empty builder yields "".
func (b *CSPBuilder) Build() string {
	var parts []string
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", directive, strings.Join(sources, " ")))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy belongs in.
func (b *CSPBuilder) HeaderName() string {
	if b.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// Hash returns the CSP source expression ('sha256-...') for an inline script
// or event handler body.
func Hash(inline string) string {
	sum := sha256.Sum256([]byte(inline))
	return "'sha256-" + base64.StdEncoding.EncodeToString(sum[:]) + "'"
}

// StrictPolicy is for JSON endpoints: nothing may load, nothing may frame.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseUri("'none'").
		FormAction("'none'")
}

// PagePolicy is for the server-rendered news page. Article images come from
// arbitrary publisher hosts, styles are inline, and the only script allowed
// is an inline event-handler whose hash is listed in handlerHashes (see Hash).
func PagePolicy(handlerHashes ...string) *CSPBuilder {
	script := []string{"'none'"}
	if len(handlerHashes) > 0 {
		script = append([]string{"'unsafe-hashes'"}, handlerHashes...)
	}
	return NewCSPBuilder().
		DefaultSrc("'none'").
		ScriptSrc(script...).
		StyleSrc("'unsafe-inline'").
		ImgSrc("https:", "http:", "data:").
		FrameAncestors("'none'").
		FormAction("'self'").
		BaseUri("'none'").
		ObjectSrc("'none'")
}
