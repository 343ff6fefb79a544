// Package project describes what a single projinit invocation is asked to
// build: where the project goes, which backend variant it uses, and which
// authentication mode (if any) is layered on top.
//
// A Spec is constructed once from the command line and then only read by
// the overlay composer and the env profile synthesizer.
package project

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidVariant indicates an unknown backend variant name.
	ErrInvalidVariant = errors.New("invalid backend variant")

	// ErrInvalidAuthMode indicates an unknown authentication mode name.
	ErrInvalidAuthMode = errors.New("invalid auth mode")
)

// Variant selects the server technology of the generated API.
type Variant string

const (
	// VariantFastAPI is the default backend variant.
	VariantFastAPI Variant = "fastapi"

	// VariantNestJS is the alternative backend variant.
	VariantNestJS Variant = "nestjs"
)

// DefaultVariant is used when no variant flag is given.
const DefaultVariant = VariantFastAPI

// Variants lists every supported backend variant in display order.
var Variants = []Variant{VariantFastAPI, VariantNestJS}

// ParseVariant converts a user supplied name into a Variant.
// An empty name yields DefaultVariant.
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case "":
		return DefaultVariant, nil
	case VariantFastAPI, VariantNestJS:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of: fastapi, nestjs)", ErrInvalidVariant, name)
	}
}

func (v Variant) String() string {
	return string(v)
}

// AuthMode selects the authentication strategy. The zero value means no
// authentication scaffolding is added.
type AuthMode string

const (
	// AuthNone means no auth overlays and no auth env sections.
	AuthNone AuthMode = ""

	// AuthToken adds a shared-secret bearer token scheme.
	AuthToken AuthMode = "token"

	// AuthSupabase delegates authentication to a hosted Supabase project.
	AuthSupabase AuthMode = "supabase"
)

// AuthModes lists the selectable (non-empty) authentication modes.
var AuthModes = []AuthMode{AuthToken, AuthSupabase}

// ParseAuthMode converts a user supplied name into an AuthMode.
// Empty, "none" and "off" all select AuthNone.
func ParseAuthMode(name string) (AuthMode, error) {
	switch m := strings.ToLower(strings.TrimSpace(name)); m {
	case "", "none", "off":
		return AuthNone, nil
	case string(AuthToken), string(AuthSupabase):
		return AuthMode(m), nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of: token, supabase)", ErrInvalidAuthMode, name)
	}
}

// Enabled reports whether an authentication mode is selected.
func (m AuthMode) Enabled() bool {
	return m != AuthNone
}

func (m AuthMode) String() string {
	if m == AuthNone {
		return "none"
	}
	return string(m)
}

// MarshalText renders AuthNone as "none".
func (m AuthMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts every name ParseAuthMode accepts.
func (m *AuthMode) UnmarshalText(text []byte) error {
	parsed, err := ParseAuthMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Spec is the immutable description of one project initialization.
type Spec struct {
	// Destination is the absolute path of the project root.
	Destination string

	// Variant is the backend variant.
	Variant Variant

	// Auth is the authentication mode (AuthNone when absent).
	Auth AuthMode

	// Force skips the non-empty destination confirmation.
	Force bool
}

// Validate checks that the selectors hold known values.
func (s Spec) Validate() error {
	if s.Destination == "" {
		return errors.New("destination must not be empty")
	}
	switch s.Variant {
	case VariantFastAPI, VariantNestJS:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVariant, s.Variant)
	}
	switch s.Auth {
	case AuthNone, AuthToken, AuthSupabase:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAuthMode, s.Auth)
	}
	return nil
}
