package image

import (
	"fmt"
	"time"
)

// Support level advertised by an image.
type SupportLevel string

const (
	SupportUnset       SupportLevel = ""
	SupportL2          SupportLevel = "l2"
	SupportL3          SupportLevel = "l3"
	SupportACC         SupportLevel = "acc"
	SupportTechPreview SupportLevel = "techpreview"
	SupportUnsupported SupportLevel = "unsupported"
)

func (l SupportLevel) Valid() bool {
	switch l {
	case SupportUnset, SupportL2, SupportL3, SupportACC, SupportTechPreview, SupportUnsupported:
		return true
	}
	return false
}

func (l *SupportLevel) UnmarshalText(text []byte) error {
	v := SupportLevel(text)
	if !v.Valid() {
		return fmt.Errorf("%w: support level %q", ErrInvalidDefinition, text)
	}
	*l = v
	return nil
}

// Primary build recipe format of an image.
type BuildType int

const (
	BuildDocker BuildType = iota // Dockerfile.
	BuildKiwi                    // KIWI image description.
)

func (t BuildType) String() string {
	switch t {
	case BuildDocker:
		return "docker"
	case BuildKiwi:
		return "kiwi"
	default:
		return fmt.Sprintf("BuildType(%d)", int(t))
	}
}

func (t BuildType) MarshalText() ([]byte, error) {
	switch t {
	case BuildDocker, BuildKiwi:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("%w: build type %d", ErrInvalidDefinition, int(t))
	}
}

func (t *BuildType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "docker":
		*t = BuildDocker
	case "kiwi":
		*t = BuildKiwi
	default:
		return fmt.Errorf("%w: build type %q", ErrInvalidDefinition, text)
	}
	return nil
}

// Family an image belongs to.
//
// Language stacks are tagged by their own name. OS containers are tagged as
// "bci-<name>" and default to the OS container version.
type Stack int

const (
	StackLanguage Stack = iota
	StackOS
)

func (s Stack) String() string {
	switch s {
	case StackLanguage:
		return "language"
	case StackOS:
		return "os"
	default:
		return fmt.Sprintf("Stack(%d)", int(s))
	}
}

func (s Stack) MarshalText() ([]byte, error) {
	switch s {
	case StackLanguage, StackOS:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: stack %d", ErrInvalidDefinition, int(s))
	}
}

func (s *Stack) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "language":
		*s = StackLanguage
	case "os":
		*s = StackOS
	default:
		return fmt.Errorf("%w: stack %q", ErrInvalidDefinition, text)
	}
	return nil
}

// A calendar date. The zero value means "no date".
type Date struct {
	t time.Time
}

// Returns the date for the given day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Returns the calendar date of t, or the zero date if t is zero.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, string(text))
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidDefinition, text)
	}
	*d = Date{t}
	return nil
}
