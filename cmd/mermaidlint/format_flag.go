package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*enumFlag)(nil)

// enumFlag is a pflag.Value restricted to a fixed set of words.
type enumFlag struct {
	value   string
	allowed []string
	typ     string // shown in --help
}

func newEnumFlag(def string, allowed ...string) *enumFlag {
	return &enumFlag{value: def, allowed: allowed, typ: "format"}
}

func (f *enumFlag) String() string { return f.value }

func (f *enumFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(f.allowed, s) {
		return fmt.Errorf("must be one of %s", strings.Join(f.allowed, "|"))
	}
	f.value = s
	return nil
}

func (f *enumFlag) Type() string { return f.typ }

// usage lists the allowed words after what.
func (f *enumFlag) usage(what string) string {
	return fmt.Sprintf("%s (%s)", what, strings.Join(f.allowed, "|"))
}

// addFormatFlag registers f as --format/-f on fs.
func addFormatFlag(fs *pflag.FlagSet, f *enumFlag, what string) {
	fs.VarP(f, "format", "f", f.usage(what))
}
