package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "product code", in: "S220-24T4X!", want: "s220-24t4x"},
		{name: "spaces", in: "Networking Gear", want: "networking-gear"},
		{name: "version suffix", in: "Networking Gear v2", want: "networking-gear-v2"},
		{name: "leading and trailing punctuation", in: "  --Wi-Fi 6E!!  ", want: "wi-fi-6e"},
		{name: "punctuation runs collapse", in: "Cloud & Edge /// Services", want: "cloud-edge-services"},
		{name: "non-ascii dropped", in: "Café Router", want: "caf-router"},
		{name: "underscores", in: "poe_switch", want: "poe-switch"},
		{name: "only punctuation", in: "!!!", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.Regexp(t, slugPattern, got)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"S220-24T4X!", "Networking Gear", "  A  B  C ", "Wi-Fi", "--x--", "Mixed_Case__Name 42", "ÄÖÜ", "a-b-c",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
		if once != "" {
			assert.Regexp(t, slugPattern, once)
		}
	}
}

func TestResolveSlug(t *testing.T) {
	tests := []struct {
		name                               string
		current, oldName, newName, explicit string
		want                               string
	}{
		{name: "create derives from name", newName: "Networking Gear", want: "networking-gear"},
		{name: "rename regenerates", current: "networking-gear", oldName: "Networking Gear", newName: "Networking Gear v2", want: "networking-gear-v2"},
		{name: "unchanged name keeps slug", current: "custom", oldName: "Gear", newName: "Gear", want: "custom"},
		{name: "missing slug regenerates", oldName: "Gear", newName: "Gear", want: "gear"},
		{name: "explicit slug wins over rename", current: "old", oldName: "A", newName: "B", explicit: "My Slug", want: "my-slug"},
		{name: "echoed slug does not block rename", current: "networking-gear", oldName: "Networking Gear", newName: "Networking Gear v2", explicit: "networking-gear", want: "networking-gear-v2"},
		{name: "echoed slug kept without rename", current: "custom", oldName: "Gear", newName: "Gear", explicit: "custom", want: "custom"},
		{name: "blank explicit slug ignored", current: "a", oldName: "A", newName: "B", explicit: "   ", want: "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSlug(tt.current, tt.oldName, tt.newName, tt.explicit))
		})
	}
}

func TestDeriveSlug_RejectsEmpty(t *testing.T) {
	_, err := deriveSlug("category", "", "", "???", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
