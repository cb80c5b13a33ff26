package workspace

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
)

// NormalizeName removes trailing slashes left by shell completion.
func NormalizeName(name string) string {
	return strings.TrimRight(name, "/")
}

// Select filters members by package name or by root directory base name.
// No names selects every member.
func Select(members []Member, names []string) ([]Member, error) {
	logger := logging.GetLogger("workspace.selection")

	if len(names) == 0 {
		return members, nil
	}

	var selected []Member
	var notFound []string
	for _, raw := range names {
		name := NormalizeName(raw)
		found := false
		for _, m := range members {
			if m.Name == name || filepath.Base(m.Root) == name {
				selected = append(selected, m)
				found = true
				break
			}
		}
		if !found {
			notFound = append(notFound, name)
		}
	}

	if len(notFound) > 0 {
		return nil, errors.New(errors.ErrNotFound, "package(s) not found").
			WithDetail("notFound", notFound).
			WithDetail("available", Names(members))
	}

	logger.Debug().
		Int("selected", len(selected)).
		Int("total", len(members)).
		Msg("Selected packages")
	return selected, nil
}

// Names returns the name of each member.
func Names(members []Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

