package services

import (
	"strings"
)

// Slugify turns a display name into a URL-safe identifier:
// lowercase, every run of characters outside [a-z0-9] collapsed into a
// single hyphen, no leading or trailing hyphen.
//
//	Slugify("S220-24T4X!") == "s220-24t4x"
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// ResolveSlug applies the one slug rule shared by every catalog entity.
// An explicitly supplied slug wins (normalised through Slugify). Otherwise
// the slug is regenerated from newName when the name changed or no slug is
// stored yet, and kept as is when neither holds.
//
// Edit forms send the stored slug back unchanged; that echo does not count
// as an explicit slug.
func ResolveSlug(currentSlug, oldName, newName, explicit string) string {
	if e := Slugify(explicit); e != "" && e != currentSlug {
		return e
	}
	if currentSlug == "" || oldName != newName {
		return Slugify(newName)
	}
	return currentSlug
}

// deriveSlug wraps ResolveSlug and rejects names that leave nothing usable.
func deriveSlug(entity, currentSlug, oldName, newName, explicit string) (string, error) {
	slug := ResolveSlug(currentSlug, oldName, newName, explicit)
	if slug == "" {
		return "", validationError("%s name must contain at least one letter or digit", entity)
	}
	return slug, nil
}
