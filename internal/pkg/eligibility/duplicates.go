package eligibility

import (
	"strings"

	"github.com/yigit/phdportal/internal/app/models"
)

// DuplicateGroup is a transient report of scholars sharing one identifying
// key. It is computed in memory over the currently displayed set and never
// persisted.
type DuplicateGroup struct {
	Type     string           `json:"type"` // Phone, Email or Name
	Value    string           `json:"value"`
	Scholars []*models.Scholar `json:"scholars"`
}

// DuplicateGroups detects duplicates over the given scholar set by three
// independent keys in priority order: normalized phone, normalized email,
// normalized name. A scholar claimed by an earlier group is excluded from
// later groups, so no scholar appears in more than one group per pass.
func DuplicateGroups(scholars []*models.Scholar) []DuplicateGroup {
	var groups []DuplicateGroup
	seen := make(map[int64]bool)

	keyers := []struct {
		kind string
		key  func(*models.Scholar) string
	}{
		{"Phone", func(s *models.Scholar) string { return normalizePhone(s.Mobile) }},
		{"Email", func(s *models.Scholar) string { return strings.ToLower(strings.TrimSpace(s.Email)) }},
		{"Name", func(s *models.Scholar) string { return normalizeName(s.FullName) }},
	}

	for _, k := range keyers {
		byKey := make(map[string][]*models.Scholar)
		var order []string
		for _, s := range scholars {
			if seen[s.ID] {
				continue
			}
			key := k.key(s)
			if key == "" {
				continue
			}
			if _, ok := byKey[key]; !ok {
				order = append(order, key)
			}
			byKey[key] = append(byKey[key], s)
		}
		for _, key := range order {
			members := byKey[key]
			if len(members) < 2 {
				continue
			}
			for _, m := range members {
				seen[m.ID] = true
			}
			groups = append(groups, DuplicateGroup{Type: k.kind, Value: key, Scholars: members})
		}
	}

	return groups
}

// normalizePhone keeps digits only, so "+91 98765-43210" and "9876543210"
// compare equal on the trailing national number.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	// drop a leading country code when the national 10 digits remain
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}
