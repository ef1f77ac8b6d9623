package timeseries

import (
	"regexp"
	"sort"
	"strings"

	"QuoteLens/internal/domain/models"
)

// FieldRole is the canonical role of one ordinal-prefixed series label.
type FieldRole int

const (
	RoleUnclassified FieldRole = iota
	RoleOpen
	RoleHigh
	RoleLow
	RoleClose
	RoleVolume
)

func (r FieldRole) String() string {
	switch r {
	case RoleOpen:
		return "open"
	case RoleHigh:
		return "high"
	case RoleLow:
		return "low"
	case RoleClose:
		return "close"
	case RoleVolume:
		return "volume"
	}
	return "unclassified"
}

// The close predicate requires an exact trailing token after the ordinal
// prefix, so "4. close" matches but "5. adjusted close" does not. The
// other roles stay permissive substring matches; that asymmetry is the
// documented contract and the ordering below is load-bearing.
var closeLabel = regexp.MustCompile(`^[0-9]+\. close$`)

type matcher struct {
	role  FieldRole
	match func(label string) bool
}

var matchers = []matcher{
	{RoleOpen, func(l string) bool { return strings.Contains(l, "open") }},
	{RoleHigh, func(l string) bool { return strings.Contains(l, "high") }},
	{RoleLow, func(l string) bool { return strings.Contains(l, "low") }},
	{RoleClose, func(l string) bool { return closeLabel.MatchString(l) }},
	{RoleVolume, func(l string) bool { return strings.Contains(l, "volume") }},
}

// Classify assigns a label to exactly one role. Matching is
// case-insensitive, first match wins.
func Classify(label string) FieldRole {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, m := range matchers {
		if m.match(l) {
			return m.role
		}
	}
	return RoleUnclassified
}

// ClassifyRecord maps one timestamp's label->value record to role->value.
// Unclassified labels (adjusted close, dividend amount, split coefficient)
// are dropped. When two labels resolve to the same role the first in the
// record's sorted label order wins. Fails with MissingFieldError unless
// all five OHLCV roles resolve.
func ClassifyRecord(timestamp string, record map[string]string) (map[FieldRole]string, error) {
	byRole := make(map[FieldRole]string, 5)
	for _, label := range sortedKeys(record) {
		role := Classify(label)
		if role == RoleUnclassified {
			continue
		}
		if _, dup := byRole[role]; dup {
			continue
		}
		byRole[role] = record[label]
	}

	var missing []string
	for _, role := range []FieldRole{RoleOpen, RoleHigh, RoleLow, RoleClose, RoleVolume} {
		if _, ok := byRole[role]; !ok {
			missing = append(missing, role.String())
		}
	}
	if len(missing) > 0 {
		return nil, &models.MissingFieldError{Timestamp: timestamp, Missing: missing}
	}
	return byRole, nil
}

// sortedKeys orders labels lexically; ordinal prefixes put them in
// vendor field order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
