package listing

import (
	"sort"
	"strings"
)

const (
	MaxTags      = 16
	MaxTagLength = 32
	MaxDiscount  = 100
)

// Tags is a normalized set: trimmed, lower-cased, de-duplicated and sorted.
type Tags struct {
	values []string
}

func NewTags(raw []string) (Tags, error) {
	seen := make(map[string]struct{}, len(raw))
	values := make([]string, 0, len(raw))
	for _, r := range raw {
		t := NormalizeTag(r)
		if t == "" {
			continue
		}
		if len(t) > MaxTagLength {
			return Tags{}, ErrInvalidTags
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		values = append(values, t)
	}
	if len(values) > MaxTags {
		return Tags{}, ErrInvalidTags
	}
	sort.Strings(values)
	return Tags{values: values}, nil
}

func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (t Tags) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

func (t Tags) Len() int {
	return len(t.values)
}

func (t Tags) Contains(tag string) bool {
	i := sort.SearchStrings(t.values, tag)
	return i < len(t.values) && t.values[i] == tag
}

// Intersect returns the members of filter present in t, in t's order.
// filter must already be normalized.
func (t Tags) Intersect(filter Tags) []string {
	var out []string
	for _, v := range t.values {
		if filter.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

type Discount struct {
	percent int
}

func NewDiscount(percent int) (Discount, error) {
	if percent < 0 || percent > MaxDiscount {
		return Discount{}, ErrInvalidDiscount
	}
	return Discount{percent: percent}, nil
}

func (d Discount) Percent() int {
	return d.percent
}
