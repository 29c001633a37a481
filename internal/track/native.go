package track

import (
	"strings"

	"golang.org/x/text/cases"
)

var (
	defaultOffLabels     = []string{"Off"}
	defaultOffSubstrings = []string{"关闭", "關閉"}
)

// OffMatcher recognises the "captions off" entry of a host caption menu,
// either by exact label (case-folded) or by a localized fragment.
type OffMatcher struct {
	exact      []string
	substrings []string
}

func NewOffMatcher(exact, substrings []string) *OffMatcher {
	m := &OffMatcher{}
	for _, label := range exact {
		if label = strings.TrimSpace(label); label != "" {
			m.exact = append(m.exact, fold(label))
		}
	}
	for _, sub := range substrings {
		if sub = strings.TrimSpace(sub); sub != "" {
			m.substrings = append(m.substrings, sub)
		}
	}
	return m
}

func DefaultOffMatcher() *OffMatcher {
	return NewOffMatcher(defaultOffLabels, defaultOffSubstrings)
}

func (m *OffMatcher) IsOff(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	folded := fold(label)
	for _, e := range m.exact {
		if folded == e {
			return true
		}
	}
	for _, sub := range m.substrings {
		if strings.Contains(label, sub) {
			return true
		}
	}
	return false
}

// DetectNativeSurface reports whether any of the host's menu panels is a
// caption selection panel, recognised by an explicit "off" entry. Each
// element of menus holds the entry labels of one panel.
func DetectNativeSurface(menus [][]string, matcher *OffMatcher) bool {
	if matcher == nil {
		matcher = DefaultOffMatcher()
	}
	for _, labels := range menus {
		for _, label := range labels {
			if matcher.IsOff(label) {
				return true
			}
		}
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(s)
}
