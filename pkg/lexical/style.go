package lexical

import (
	"strings"
)

// StyleMap represents parsed CSS styles
type StyleMap map[string]string

// Whitelist of styles to preserve for display and LLM context
var styleWhitelist = []string{"color", "background-color", "text-transform"}

// ParseStyle parses a CSS style string into a map
// Example: "color: #F97316; background-color: #BFDBFE;"
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	parts := strings.Split(styleStr, ";")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			v := strings.TrimSpace(kv[1])
			if k != "" && v != "" {
				styles[k] = v
			}
		}
	}
	return styles
}

// Whitelisted keeps only the styles worth carrying into rendered output.
// It returns nil when nothing is left.
func (s StyleMap) Whitelisted() StyleMap {
	var out StyleMap
	for _, k := range styleWhitelist {
		if v, ok := s[k]; ok {
			if out == nil {
				out = make(StyleMap)
			}
			out[k] = v
		}
	}
	return out
}

// CSS renders the whitelisted styles in a stable order.
func (s StyleMap) CSS() string {
	var relevant []string
	for _, k := range styleWhitelist {
		if v, ok := s[k]; ok {
			relevant = append(relevant, k+": "+v)
		}
	}
	return strings.Join(relevant, "; ")
}

// BuildAnnotatedOpenTag creates an HTML span with the meaningful styles.
// Returns empty string if no relevant styles found
func (s StyleMap) BuildAnnotatedOpenTag() string {
	css := s.CSS()
	if css == "" {
		return ""
	}
	return "<span style=\"" + css + "\">"
}
