// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Quote returns s as a double-quoted JavaScript string literal, escaped the
// way JSON.stringify does it.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string never fails.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

var singleQuoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
)

// SingleQuote returns s as a single-quoted JavaScript string literal.
func SingleQuote(s string) string {
	return "'" + singleQuoteReplacer.Replace(s) + "'"
}

// Indent prefixes every non-empty line of text with depth levels of
// two-space indentation.
func Indent(text string, depth int) string {
	if depth <= 0 || text == "" {
		return text
	}
	pad := strings.Repeat("  ", depth)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
