// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package header parses the restricted frontmatter grammar.
//
// The grammar is deliberately shallow: scalar values are raw strings (never
// coerced, so "42" and "true" stay strings), lists are flat, and nested maps
// are not representable. A general YAML parser would accept documents this
// convention forbids, so the block is scanned line by line instead.
package header

import (
	"errors"
	"strings"
)

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// ErrNoOpenDelimiter is returned when the text does not begin with the
// frontmatter delimiter.
var ErrNoOpenDelimiter = errors.New("frontmatter: missing opening delimiter")

// ErrNoCloseDelimiter is returned when the opening delimiter is never closed.
var ErrNoCloseDelimiter = errors.New("frontmatter: missing closing delimiter")

// RawHeader is the untyped frontmatter mapping. Values are string (scalar),
// []string (list), or nil (bare key awaiting list entries). It is consumed
// immediately by the schema registry and never retained.
type RawHeader map[string]any

// Parse splits text into its frontmatter mapping and body. It returns the
// mapping, the body (everything after the closing delimiter line), and the
// number of lines consumed, closing delimiter included; the first body line
// is therefore line consumed+1 of the original text.
//
// Line forms inside the block:
//
//	blank or "# comment"   skipped
//	key: value             scalar; clears any pending list key
//	key:                   null value; becomes the pending list key
//	- entry                appended to the list under the pending key
//
// Lines matching none of these are ignored; the schema registry reports
// missing fields downstream.
func Parse(text string) (RawHeader, string, int, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != Delimiter {
		return nil, "", 0, ErrNoOpenDelimiter
	}

	raw := make(RawHeader)
	pendingList := ""

	for i := 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")

		if line == Delimiter {
			body := strings.Join(lines[i+1:], "\n")
			return raw, body, i + 1, nil
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue

		case strings.HasPrefix(trimmed, "- "):
			if pendingList == "" {
				continue
			}
			entry := strings.TrimSpace(trimmed[2:])
			list, _ := raw[pendingList].([]string)
			raw[pendingList] = append(list, entry)

		default:
			key, value, ok := strings.Cut(trimmed, ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if key == "" {
				continue
			}
			if value == "" {
				raw[key] = nil
				pendingList = key
			} else {
				raw[key] = value
				pendingList = ""
			}
		}
	}

	return nil, "", 0, ErrNoCloseDelimiter
}
