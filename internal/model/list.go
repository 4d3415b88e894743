// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// StringList is a request field holding a list of strings. Clients may send
// a JSON array, a JSON-encoded array inside a string, or a newline or comma
// separated string. Blank items are dropped.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	var items []string
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = clean(items)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected an array of strings")
	}
	*l = ParseStringList(s)
	return nil
}

// ParseStringList splits a form or JSON string value into list items.
func ParseStringList(s string) StringList {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var items []string
		if json.Unmarshal([]byte(s), &items) == nil {
			return clean(items)
		}
	}
	sep := "\n"
	if !strings.Contains(s, "\n") {
		sep = ","
	}
	return clean(strings.Split(s, sep))
}

func clean(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
