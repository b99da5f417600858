// Package patch decodes partial-update request bodies against an explicit
// whitelist of mutable fields, rejecting unknown keys instead of silently
// accepting arbitrary maps.
package patch

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Decode unmarshals body into dst after verifying that every top-level key is
// in allowed. dst should be a pointer to a struct of optional (pointer) fields.
func Decode(body []byte, allowed []string, dst any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	ok := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		ok[k] = true
	}
	var unknown []string
	for k := range raw {
		if !ok[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
