// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

// Package query provides parsing helpers for delimited parameter values.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated value into a trimmed slice of
// strings, dropping empty entries.
//
// It is the canonical splitter for the catalog's keyword buckets, which
// arrive as comma-joined strings ("cat, dog ,  , bird" → [cat dog bird]).
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
