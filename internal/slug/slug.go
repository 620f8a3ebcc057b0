// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides filesystem- and URL-friendly name generation from
// arbitrary strings, used for download filenames.
package slug

import (
	"regexp"
	"strings"
	"time"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// topicLimit caps how much of the topic survives into a filename.
const topicLimit = 50

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Filename builds the download filename for a deck: the slugged topic,
// truncated, plus a timestamp so repeated downloads never collide.
// Example: Filename("Go & Concurrency", t) → "go-concurrency_20260828_143005.pptx"
func Filename(topic string, at time.Time) string {
	s := Generate(topic)
	if len(s) > topicLimit {
		s = strings.Trim(s[:topicLimit], "-")
	}
	if s == "" {
		s = "presentation"
	}
	return s + "_" + at.Format("20060102_150405") + ".pptx"
}
