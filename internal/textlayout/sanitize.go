/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"regexp"
	"strings"
)

var (
	listPrefix = regexp.MustCompile(`^\d+\.\s*`)
	disallowed = regexp.MustCompile(`[^\w\s.,?!'-]`)
)

// Sanitize strips a leading "<digits>. " list marker and every character that is
// not a word character, whitespace or one of . , ? ! ' -
// \w is ASCII only, so accented letters are dropped.
func Sanitize(text string) string {
	text = strings.TrimSpace(listPrefix.ReplaceAllString(text, ""))
	return strings.TrimSpace(disallowed.ReplaceAllString(text, ""))
}

// SanitizeAll sanitizes every entry and drops the ones that end up empty.
func SanitizeAll(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if s := Sanitize(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}
