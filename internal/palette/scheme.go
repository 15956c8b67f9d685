/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import "fmt"

// SchemeSteps is the step count used by the computed gradient schemes.
const SchemeSteps = 10

// SchemeInfo describes a selectable color scheme.
type SchemeInfo struct {
	ID   int
	Name string
}

var schemeNames = []string{
	"Silver to Gold gradient",
	"Magenta to Green gradient",
	"Yellow to Purple gradient",
	"Black and White gradient",
	"Black color only",
	"White color only",
	"Black and White combination",
	"Silver color only",
	"Gold color only",
	"Silver and Gold combination",
}

// Schemes lists the selectable schemes in menu order.
func Schemes() []SchemeInfo {
	out := make([]SchemeInfo, len(schemeNames))
	for i, n := range schemeNames {
		out[i] = SchemeInfo{ID: i + 1, Name: n}
	}
	return out
}

// Scheme returns the gradient for scheme id (1..10).
func Scheme(id int) (Gradient, error) {
	switch id {
	case 1:
		return LinearGradient(Silver, Gold, SchemeSteps)
	case 2:
		return LinearGradient(Magenta, Green, SchemeSteps)
	case 3:
		return LinearGradient(Yellow, Purple, SchemeSteps)
	case 4:
		return LinearGradient(Black, White, SchemeSteps)
	case 5:
		return Gradient{Black}, nil
	case 6:
		return Gradient{White}, nil
	case 7:
		return Gradient{Black, White}, nil
	case 8:
		return Gradient{Silver}, nil
	case 9:
		return Gradient{Gold}, nil
	case 10:
		return Gradient{Silver, Gold}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidChoice, id)
	}
}
