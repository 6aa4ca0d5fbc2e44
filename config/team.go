// Copyright 2025 go-perflab Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

// TeamInfo identifies who wrote the optimized kernels.
type TeamInfo struct {
	Name    string
	Member1 string
	Email1  string
	Member2 string
	Email2  string
}

// Team returns the team credited in reports.
func Team() TeamInfo {
	return TeamInfo{
		Name:    "G38049444",
		Member1: "Lauren Schmidt",
		Email1:  "laurenschmidt@gwu.edu",
	}
}

// Members returns the non-empty "name <email>" entries.
func (t TeamInfo) Members() []string {
	var out []string
	for _, m := range [][2]string{{t.Member1, t.Email1}, {t.Member2, t.Email2}} {
		switch {
		case m[0] == "":
		case m[1] == "":
			out = append(out, m[0])
		default:
			out = append(out, m[0]+" <"+m[1]+">")
		}
	}
	return out
}
