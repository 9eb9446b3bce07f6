// Copyright 2025 Philipp Hossner
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

package parserconfig

// BuildServerIndex builds a pointer index over a section's servers.
// Returns nil for an empty slice. On duplicate names the last server wins;
// the ordered slice remains the authoritative record.
func BuildServerIndex(servers []Server) map[string]*Server {
	if len(servers) == 0 {
		return nil
	}
	index := make(map[string]*Server, len(servers))
	for i := range servers {
		if servers[i].Name != "" {
			index[servers[i].Name] = &servers[i]
		}
	}
	return index
}

// BuildUserIndex builds a pointer index over a userlist's users.
// Returns nil for an empty slice.
func BuildUserIndex(users []User) map[string]*User {
	if len(users) == 0 {
		return nil
	}
	index := make(map[string]*User, len(users))
	for i := range users {
		if users[i].Name != "" {
			index[users[i].Name] = &users[i]
		}
	}
	return index
}

// BuildGroupIndex builds a pointer index over a userlist's groups.
// Returns nil for an empty slice.
func BuildGroupIndex(groups []Group) map[string]*Group {
	if len(groups) == 0 {
		return nil
	}
	index := make(map[string]*Group, len(groups))
	for i := range groups {
		if groups[i].Name != "" {
			index[groups[i].Name] = &groups[i]
		}
	}
	return index
}
