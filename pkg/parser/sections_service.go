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

package parser

import (
	"github.com/idevyatovsky-hpmd/haconfig/pkg/grammar"
	"github.com/idevyatovsky-hpmd/haconfig/pkg/parser/parserconfig"
)

// buildUserlist builds one userlist section. Users and groups keep their
// source order; membership stays exactly as declared on each line (a
// group's user list and a user's group list are not cross-resolved).
func buildUserlist(sec *grammar.Section) *parserconfig.Userlist {
	return &parserconfig.Userlist{
		Name:        sec.Name,
		ConfigBlock: buildConfigBlock(sec.Lines),
	}
}
