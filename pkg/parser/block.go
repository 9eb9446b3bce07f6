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
	"strings"

	"github.com/idevyatovsky-hpmd/haconfig/pkg/grammar"
	"github.com/idevyatovsky-hpmd/haconfig/pkg/parser/parserconfig"
)

// buildConfigBlock projects one section's line sequence into the
// seven-field bundle. Single pass, no cross-line state: order and
// duplicate count in every output sequence equal the matching lines in
// the source. Blank and comment lines carry no payload and are dropped.
//
// The type switch is exhaustive over the grammar's closed line union.
func buildConfigBlock(lines []grammar.Line) parserconfig.ConfigBlock {
	var block parserconfig.ConfigBlock

	for _, line := range lines {
		switch ln := line.(type) {
		case *grammar.BlankLine, *grammar.CommentLine:
			// No semantic payload.

		case *grammar.ConfigLine:
			block.Configs = append(block.Configs, parserconfig.Directive{
				Keyword: ln.Keyword,
				Value:   ln.Value,
			})

		case *grammar.OptionLine:
			block.Options = append(block.Options, parserconfig.Directive{
				Keyword: ln.Keyword,
				Value:   ln.Value,
			})

		case *grammar.ServerLine:
			block.Servers = append(block.Servers, buildServer(ln))

		case *grammar.BindLine:
			block.Binds = append(block.Binds, buildBind(ln))

		case *grammar.AclLine:
			block.Acls = append(block.Acls, parserconfig.Acl{
				Name:  ln.Name,
				Value: ln.Value,
			})

		case *grammar.BackendSwitchLine:
			block.UseBackends = append(block.UseBackends, buildUseBackend(ln))

		case *grammar.UserLine:
			block.Users = append(block.Users, buildUser(ln))

		case *grammar.GroupLine:
			block.Groups = append(block.Groups, buildGroup(ln))
		}
	}

	return block
}

func buildServer(ln *grammar.ServerLine) parserconfig.Server {
	return parserconfig.Server{
		Name:       ln.Name,
		Host:       ln.Address.Host,
		Port:       ln.Address.Port,
		Attributes: splitAttributes(ln.Value),
	}
}

func buildBind(ln *grammar.BindLine) parserconfig.Bind {
	return parserconfig.Bind{
		Host:       ln.Address.Host,
		Port:       ln.Address.Port,
		Attributes: splitAttributes(ln.Value),
	}
}

func buildUseBackend(ln *grammar.BackendSwitchLine) parserconfig.UseBackend {
	return parserconfig.UseBackend{
		Backend:   ln.Backend,
		Operator:  ln.Operator,
		Condition: ln.Condition,
		IsDefault: ln.Keyword == "default_backend",
	}
}

func buildUser(ln *grammar.UserLine) parserconfig.User {
	return parserconfig.User{
		Name:       ln.Name,
		Passwd:     ln.Passwd,
		PasswdType: ln.PasswdType,
		Groups:     splitNames(ln.Groups),
	}
}

func buildGroup(ln *grammar.GroupLine) parserconfig.Group {
	return parserconfig.Group{
		Name:  ln.Name,
		Users: splitNames(ln.Users),
	}
}

// splitAttributes tokenizes attribute text like
// "maxconn 1024 weight 3 check inter 2000" on whitespace runs.
// Returns nil for empty text.
func splitAttributes(value string) []string {
	attrs := strings.Fields(value)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// splitNames splits a comma-separated name fragment like "G1,G2".
// An absent fragment yields nil, not a one-element slice.
func splitNames(fragment string) []string {
	if fragment == "" {
		return nil
	}
	return strings.Split(fragment, ",")
}
