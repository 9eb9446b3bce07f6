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

// buildGlobal builds the global section. It has no header fields beyond
// the keyword; only the generic directives and options are kept.
func buildGlobal(sec *grammar.Section) *parserconfig.Global {
	block := buildConfigBlock(sec.Lines)
	return &parserconfig.Global{
		Configs: block.Configs,
		Options: block.Options,
	}
}

// buildDefaults builds one defaults section.
func buildDefaults(sec *grammar.Section) *parserconfig.Defaults {
	return &parserconfig.Defaults{
		Name:        sec.Name,
		ConfigBlock: buildConfigBlock(sec.Lines),
	}
}

// buildBackend builds one backend section.
func buildBackend(sec *grammar.Section) *parserconfig.Backend {
	return &parserconfig.Backend{
		Name:        sec.Name,
		ConfigBlock: buildConfigBlock(sec.Lines),
	}
}

// buildFrontend builds one frontend section. The config block is built
// first so the address resolver can fall back to its bind lines.
func buildFrontend(sec *grammar.Section) (*parserconfig.Frontend, error) {
	block := buildConfigBlock(sec.Lines)
	host, port, err := resolveAddress(sec, &block)
	if err != nil {
		return nil, err
	}
	return &parserconfig.Frontend{
		Name:        sec.Name,
		Host:        host,
		Port:        port,
		ConfigBlock: block,
	}, nil
}

// buildListen builds one listen section, resolving the address the same
// way a frontend does.
func buildListen(sec *grammar.Section) (*parserconfig.Listen, error) {
	block := buildConfigBlock(sec.Lines)
	host, port, err := resolveAddress(sec, &block)
	if err != nil {
		return nil, err
	}
	return &parserconfig.Listen{
		Name:        sec.Name,
		Host:        host,
		Port:        port,
		ConfigBlock: block,
	}, nil
}

// resolveAddress determines the canonical (host, port) of a frontend or
// listen section:
//
//  1. an explicit header address fragment wins, verbatim;
//  2. otherwise the first bind line in source order;
//  3. otherwise the section is unbuildable.
//
// The source format allows the proxy address at either position; this
// first-match rule gives every frontend/listen a single deterministic
// address even though the proxy itself would accept multiple binds.
// Values stay raw strings: numeric range and hostname syntax are a
// consumer's concern.
func resolveAddress(sec *grammar.Section, block *parserconfig.ConfigBlock) (host, port string, err error) {
	if sec.Address != nil {
		return sec.Address.Host, sec.Address.Port, nil
	}
	if len(block.Binds) > 0 {
		return block.Binds[0].Host, block.Binds[0].Port, nil
	}
	return "", "", &MissingAddressError{Section: sec.Kind.String(), Proxy: sec.Name}
}
