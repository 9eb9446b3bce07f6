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

// Package parserconfig provides the canonical typed model for parsed
// HAProxy-style configurations.
//
// Configuration is the single aggregate the parser produces: an immutable
// snapshot of one configuration buffer. All slices preserve source order
// and duplicates; downstream consumers (writers, inspectors) rely on that
// for round-trip fidelity and must treat the whole graph as read-only.
package parserconfig

// Directive is one generic (keyword, value) pair. Duplicates are legal
// and preserved in source order.
type Directive struct {
	Keyword string
	Value   string
}

// Server is one "server" entity: name, address and the raw attribute
// tokens that followed the address (e.g. "check", "inter", "2000").
type Server struct {
	Name       string
	Host       string
	Port       string
	Attributes []string
}

// Bind is one "bind" entity: a listening address plus socket option tokens.
type Bind struct {
	Host       string
	Port       string
	Attributes []string
}

// Acl is a named boolean expression; Value is the raw expression text.
type Acl struct {
	Name  string
	Value string
}

// UseBackend selects a backend, conditionally ("use_backend ... if/unless
// <cond>") or as the default fallback ("default_backend ...").
type UseBackend struct {
	Backend   string
	Operator  string
	Condition string
	IsDefault bool
}

// User is a userlist user. PasswdType records the password keyword as
// written ("password" or "insecure-password").
type User struct {
	Name       string
	Passwd     string
	PasswdType string
	Groups     []string
}

// Group is a userlist group with its optional member list.
type Group struct {
	Name  string
	Users []string
}

// ConfigBlock is the body of one section, projected losslessly from the
// section's lines: seven fixed, ordered sequences. A kind that never
// occurred is simply an empty slice; there is no dynamic keying.
type ConfigBlock struct {
	Configs     []Directive
	Options     []Directive
	Servers     []Server
	Binds       []Bind
	Acls        []Acl
	UseBackends []UseBackend
	Users       []User
	Groups      []Group
}

// Global is the "global" section. It has no name or address; only its
// generic directives and options are meaningful.
type Global struct {
	Configs []Directive
	Options []Directive
}

// Defaults is one "defaults" section. Name may be empty: the header name
// is optional.
type Defaults struct {
	Name string
	ConfigBlock
}

// Frontend is one "frontend" section with its resolved service address.
type Frontend struct {
	Name string
	Host string
	Port string
	ConfigBlock
}

// Backend is one "backend" section.
type Backend struct {
	Name string
	ConfigBlock
}

// Listen is one "listen" section with its resolved service address.
type Listen struct {
	Name string
	Host string
	Port string
	ConfigBlock
}

// Userlist is one "userlist" section.
type Userlist struct {
	Name string
	ConfigBlock
}

// Configuration holds all parsed sections of one buffer, in source order.
//
// Global is a single slot: when a buffer declares several global sections
// the last one in source order survives. All other section kinds
// accumulate.
type Configuration struct {
	Global    *Global
	Defaults  []*Defaults
	Frontends []*Frontend
	Listens   []*Listen
	Userlists []*Userlist
	Backends  []*Backend

	// Pointer-based indexes for zero-copy lookups, built during assembly.
	// ServerIndex maps backend or listen name -> server name -> server.
	// UserIndex and GroupIndex map userlist name -> entity name -> entity.
	ServerIndex map[string]map[string]*Server
	UserIndex   map[string]map[string]*User
	GroupIndex  map[string]map[string]*Group
}

// Frontend returns the first frontend with the given name, or nil.
func (c *Configuration) Frontend(name string) *Frontend {
	for _, fe := range c.Frontends {
		if fe.Name == name {
			return fe
		}
	}
	return nil
}

// Backend returns the first backend with the given name, or nil.
func (c *Configuration) Backend(name string) *Backend {
	for _, be := range c.Backends {
		if be.Name == name {
			return be
		}
	}
	return nil
}

// Listen returns the first listen section with the given name, or nil.
func (c *Configuration) Listen(name string) *Listen {
	for _, l := range c.Listens {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Userlist returns the first userlist with the given name, or nil.
func (c *Configuration) Userlist(name string) *Userlist {
	for _, u := range c.Userlists {
		if u.Name == name {
			return u
		}
	}
	return nil
}
