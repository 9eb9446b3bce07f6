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

// Package grammar recognizes HAProxy-style configuration text into a
// concrete, ordered parse tree.
//
// Recognition is the first of two stages: the tree produced here preserves
// the source order of sections and lines exactly, including duplicates,
// blanks and comments, and carries no semantics beyond line classification.
// The second stage (package parser) turns the tree into a typed
// configuration model.
//
// Recognition is all-or-nothing: any body line that matches no rule
// produces a SyntaxError and no partial tree is returned.
package grammar

// Position locates a node in the source text. Line and Column are 1-based;
// Column counts bytes, which matches how editors display plain ASCII
// configuration files.
type Position struct {
	Line   int
	Column int
}

// SectionKind enumerates the section header keywords the grammar accepts.
type SectionKind int

const (
	SectionGlobal SectionKind = iota
	SectionDefaults
	SectionFrontend
	SectionBackend
	SectionListen
	SectionUserlist
)

// String returns the header keyword for the kind.
func (k SectionKind) String() string {
	switch k {
	case SectionGlobal:
		return "global"
	case SectionDefaults:
		return "defaults"
	case SectionFrontend:
		return "frontend"
	case SectionBackend:
		return "backend"
	case SectionListen:
		return "listen"
	case SectionUserlist:
		return "userlist"
	}
	return "unknown"
}

// Tree is the concrete parse tree for one configuration buffer.
// Sections appear in source order.
type Tree struct {
	Sections []*Section
}

// Section is one top-level block: its header fields plus the ordered body
// lines. Address is non-nil only when a frontend or listen header carries
// an explicit service address fragment.
type Section struct {
	Kind    SectionKind
	Name    string
	Address *Address
	Lines   []Line
	At      Position
}

// Address is a service address fragment, host and port captured as raw
// text. The grammar accepts hostnames, IPv4/IPv6 literals and the wildcard
// "*" as hosts and requires a numeric port; it does not validate ranges or
// name syntax.
type Address struct {
	Host string
	Port string
}

// Line is the closed union over body line kinds. Exactly ten concrete
// types implement it: BlankLine, CommentLine, BindLine, ServerLine,
// AclLine, BackendSwitchLine, UserLine, GroupLine, OptionLine and
// ConfigLine. The unexported method keeps the union closed so the builder
// stage can type-switch exhaustively.
type Line interface {
	Pos() Position
	lineNode()
}

type lineInfo struct {
	At Position
}

func (l lineInfo) Pos() Position { return l.At }
func (lineInfo) lineNode()       {}

// BlankLine is a line containing only whitespace. It carries no payload.
type BlankLine struct {
	lineInfo
}

// CommentLine is a line whose first non-blank byte is '#'.
type CommentLine struct {
	lineInfo
	Text string
}

// BindLine declares a listening address: "bind <host>:<port> [options]".
// Value is the raw option text after the address.
type BindLine struct {
	lineInfo
	Address Address
	Value   string
}

// ServerLine declares a backend server:
// "server <name> <host>:<port> [attributes]".
type ServerLine struct {
	lineInfo
	Name    string
	Address Address
	Value   string
}

// AclLine is a named boolean expression: "acl <name> <expression>".
// Value is the raw expression text with inner spacing preserved.
type AclLine struct {
	lineInfo
	Name  string
	Value string
}

// BackendSwitchLine is a "use_backend" or "default_backend" directive.
// Operator is "if" or "unless" when a condition is present, empty
// otherwise. Condition is the raw condition text.
type BackendSwitchLine struct {
	lineInfo
	Keyword   string
	Backend   string
	Operator  string
	Condition string
}

// UserLine is a userlist "user" directive. PasswdType is the keyword as
// written ("password" or "insecure-password"). Groups is the raw
// comma-separated fragment after "groups", empty when absent.
type UserLine struct {
	lineInfo
	Name       string
	PasswdType string
	Passwd     string
	Groups     string
}

// GroupLine is a userlist "group" directive. Users is the raw
// comma-separated fragment after "users", empty when absent.
type GroupLine struct {
	lineInfo
	Name  string
	Users string
}

// OptionLine is an "option <keyword> [value]" directive.
type OptionLine struct {
	lineInfo
	Keyword string
	Value   string
}

// ConfigLine is the generic-config fallback: any body line with a keyword
// token and optional value text that no specific rule claimed
// (e.g. maxconn, timeout, mode, balance).
type ConfigLine struct {
	lineInfo
	Keyword string
	Value   string
}
