package grammar

import "strings"

// sectionKinds maps header keywords to their kind. A body line whose first
// token is one of these always starts a new section; the original grammar
// enforces the same rule with a negative lookahead on its generic line.
var sectionKinds = map[string]SectionKind{
	"global":   SectionGlobal,
	"defaults": SectionDefaults,
	"frontend": SectionFrontend,
	"backend":  SectionBackend,
	"listen":   SectionListen,
	"userlist": SectionUserlist,
}

// token is one whitespace-delimited word plus its byte offsets into the
// line it came from. Offsets let line rules recover the raw remainder text
// (with inner spacing intact) after any token.
type token struct {
	text  string
	start int
	end   int
}

func (t token) column() int { return t.start + 1 }

// Recognize turns configuration text into a parse tree.
//
// The tree preserves source order for sections and lines. Blank and
// comment lines inside a section body are kept as payload-free nodes;
// outside any section they are skipped. Any other text outside a section,
// and any malformed section header, is a *SyntaxError.
func Recognize(text string) (*Tree, error) {
	tree := &Tree{}
	var current *Section

	lineNo := 0
	for rest := text; rest != ""; {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			line, rest = rest, ""
		}
		lineNo++
		raw := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			if current != nil {
				current.Lines = append(current.Lines, &BlankLine{lineInfo{Position{lineNo, 1}}})
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if current != nil {
				body := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
				current.Lines = append(current.Lines, &CommentLine{lineInfo{Position{lineNo, 1}}, body})
			}
			continue
		}

		content := stripInlineComment(raw)
		toks := tokenize(content)
		if len(toks) == 0 {
			// The line reduced to an inline comment marker only.
			continue
		}

		if kind, ok := sectionKinds[toks[0].text]; ok {
			sec, err := makeSection(kind, toks, lineNo)
			if err != nil {
				return nil, err
			}
			tree.Sections = append(tree.Sections, sec)
			current = sec
			continue
		}

		if current == nil {
			return nil, &SyntaxError{Line: lineNo, Column: toks[0].column(), Fragment: trimmed}
		}

		ln, err := classifyLine(content, toks, lineNo)
		if err != nil {
			return nil, err
		}
		current.Lines = append(current.Lines, ln)
	}

	return tree, nil
}

// makeSection validates a header line and produces its section node.
//
// Header shapes:
//
//	global
//	defaults [name]
//	backend <name>
//	userlist <name>
//	frontend <name> [host:port]
//	listen   <name> [host:port]
func makeSection(kind SectionKind, toks []token, lineNo int) (*Section, error) {
	sec := &Section{Kind: kind, At: Position{lineNo, toks[0].column()}}
	rest := toks[1:]

	fail := func(t token) error {
		return &SyntaxError{Line: lineNo, Column: t.column(), Fragment: t.text}
	}

	switch kind {
	case SectionGlobal:
		if len(rest) > 0 {
			return nil, fail(rest[0])
		}

	case SectionDefaults:
		// The name is optional: a bare "defaults" section is legal.
		if len(rest) > 1 {
			return nil, fail(rest[1])
		}
		if len(rest) == 1 {
			if !isName(rest[0].text) {
				return nil, fail(rest[0])
			}
			sec.Name = rest[0].text
		}

	case SectionBackend, SectionUserlist:
		if len(rest) == 0 {
			return nil, &SyntaxError{Line: lineNo, Column: toks[0].end + 1, Fragment: toks[0].text}
		}
		if !isName(rest[0].text) {
			return nil, fail(rest[0])
		}
		if len(rest) > 1 {
			return nil, fail(rest[1])
		}
		sec.Name = rest[0].text

	case SectionFrontend, SectionListen:
		if len(rest) == 0 {
			return nil, &SyntaxError{Line: lineNo, Column: toks[0].end + 1, Fragment: toks[0].text}
		}
		if !isName(rest[0].text) {
			return nil, fail(rest[0])
		}
		sec.Name = rest[0].text
		if len(rest) > 2 {
			return nil, fail(rest[2])
		}
		if len(rest) == 2 {
			addr, ok := parseServiceAddress(rest[1].text)
			if !ok {
				return nil, fail(rest[1])
			}
			sec.Address = &addr
		}
	}

	return sec, nil
}

// classifyLine matches one body line against the specific line rules, in
// leading-keyword order, falling back to the generic-config rule. The
// fallback mirrors the ordered-choice semantics of the original grammar:
// a "bind" line whose remainder is not a service address is still a valid
// generic (keyword, value) directive, not a syntax error.
func classifyLine(content string, toks []token, lineNo int) (Line, error) {
	info := lineInfo{Position{lineNo, toks[0].column()}}
	rest := toks[1:]

	switch toks[0].text {
	case "bind":
		if len(rest) >= 1 {
			if addr, ok := parseServiceAddress(rest[0].text); ok {
				return &BindLine{info, addr, remainderAfter(content, rest[0])}, nil
			}
		}

	case "server":
		if len(rest) >= 2 && isName(rest[0].text) {
			if addr, ok := parseServiceAddress(rest[1].text); ok {
				return &ServerLine{info, rest[0].text, addr, remainderAfter(content, rest[1])}, nil
			}
		}

	case "acl":
		if len(rest) >= 1 && isName(rest[0].text) {
			return &AclLine{info, rest[0].text, remainderAfter(content, rest[0])}, nil
		}

	case "use_backend", "default_backend":
		if len(rest) >= 1 && isName(rest[0].text) {
			ln := &BackendSwitchLine{lineInfo: info, Keyword: toks[0].text, Backend: rest[0].text}
			switch {
			case len(rest) >= 2 && (rest[1].text == "if" || rest[1].text == "unless"):
				ln.Operator = rest[1].text
				ln.Condition = remainderAfter(content, rest[1])
			case len(rest) >= 2:
				ln.Condition = remainderAfter(content, rest[0])
			}
			return ln, nil
		}

	case "user":
		if ln, ok := matchUser(info, rest); ok {
			return ln, nil
		}

	case "group":
		if ln, ok := matchGroup(info, rest); ok {
			return ln, nil
		}

	case "option":
		if len(rest) >= 1 && isKeyword(rest[0].text) {
			return &OptionLine{info, rest[0].text, remainderAfter(content, rest[0])}, nil
		}
	}

	if !isKeyword(toks[0].text) {
		return nil, &SyntaxError{Line: lineNo, Column: toks[0].column(), Fragment: toks[0].text}
	}
	return &ConfigLine{info, toks[0].text, remainderAfter(content, toks[0])}, nil
}

// matchUser matches "user <name> password|insecure-password <passwd>
// [groups <g1,g2,...>]".
func matchUser(info lineInfo, rest []token) (*UserLine, bool) {
	if len(rest) < 3 || !isName(rest[0].text) {
		return nil, false
	}
	if rest[1].text != "password" && rest[1].text != "insecure-password" {
		return nil, false
	}
	ln := &UserLine{lineInfo: info, Name: rest[0].text, PasswdType: rest[1].text, Passwd: rest[2].text}
	switch {
	case len(rest) == 3:
	case len(rest) == 5 && rest[3].text == "groups":
		ln.Groups = rest[4].text
	default:
		return nil, false
	}
	return ln, true
}

// matchGroup matches "group <name> [users <u1,u2,...>]".
func matchGroup(info lineInfo, rest []token) (*GroupLine, bool) {
	if len(rest) < 1 || !isName(rest[0].text) {
		return nil, false
	}
	ln := &GroupLine{lineInfo: info, Name: rest[0].text}
	switch {
	case len(rest) == 1:
	case len(rest) == 3 && rest[1].text == "users":
		ln.Users = rest[2].text
	default:
		return nil, false
	}
	return ln, true
}

// parseServiceAddress splits "<host>:<port>" on the last colon so IPv6
// literals keep their inner colons. Both parts are captured as raw text;
// the port must be a non-empty run of digits, the host a hostname, address
// literal or "*".
func parseServiceAddress(text string) (Address, bool) {
	i := strings.LastIndexByte(text, ':')
	if i <= 0 || i == len(text)-1 {
		return Address{}, false
	}
	host, port := text[:i], text[i+1:]
	if !isNumeric(port) || !isHost(host) {
		return Address{}, false
	}
	return Address{Host: host, Port: port}, true
}

// stripInlineComment cuts the line at the first '#'. The original grammar
// treats '#' as a comment marker anywhere on a line; values never contain
// a literal '#'.
func stripInlineComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// remainderAfter returns the raw line text after the given token, trimmed
// at both ends but with inner spacing preserved.
func remainderAfter(content string, t token) string {
	return strings.TrimSpace(content[t.end:])
}

// tokenize splits a line on runs of spaces and tabs, keeping byte offsets.
func tokenize(s string) []token {
	var toks []token
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				toks = append(toks, token{s[start:i], start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{s[start:], start, len(s)})
	}
	return toks
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isHost accepts hostnames, IPv4/IPv6 literals (bracketed or not) and the
// wildcard "*". No format validation beyond the character set.
func isHost(s string) bool {
	if s == "*" {
		return true
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_' || c == ':' || c == '[' || c == ']':
		default:
			return false
		}
	}
	return true
}

// isName accepts proxy, server, acl, user and group names.
func isName(s string) bool { return isKeyword(s) }

// isKeyword accepts directive keywords: a letter or digit followed by
// letters, digits, '-', '_', '.' or ':'.
func isKeyword(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case i > 0 && (c == '-' || c == '_' || c == '.' || c == ':'):
		default:
			return false
		}
	}
	return true
}
