package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevyatovsky-hpmd/haconfig/pkg/grammar"
	"github.com/idevyatovsky-hpmd/haconfig/pkg/parser/parserconfig"
)

// recognizeBody recognizes a one-section buffer and returns its lines.
func recognizeBody(t *testing.T, text string) []grammar.Line {
	t.Helper()
	tree, err := grammar.Recognize(text)
	require.NoError(t, err)
	require.Len(t, tree.Sections, 1)
	return tree.Sections[0].Lines
}

// The order law: configs/options equal, in count and order, the matching
// directive lines of the source. Duplicates are never collapsed.
func TestBuildConfigBlock_OrderAndDuplicates(t *testing.T) {
	lines := recognizeBody(t, `global
    maxconn 1024
    option httplog
    maxconn 2048
    option httplog
    maxconn 1024
`)

	block := buildConfigBlock(lines)

	assert.Equal(t, []parserconfig.Directive{
		{Keyword: "maxconn", Value: "1024"},
		{Keyword: "maxconn", Value: "2048"},
		{Keyword: "maxconn", Value: "1024"},
	}, block.Configs)

	assert.Equal(t, []parserconfig.Directive{
		{Keyword: "httplog", Value: ""},
		{Keyword: "httplog", Value: ""},
	}, block.Options)
}

func TestBuildConfigBlock_BlankAndCommentDropped(t *testing.T) {
	lines := recognizeBody(t, `backend web
    # upstream pool

    server s1 10.0.0.1:80 check
`)

	block := buildConfigBlock(lines)

	require.Len(t, lines, 3)
	assert.Empty(t, block.Configs)
	require.Len(t, block.Servers, 1)
}

func TestBuildConfigBlock_AllSequences(t *testing.T) {
	lines := recognizeBody(t, `listen app
    bind *:443 ssl
    server s1 10.0.0.1:80 weight 3
    acl internal src 10.0.0.0/8
    use_backend priv if internal
    user bob insecure-password pw
    group eng users bob
    option tcplog
    balance roundrobin
`)

	block := buildConfigBlock(lines)

	assert.Len(t, block.Binds, 1)
	assert.Len(t, block.Servers, 1)
	assert.Len(t, block.Acls, 1)
	assert.Len(t, block.UseBackends, 1)
	assert.Len(t, block.Users, 1)
	assert.Len(t, block.Groups, 1)
	assert.Len(t, block.Options, 1)
	assert.Len(t, block.Configs, 1)
}

func TestSplitAttributes(t *testing.T) {
	assert.Nil(t, splitAttributes(""))
	assert.Equal(t, []string{"check"}, splitAttributes("check"))
	// Runs of mixed whitespace collapse; no empty tokens survive.
	assert.Equal(t,
		[]string{"maxconn", "1024", "weight", "3", "check", "inter", "2000"},
		splitAttributes("maxconn 1024  weight\t3 check   inter 2000"))
}

func TestSplitNames(t *testing.T) {
	assert.Nil(t, splitNames(""))
	assert.Equal(t, []string{"G1"}, splitNames("G1"))
	assert.Equal(t, []string{"G1", "G2", "G3"}, splitNames("G1,G2,G3"))
}
