package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevyatovsky-hpmd/haconfig/pkg/parser/parserconfig"
)

func TestAddressResolution_HeaderWins(t *testing.T) {
	t.Run("no binds", func(t *testing.T) {
		conf, err := New().ParseFromString("frontend web 0.0.0.0:80\n    mode http\n")
		require.NoError(t, err)
		fe := conf.Frontend("web")
		require.NotNil(t, fe)
		assert.Equal(t, "0.0.0.0", fe.Host)
		assert.Equal(t, "80", fe.Port)
	})

	t.Run("binds present", func(t *testing.T) {
		// An explicit header address wins even when binds are present.
		config := `frontend web 0.0.0.0:80
    bind 127.0.0.1:8080
`
		conf, err := New().ParseFromString(config)
		require.NoError(t, err)
		fe := conf.Frontend("web")
		require.NotNil(t, fe)
		assert.Equal(t, "0.0.0.0", fe.Host)
		assert.Equal(t, "80", fe.Port)
	})
}

func TestAddressResolution_FirstBindWins(t *testing.T) {
	config := `frontend web
    bind 127.0.0.1:8080
    bind 127.0.0.1:9090
`

	conf, err := New().ParseFromString(config)
	require.NoError(t, err)
	fe := conf.Frontend("web")
	require.NotNil(t, fe)
	assert.Equal(t, "127.0.0.1", fe.Host)
	assert.Equal(t, "8080", fe.Port)
	// Both binds are still part of the model.
	assert.Len(t, fe.Binds, 2)
}

func TestAddressResolution_Missing(t *testing.T) {
	conf, err := New().ParseFromString("frontend web\n    mode http\n")
	assert.Nil(t, conf)
	var missing *MissingAddressError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "web", missing.Proxy)
	assert.Contains(t, err.Error(), `"web"`)
}

func TestAddressResolution_ListenMatchesFrontend(t *testing.T) {
	conf, err := New().ParseFromString("listen app\n    bind 10.1.2.3:443 ssl\n")
	require.NoError(t, err)
	l := conf.Listen("app")
	require.NotNil(t, l)
	assert.Equal(t, "10.1.2.3", l.Host)
	assert.Equal(t, "443", l.Port)

	_, err = New().ParseFromString("listen app2\n    mode tcp\n")
	var missing *MissingAddressError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "listen", missing.Section)
	assert.Equal(t, "app2", missing.Proxy)
}

func TestBuildUserlist(t *testing.T) {
	config := `userlist U
    group G1
    user alice password x1 groups G1
`

	conf, err := New().ParseFromString(config)
	require.NoError(t, err)

	ul := conf.Userlist("U")
	require.NotNil(t, ul)

	require.Len(t, ul.Groups, 1)
	assert.Equal(t, parserconfig.Group{Name: "G1", Users: nil}, ul.Groups[0])

	require.Len(t, ul.Users, 1)
	assert.Equal(t, parserconfig.User{
		Name:       "alice",
		Passwd:     "x1",
		PasswdType: "password",
		Groups:     []string{"G1"},
	}, ul.Users[0])
}

func TestBuildServer_AttributeTokens(t *testing.T) {
	config := `backend pool
    server web1 10.0.0.1:80 maxconn 1024 weight 3 check inter 2000 rise 2 fall 3
    server bare 10.0.0.2:80
`

	conf, err := New().ParseFromString(config)
	require.NoError(t, err)

	be := conf.Backend("pool")
	require.NotNil(t, be)
	require.Len(t, be.Servers, 2)

	assert.Equal(t, parserconfig.Server{
		Name: "web1",
		Host: "10.0.0.1",
		Port: "80",
		Attributes: []string{
			"maxconn", "1024", "weight", "3", "check",
			"inter", "2000", "rise", "2", "fall", "3",
		},
	}, be.Servers[0])

	assert.Nil(t, be.Servers[1].Attributes)
}

func TestBuildUseBackend_Variants(t *testing.T) {
	config := `frontend web *:80
    use_backend api if is_api
    use_backend fallback unless is_api
    default_backend static
`

	conf, err := New().ParseFromString(config)
	require.NoError(t, err)

	fe := conf.Frontend("web")
	require.Len(t, fe.UseBackends, 3)

	assert.Equal(t, parserconfig.UseBackend{
		Backend: "api", Operator: "if", Condition: "is_api",
	}, fe.UseBackends[0])
	assert.Equal(t, parserconfig.UseBackend{
		Backend: "fallback", Operator: "unless", Condition: "is_api",
	}, fe.UseBackends[1])
	assert.Equal(t, parserconfig.UseBackend{
		Backend: "static", IsDefault: true,
	}, fe.UseBackends[2])
}

func TestBuildGlobal_KeepsOnlyDirectives(t *testing.T) {
	config := `global
    daemon
    option something-odd
`

	conf, err := New().ParseFromString(config)
	require.NoError(t, err)

	require.NotNil(t, conf.Global)
	assert.Equal(t, []parserconfig.Directive{{Keyword: "daemon", Value: ""}}, conf.Global.Configs)
	assert.Equal(t, []parserconfig.Directive{{Keyword: "something-odd", Value: ""}}, conf.Global.Options)
}
