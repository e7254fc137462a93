package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/omeyang/xdocstore/pkg/config/xconf"
	"github.com/omeyang/xdocstore/pkg/storage/xmongo"
)

const testConfig = `
mongo:
  db_name: app
  servers:
    127.0.0.1: 1
  server_selection_timeout: 100ms
log:
  level: error
  format: json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xdocstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"xdocctl"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCreateCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range createCommands() {
		names[cmd.Name] = true
	}
	for _, name := range []string{
		"ping", "count", "find", "get", "position", "insert", "set",
		"update", "remove", "distinct", "aggregate", "index", "collections",
	} {
		assert.True(t, names[name], "missing command %q", name)
	}
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"count without collection", []string{"count"}, "用法: xdocctl count <coll> [query]"},
		{"get without id", []string{"get", "users"}, "用法: xdocctl get <coll> <id>"},
		{"update missing modifier", []string{"update", "users", "{}"}, "用法: xdocctl update"},
		{"aggregate without stages", []string{"aggregate", "users"}, "用法: xdocctl aggregate"},
		{"too many args", []string{"count", "users", "{}", "extra"}, "用法: xdocctl count"},
		{"ping with args", []string{"ping", "extra"}, "ping 不接受参数"},
		{"collections exists", []string{"collections", "exists"}, "用法: xdocctl collections exists <name>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "参数错误")
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "count", "users")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "错误")

	path := writeConfig(t, "mongo:\n  servers:\n    localhost: 27017\n")
	code, _, stderr = runCLI(t, "-c", path, "count", "users")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, xmongo.ErrEmptyDBName.Error())
}

func TestRun_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, testConfig)
	code, _, stderr := runCLI(t, "-c", path, "--log-level", "loud", "ping")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "日志配置无效")
}

func TestRun_ConnectFailure(t *testing.T) {
	path := writeConfig(t, testConfig)
	code, stdout, stderr := runCLI(t, "-c", path, "-t", "5s", "ping")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "xmongo start")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "--no-such-flag", "ping")
	assert.NotZero(t, code)
}

func TestLoadSettings(t *testing.T) {
	st, err := loadSettings(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "app", st.Mongo.DBName)
	assert.Equal(t, []string{"127.0.0.1:1"}, st.Mongo.Hosts())
	assert.Equal(t, logSettings{Level: "error", Format: "json"}, st.Log)

	st, err = loadSettings(writeConfig(t, "mongo:\n  db_name: app\n  servers:\n    db1.example.com: 27017\n"))
	require.NoError(t, err)
	assert.Equal(t, logSettings{}, st.Log)
	assert.Equal(t, []string{"db1.example.com:27017"}, st.Mongo.Hosts())

	_, err = loadSettings("")
	assert.ErrorIs(t, err, xconf.ErrEmptyPath)
}

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name       string
		flagValue  string
		flagSet    bool
		configured string
		want       string
	}{
		{"default", "warn", false, "", "warn"},
		{"from config", "warn", false, "debug", "debug"},
		{"flag wins", "error", true, "debug", "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLevel(tt.flagValue, tt.flagSet, tt.configured))
		})
	}
}

func TestBuildLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := buildLogger(logSettings{Format: "json"}, "info", &buf)
	require.NoError(t, err)
	logger.Info(context.Background(), "hello")
	require.NoError(t, cleanup())
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, _, err = buildLogger(logSettings{Format: "xml"}, "info", &buf)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "xdocctl.log")
	logger, cleanup, err = buildLogger(logSettings{File: file}, "warn", &buf)
	require.NoError(t, err)
	logger.Warn(context.Background(), "to file")
	require.NoError(t, cleanup())
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()
	assert.Equal(t, oid, parseID(oid.Hex()))
	assert.Equal(t, int64(42), parseID("42"))
	assert.Equal(t, "ann", parseID("ann"))
	assert.Equal(t, "zzzzzzzzzzzzzzzzzzzzzzzz", parseID("zzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestUsageError(t *testing.T) {
	err := error(&usageError{msg: "bad"})
	assert.Equal(t, "bad", err.Error())
	var target *usageError
	assert.True(t, errors.As(err, &target))
	assert.False(t, isCLIUsageError(err))
}

func TestIsCLIUsageError(t *testing.T) {
	assert.True(t, isCLIUsageError(errors.New("flag provided but not defined: -x")))
	assert.True(t, isCLIUsageError(errors.New(`invalid value "x" for flag -limit`)))
	assert.False(t, isCLIUsageError(errors.New("xmongo count app.users: boom")))
}

func TestDocumentArg(t *testing.T) {
	codec := xmongo.NewCodec(nil)
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"_id": 7, "meta": {"seen": {"$date": "2020-01-02T03:04:05.006Z"}}}`), 0o600))

	doc, err := documentArg(codec, "@"+path)
	require.NoError(t, err)
	assert.Equal(t, int32(7), doc["_id"])
	seen, ok := doc["meta"].(map[string]any)["seen"].(time.Time)
	require.True(t, ok, "嵌套的 $date 应解码为 time.Time")
	assert.True(t, time.Date(2020, 1, 2, 3, 4, 5, 6_000_000, time.UTC).Equal(seen))

	doc, err = documentArg(codec, `{"_id": "ann"}`)
	require.NoError(t, err)
	assert.Equal(t, "ann", doc["_id"])

	var uerr *usageError
	_, err = documentArg(codec, "@"+filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorAs(t, err, &uerr)
	_, err = documentArg(codec, `{"_id":`)
	assert.ErrorAs(t, err, &uerr)
}
