package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmdFrame(args ...string) Frame {
	items := make(Array, len(args))
	for i, a := range args {
		items[i] = BulkString(a)
	}
	return items
}

func TestParseCommandPing(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("PING"))
	require.NoError(t, err)
	assert.Equal(t, CmdPing, cmd.Kind)
}

func TestParseCommandCaseInsensitiveName(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("ping"))
	require.NoError(t, err)
	assert.Equal(t, CmdPing, cmd.Kind)
}

func TestParseCommandNotAnArray(t *testing.T) {
	_, err := ParseCommand(SimpleString("PING"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an Array")
}

func TestParseCommandEmptyArray(t *testing.T) {
	_, err := ParseCommand(Array{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestParseCommandUnknown(t *testing.T) {
	_, err := ParseCommand(cmdFrame("FROBNICATE"))
	require.Error(t, err)
	assert.Equal(t, "Unknown command: FROBNICATE", err.Error())
}

func TestParseCommandEcho(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("ECHO", "hey"))
	require.NoError(t, err)
	assert.Equal(t, CmdEcho, cmd.Kind)
	assert.Equal(t, "hey", string(cmd.Value))

	_, err = ParseCommand(cmdFrame("ECHO"))
	require.Error(t, err)
	assert.Equal(t, "ERR wrong number of arguments for 'echo' command", err.Error())
}

func TestParseCommandSet(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("SET", "foo", "bar"))
	require.NoError(t, err)
	assert.Equal(t, CmdSet, cmd.Kind)
	assert.Equal(t, "foo", cmd.Key)
	assert.Equal(t, "bar", string(cmd.Value))
	assert.False(t, cmd.HasTTL)
}

func TestParseCommandSetWithPX(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("SET", "k", "v", "PX", "100"))
	require.NoError(t, err)
	require.True(t, cmd.HasTTL)
	assert.Equal(t, 100*time.Millisecond, cmd.TTL)

	// PX is case-insensitive.
	cmd, err = ParseCommand(cmdFrame("SET", "k", "v", "px", "5"))
	require.NoError(t, err)
	assert.True(t, cmd.HasTTL)
}

func TestParseCommandSetErrors(t *testing.T) {
	_, err := ParseCommand(cmdFrame("SET", "onlykey"))
	require.Error(t, err)
	assert.Equal(t, "ERR wrong number of arguments for 'set' command", err.Error())

	_, err = ParseCommand(cmdFrame("SET", "k", "v", "EX", "100"))
	require.Error(t, err)
	assert.Equal(t, "ERR syntax error", err.Error())

	_, err = ParseCommand(cmdFrame("SET", "k", "v", "PX", "notanumber"))
	require.Error(t, err)
	assert.Equal(t, "ERR value is not an integer", err.Error())
}

func TestParseCommandGet(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("GET", "foo"))
	require.NoError(t, err)
	assert.Equal(t, CmdGet, cmd.Kind)
	assert.Equal(t, "foo", cmd.Key)

	_, err = ParseCommand(cmdFrame("GET"))
	require.Error(t, err)
	assert.Equal(t, "ERR wrong number of arguments for 'get' command", err.Error())
}

func TestParseCommandRPushMultiValue(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("RPUSH", "L", "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, CmdRPush, cmd.Kind)
	require.Len(t, cmd.Values, 3)
	assert.Equal(t, "a", string(cmd.Values[0]))
	assert.Equal(t, "c", string(cmd.Values[2]))

	_, err = ParseCommand(cmdFrame("RPUSH", "L"))
	require.Error(t, err)
	assert.Equal(t, "ERR wrong number of arguments for 'rpush' command", err.Error())
}

func TestParseCommandLRange(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("LRANGE", "L", "0", "-1"))
	require.NoError(t, err)
	assert.Equal(t, CmdLRange, cmd.Kind)
	assert.Equal(t, int64(0), cmd.Start)
	assert.Equal(t, int64(-1), cmd.End)

	_, err = ParseCommand(cmdFrame("LRANGE", "L", "notanumber", "1"))
	require.Error(t, err)
	assert.Equal(t, "ERR value is not an integer", err.Error())
}

func TestParseCommandLLen(t *testing.T) {
	cmd, err := ParseCommand(cmdFrame("LLEN", "L"))
	require.NoError(t, err)
	assert.Equal(t, CmdLLen, cmd.Kind)
}

func TestExecutePingEchoSetGet(t *testing.T) {
	store := NewStore()

	assert.Equal(t, SimpleString("PONG"), Execute(Command{Kind: CmdPing}, store))
	assert.Equal(t, BulkString("hey"), Execute(Command{Kind: CmdEcho, Value: []byte("hey")}, store))

	setCmd := Command{Kind: CmdSet, Key: "foo", Value: []byte("bar")}
	assert.Equal(t, SimpleString("OK"), Execute(setCmd, store))

	getCmd := Command{Kind: CmdGet, Key: "foo"}
	assert.Equal(t, BulkString("bar"), Execute(getCmd, store))
}

func TestExecuteGetMissingReturnsNull(t *testing.T) {
	store := NewStore()
	assert.Equal(t, Null{}, Execute(Command{Kind: CmdGet, Key: "missing"}, store))
}

func TestExecuteListPushAndRange(t *testing.T) {
	store := NewStore()

	reply := Execute(Command{Kind: CmdRPush, Key: "L", Values: [][]byte{[]byte("a"), []byte("b"), []byte("c")}}, store)
	assert.Equal(t, Integer(3), reply)

	reply = Execute(Command{Kind: CmdLPush, Key: "L", Values: [][]byte{[]byte("z")}}, store)
	assert.Equal(t, Integer(4), reply)

	reply = Execute(Command{Kind: CmdLRange, Key: "L", Start: 0, End: -1}, store)
	assert.Equal(t, Array{BulkString("z"), BulkString("a"), BulkString("b"), BulkString("c")}, reply)
}

func TestExecuteWrongTypeOnPushAndGetLeavesEntryIntact(t *testing.T) {
	store := NewStore()
	Execute(Command{Kind: CmdSet, Key: "s", Value: []byte("hello")}, store)

	reply := Execute(Command{Kind: CmdRPush, Key: "s", Values: [][]byte{[]byte("x")}}, store)
	assert.Equal(t, SimpleError(wrongTypeMsg), reply)

	reply = Execute(Command{Kind: CmdGet, Key: "s"}, store)
	assert.Equal(t, BulkString("hello"), reply)
}

func TestEndToEndScenarios(t *testing.T) {
	store := NewStore()

	// A list built from RPUSH and LPUSH then read back with LRANGE.
	assert.Equal(t, Integer(3), Execute(Command{Kind: CmdRPush, Key: "L", Values: [][]byte{[]byte("a"), []byte("b"), []byte("c")}}, store))
	assert.Equal(t, Integer(4), Execute(Command{Kind: CmdLPush, Key: "L", Values: [][]byte{[]byte("z")}}, store))
	assert.Equal(t,
		Array{BulkString("z"), BulkString("a"), BulkString("b"), BulkString("c")},
		Execute(Command{Kind: CmdLRange, Key: "L", Start: 0, End: -1}, store))

	// SET then RPUSH against a string key.
	Execute(Command{Kind: CmdSet, Key: "s", Value: []byte("hello")}, store)
	assert.Equal(t, SimpleError(wrongTypeMsg), Execute(Command{Kind: CmdRPush, Key: "s", Values: [][]byte{[]byte("x")}}, store))
	assert.Equal(t, BulkString("hello"), Execute(Command{Kind: CmdGet, Key: "s"}, store))
}

func TestExecuteSetWithPXExpiresAcrossTime(t *testing.T) {
	store := NewStore()
	Execute(Command{Kind: CmdSet, Key: "k", Value: []byte("v"), HasTTL: true, TTL: 50 * time.Millisecond}, store)

	assert.Equal(t, BulkString("v"), Execute(Command{Kind: CmdGet, Key: "k"}, store))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, Null{}, Execute(Command{Kind: CmdGet, Key: "k"}, store))
}
