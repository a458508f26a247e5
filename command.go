package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseCommand validates a request Frame and produces a typed Command.
// Constructing a Command is proof that validation succeeded; execution
// never needs to re-check argument shape.
func ParseCommand(f Frame) (Command, error) {
	args, ok := f.(Array)
	if !ok {
		return Command{}, fmt.Errorf("Command must be an Array")
	}
	if len(args) == 0 {
		return Command{}, fmt.Errorf("Command cannot be empty")
	}

	name, err := commandName(args[0])
	if err != nil {
		return Command{}, err
	}

	switch name {
	case "PING":
		return Command{Kind: CmdPing}, nil
	case "ECHO":
		return parseEcho(args)
	case "SET":
		return parseSet(args)
	case "GET":
		return parseGet(args)
	case "RPUSH":
		return parsePush(args, CmdRPush)
	case "LPUSH":
		return parsePush(args, CmdLPush)
	case "LRANGE":
		return parseLRange(args)
	case "LLEN":
		return parseLLen(args)
	default:
		return Command{}, fmt.Errorf("Unknown command: %s", name)
	}
}

func commandName(f Frame) (string, error) {
	switch v := f.(type) {
	case SimpleString:
		return strings.ToUpper(string(v)), nil
	case BulkString:
		return strings.ToUpper(string(v)), nil
	default:
		return "", fmt.Errorf("Command name must be a string")
	}
}

func bulkArg(f Frame) ([]byte, bool) {
	bs, ok := f.(BulkString)
	if !ok {
		return nil, false
	}
	return []byte(bs), true
}

func parseEcho(args Array) (Command, error) {
	if len(args) != 2 {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'echo' command")
	}
	msg, ok := bulkArg(args[1])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'echo' command")
	}
	return Command{Kind: CmdEcho, Value: msg}, nil
}

func parseSet(args Array) (Command, error) {
	if len(args) != 3 && len(args) != 5 {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'set' command")
	}

	key, ok := bulkArg(args[1])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'set' command")
	}
	value, ok := bulkArg(args[2])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'set' command")
	}

	cmd := Command{Kind: CmdSet, Key: string(key), Value: value}

	if len(args) == 5 {
		opt, ok := bulkArg(args[3])
		if !ok || !strings.EqualFold(string(opt), "PX") {
			return Command{}, fmt.Errorf("ERR syntax error")
		}
		msBytes, ok := bulkArg(args[4])
		if !ok {
			return Command{}, fmt.Errorf("ERR syntax error")
		}
		ms, err := strconv.ParseInt(string(msBytes), 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("ERR value is not an integer")
		}
		cmd.HasTTL = true
		cmd.TTL = time.Duration(ms) * time.Millisecond
	}

	return cmd, nil
}

func parseGet(args Array) (Command, error) {
	if len(args) != 2 {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'get' command")
	}
	key, ok := bulkArg(args[1])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'get' command")
	}
	return Command{Kind: CmdGet, Key: string(key)}, nil
}

func parsePush(args Array, kind CommandKind) (Command, error) {
	name := "rpush"
	if kind == CmdLPush {
		name = "lpush"
	}
	if len(args) < 3 {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for '%s' command", name)
	}
	key, ok := bulkArg(args[1])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for '%s' command", name)
	}

	values := make([][]byte, 0, len(args)-2)
	for _, a := range args[2:] {
		v, ok := bulkArg(a)
		if !ok {
			return Command{}, fmt.Errorf("ERR wrong number of arguments for '%s' command", name)
		}
		values = append(values, v)
	}

	return Command{Kind: kind, Key: string(key), Values: values}, nil
}

func parseLRange(args Array) (Command, error) {
	if len(args) != 4 {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'lrange' command")
	}
	key, ok := bulkArg(args[1])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'lrange' command")
	}
	start, err := parseIndexArg(args[2])
	if err != nil {
		return Command{}, err
	}
	end, err := parseIndexArg(args[3])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdLRange, Key: string(key), Start: start, End: end}, nil
}

func parseIndexArg(f Frame) (int64, error) {
	raw, ok := bulkArg(f)
	if !ok {
		return 0, fmt.Errorf("ERR value is not an integer")
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ERR value is not an integer")
	}
	return n, nil
}

func parseLLen(args Array) (Command, error) {
	if len(args) != 2 {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'llen' command")
	}
	key, ok := bulkArg(args[1])
	if !ok {
		return Command{}, fmt.Errorf("ERR wrong number of arguments for 'llen' command")
	}
	return Command{Kind: CmdLLen, Key: string(key)}, nil
}

const wrongTypeMsg = "WRONGTYPE Operation against a key holding the wrong kind of value"

// Execute runs cmd against store and produces the reply Frame. It never
// panics on a Command that passed ParseCommand: every runtime ambiguity
// (missing key, expired key, wrong type) has a defined reply here.
func Execute(cmd Command, store *Store) Frame {
	switch cmd.Kind {
	case CmdPing:
		return SimpleString("PONG")

	case CmdEcho:
		return BulkString(cmd.Value)

	case CmdSet:
		store.Set(cmd.Key, cmd.Value, cmd.TTL, cmd.HasTTL)
		return SimpleString("OK")

	case CmdGet:
		value, ok, err := store.Get(cmd.Key)
		if err != nil {
			return SimpleError(wrongTypeMsg)
		}
		if !ok {
			return Null{}
		}
		return BulkString(value)

	case CmdRPush:
		n, err := store.RPush(cmd.Key, cmd.Values)
		if err != nil {
			return SimpleError(wrongTypeMsg)
		}
		return Integer(n)

	case CmdLPush:
		n, err := store.LPush(cmd.Key, cmd.Values)
		if err != nil {
			return SimpleError(wrongTypeMsg)
		}
		return Integer(n)

	case CmdLRange:
		values, err := store.LRange(cmd.Key, cmd.Start, cmd.End)
		if err != nil {
			return SimpleError(wrongTypeMsg)
		}
		reply := make(Array, len(values))
		for i, v := range values {
			reply[i] = BulkString(v)
		}
		return reply

	case CmdLLen:
		n, err := store.LLen(cmd.Key)
		if err != nil {
			return SimpleError(wrongTypeMsg)
		}
		return Integer(n)

	default:
		return SimpleError("ERR unknown command")
	}
}
