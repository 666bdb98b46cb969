package system

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/julianstephens/qingka/internal/cli"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show store location."`
	Keys   DebugKeysCmd   `cmd:"" help:"List keys in a namespace."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump a stored value as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct {
	Namespace string `arg:"" help:"Namespace to list (profile, feed, milestones, assistant)."`
}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	if err := checkNamespace(cmd.Namespace); err != nil {
		return err
	}
	keys, err := ctx.Store.Keys(cmd.Namespace)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, key := range keys {
		ctx.Println(key)
	}
	return nil
}

type DebugDumpCmd struct {
	Namespace string `arg:"" help:"Namespace of the value."`
	Key       string `arg:"" help:"Key of the value."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if err := checkNamespace(cmd.Namespace); err != nil {
		return err
	}
	raw, ok, err := ctx.Store.Get(cmd.Namespace, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to read value: %w", err)
	}
	if !ok {
		return fmt.Errorf("no value at %s/%s", cmd.Namespace, cmd.Key)
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// Not JSON; print it as stored.
		ctx.Println(raw)
		return nil
	}
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

func checkNamespace(ns string) error {
	if !slices.Contains(Namespaces, ns) {
		return fmt.Errorf("unknown namespace %q", ns)
	}
	return nil
}
