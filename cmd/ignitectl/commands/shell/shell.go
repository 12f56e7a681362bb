// Package shell implements an interactive REPL for ignitectl.
package shell

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/prompt"
	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

var valueTypes = []string{"string", "i32", "i64", "f64", "bool", "uuid"}

// Cmd drives an interactive session against one cache, prompting for an
// operation and its arguments in a loop until the user quits.
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session against a cache",
	Long: `Open a connection and repeatedly prompt for a cache and an
operation to run against it, until you choose "quit".

Examples:
  ignitectl shell`,
	RunE: runShell,
}

var operations = []prompt.SelectOption{
	{Label: "get", Value: "get", Description: "Fetch the value stored under a key"},
	{Label: "put", Value: "put", Description: "Store a value under a key"},
	{Label: "remove", Value: "remove", Description: "Remove the entry stored under a key"},
	{Label: "size", Value: "size", Description: "Count the entries in the cache"},
	{Label: "switch cache", Value: "switch", Description: "Operate on a different cache"},
	{Label: "quit", Value: "quit", Description: "Leave the shell"},
}

func runShell(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	cacheName, err := promptCacheName()
	if err != nil {
		return cmdutil.HandleAbort(err)
	}

	for {
		op, err := prompt.Select(fmt.Sprintf("[%s] choose an operation", cacheName), operations)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}

		switch op {
		case "quit":
			return nil
		case "switch":
			cacheName, err = promptCacheName()
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
		default:
			if err := runOperation(client.Cache(cacheName), op); err != nil {
				if cmdutil.HandleAbort(err) != nil {
					fmt.Println("error:", err)
				}
			}
		}
	}
}

func promptCacheName() (string, error) {
	return prompt.InputRequired("Cache name")
}

func runOperation(c igniteclient.Cache, op string) error {
	switch op {
	case "get":
		return runGet(c)
	case "put":
		return runPut(c)
	case "remove":
		return runRemove(c)
	case "size":
		return runSize(c)
	default:
		return errors.New("unknown operation")
	}
}

func runGet(c igniteclient.Cache) error {
	key, err := promptValue("Key")
	if err != nil {
		return err
	}
	v, err := c.Get(key)
	if err != nil {
		return err
	}
	fmt.Println(cmdutil.FormatValue(v))
	return nil
}

func runPut(c igniteclient.Cache) error {
	key, err := promptValue("Key")
	if err != nil {
		return err
	}
	value, err := promptValue("Value")
	if err != nil {
		return err
	}
	if err := c.Put(key, value); err != nil {
		return err
	}
	fmt.Println("stored")
	return nil
}

func runRemove(c igniteclient.Cache) error {
	key, err := promptValue("Key")
	if err != nil {
		return err
	}
	removed, err := c.RemoveKey(key)
	if err != nil {
		return err
	}
	fmt.Println(cmdutil.BoolToYesNo(removed))
	return nil
}

func runSize(c igniteclient.Cache) error {
	n, err := c.Size()
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}

func promptValue(label string) (binary.Value, error) {
	kind, err := prompt.SelectString(label+" type", valueTypes)
	if err != nil {
		return nil, err
	}
	raw, err := prompt.InputRequired(label)
	if err != nil {
		return nil, err
	}
	return cmdutil.ParseValue(kind, raw)
}
