// Package cli is an interactive shell over a B-tree.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/ashsingh21/naive-btree/index/btree"
)

// listLimit caps how many keys LIST prints.
const listLimit = 100

type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    *btree.Tree

	ok   *color.Color
	miss *color.Color
	info *color.Color
}

func NewCli(s *bufio.Scanner, out io.Writer, t *btree.Tree) *Cli {
	return &Cli{
		scanner: s,
		out:     out,
		tree:    t,
		ok:      color.New(color.FgGreen),
		miss:    color.New(color.FgRed),
		info:    color.New(color.FgCyan),
	}
}

// Start reads commands until EXIT or end of input.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	c.info.Fprintf(c.out, `
B-Tree CLI (order %d)

Available Commands:
  INSERT <key>... Insert one or more int32 keys
  SEARCH <key>    Report whether key is present
  LIST            Print stored keys in ascending order
  STATS           Print height, splits and arena usage
  SHOW            Print the tree level by level
  CHECK           Validate every reachable node
  EXIT            Terminate this session
`, c.tree.Order())
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// processInput runs one command line and reports whether to keep reading.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.miss.Fprintf(c.out, "Unknown command %q\n", command)
	case "insert":
		c.processInsertCommand(fields[1:])
	case "search":
		c.processSearchCommand(fields[1:])
	case "list":
		c.processListCommand()
	case "stats":
		c.processStatsCommand()
	case "show":
		fmt.Fprint(c.out, c.tree.String())
		if c.tree.Root() == btree.InvalidHandle {
			fmt.Fprintln(c.out)
		}
	case "check":
		if err := c.tree.Check(); err != nil {
			c.miss.Fprintf(c.out, "Check failed: %v\n", err)
			return true
		}
		c.ok.Fprintln(c.out, "OK")
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func parseKey(s string) (int32, error) {
	k, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Newf("invalid key %q: must be a 32-bit integer", s)
	}
	return int32(k), nil
}

func (c *Cli) processInsertCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: INSERT <key>...")
		return
	}
	keys := make([]int32, 0, len(args))
	for _, a := range args {
		k, err := parseKey(a)
		if err != nil {
			c.miss.Fprintln(c.out, err)
			return
		}
		keys = append(keys, k)
	}
	for _, k := range keys {
		c.tree.Insert(k)
	}
	fmt.Fprint(c.out, c.tree.String())
}

func (c *Cli) processSearchCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEARCH <key>")
		return
	}
	k, err := parseKey(args[0])
	if err != nil {
		c.miss.Fprintln(c.out, err)
		return
	}
	if c.tree.Search(k) {
		c.ok.Fprintln(c.out, "Found.")
		return
	}
	c.miss.Fprintln(c.out, "Key not found.")
}

func (c *Cli) processListCommand() {
	var keys []string
	more := false
	c.tree.Ascend(func(k int32) bool {
		if len(keys) == listLimit {
			more = true
			return false
		}
		keys = append(keys, strconv.Itoa(int(k)))
		return true
	})
	line := strings.Join(keys, " ")
	if more {
		line += " ..."
	}
	fmt.Fprintln(c.out, line)
}

func (c *Cli) processStatsCommand() {
	s := c.tree.Stats()
	fmt.Fprintf(c.out, "keys=%d height=%d splits=%d root_splits=%d slots=%d live=%d leaked=%d\n",
		s.Keys, s.Height, s.Splits, s.RootSplits, s.Slots, s.Live, s.Leaked())
}
