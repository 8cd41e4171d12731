package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/theJ8910/jnbt/nbt"
	"github.com/theJ8910/jnbt/region"
)

func main() {
	app := &cli.App{
		Name:  "jnbtcat",
		Usage: "inspect NBT documents and region files",
		Commands: []*cli.Command{
			{
				Name:      "dump",
				Usage:     "parse an NBT file and print its tree",
				ArgsUsage: "<file>",
				Action:    dumpCommand,
			},
			{
				Name:      "region",
				Usage:     "inspect a region file",
				ArgsUsage: "<file.mca>",
				Subcommands: []*cli.Command{
					{
						Name:      "list",
						Usage:     "list occupied chunk coordinates",
						ArgsUsage: "<file.mca>",
						Action:    regionListCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("dump: missing <file> argument")
	}

	doc, err := nbt.Load(path)
	if err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}

	printNode(doc.RootName, doc.Root, 0)
	return nil
}

func printNode(name string, n *nbt.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	switch n.Kind() {
	case nbt.KindCompound:
		c, _ := n.AsCompound()
		fmt.Printf("%sTAG_Compound(%q): %d entries\n", indent, name, c.Len())
		for _, childName := range c.Names() {
			child, _ := c.Get(childName)
			printNode(childName, child, depth+1)
		}
	case nbt.KindList:
		l, _ := n.AsList()
		fmt.Printf("%sTAG_List(%q): %d entries of %s\n", indent, name, l.Len(), l.ElementKind())
		for i, item := range l.Items() {
			printNode(fmt.Sprintf("[%d]", i), item, depth+1)
		}
	default:
		fmt.Printf("%s%s(%q): %v\n", indent, n.Kind(), name, scalarValue(n))
	}
}

func scalarValue(n *nbt.Node) interface{} {
	switch n.Kind() {
	case nbt.KindByte:
		v, _ := n.AsByte()
		return v
	case nbt.KindShort:
		v, _ := n.AsShort()
		return v
	case nbt.KindInt:
		v, _ := n.AsInt()
		return v
	case nbt.KindLong:
		v, _ := n.AsLong()
		return v
	case nbt.KindFloat:
		v, _ := n.AsFloat()
		return v
	case nbt.KindDouble:
		v, _ := n.AsDouble()
		return v
	case nbt.KindString:
		v, _ := n.AsString()
		return v
	case nbt.KindByteArray:
		v, _ := n.AsByteArray()
		return fmt.Sprintf("%d bytes", len(v))
	case nbt.KindIntArray:
		v, _ := n.AsIntArray()
		return fmt.Sprintf("%d ints", len(v))
	case nbt.KindLongArray:
		v, _ := n.AsLongArray()
		return fmt.Sprintf("%d longs", len(v))
	default:
		return nil
	}
}

func regionListCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("region list: missing <file.mca> argument")
	}

	r, err := region.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer r.Close()

	count := 0
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			if !r.ChunkExists(x, z) {
				continue
			}
			count++
			ts, err := r.Timestamp(x, z)
			if err != nil {
				fmt.Printf("chunk (%d,%d): error reading timestamp: %s\n", x, z, err)
				continue
			}
			fmt.Printf("chunk (%d,%d): timestamp %d\n", x, z, ts)
		}
	}
	fmt.Printf("%d chunks present\n", count)
	return nil
}
