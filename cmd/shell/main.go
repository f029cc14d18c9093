package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/ashsingh21/naive-btree/cli"
	"github.com/ashsingh21/naive-btree/index/btree"
)

func main() {
	order := flag.Int("order", 3, "B-tree order (max children per internal node), at least 3")
	flag.Parse()
	if *order < btree.MinOrder {
		log.Fatalf("order must be at least %d, got %d", btree.MinOrder, *order)
	}

	tree := btree.New(*order)
	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.NewCli(scanner, os.Stdout, tree)
	demo.Start()
}
