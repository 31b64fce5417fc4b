package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/jsonconv"
	"github.com/yashan-technologies/yason-go/yason/path"
)

// newCmd_Query runs a JSON-path expression against a document, accepting
// either YASON or JSON input and printing every matched value as JSON.
func newCmd_Query() *cli.Command {
	return &cli.Command{
		Name:        "query",
		Description: "Evaluate a JSON-path expression against a YASON or JSON document.",
		ArgsUsage:   "<path-expression> [input]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json-input",
				Usage: "treat input as JSON text instead of raw YASON bytes",
			},
			&cli.BoolFlag{
				Name:  "exists",
				Usage: "print only whether the path matches, instead of the matched values",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return cli.Exit("path-expression is required", 1)
			}
			startedAt := time.Now()
			defer func() {
				klog.V(2).Infof("query finished in %s", time.Since(startedAt))
			}()

			exprText := c.Args().Get(0)
			expr, err := path.Parse(exprText)
			if err != nil {
				return cli.Exit(err, 1)
			}

			data, err := readInput(c.Args().Get(1))
			if err != nil {
				return cli.Exit(err, 1)
			}

			var doc *yason.YasonBuf
			if c.Bool("json-input") {
				doc, err = jsonconv.Parse(data)
			} else {
				doc, err = yason.Decode(data)
			}
			if err != nil {
				return cli.Exit(err, 1)
			}

			if c.Bool("exists") {
				ok, err := path.Exists(expr, doc.AsYason())
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Println(ok)
				return nil
			}

			var scratch []yason.Value
			result, err := path.Query(expr, doc.AsYason(), true, &scratch)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if result.IsEmpty() {
				klog.V(2).Info("query matched no values")
				return nil
			}

			matched, err := path.ValuesToYason(result.Values)
			if err != nil {
				return cli.Exit(err, 1)
			}
			text, err := jsonconv.ToJSON(matched.AsYason())
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Println(text)
			return nil
		},
	}
}
