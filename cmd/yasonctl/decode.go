package main

import (
	"time"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/jsonconv"
)

// newCmd_Decode renders a YASON document back to JSON text.
func newCmd_Decode() *cli.Command {
	return &cli.Command{
		Name:        "decode",
		Description: "Decode a YASON binary document back into JSON text.",
		ArgsUsage:   "[input.yason]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "indent the rendered JSON",
			},
		},
		Action: func(c *cli.Context) error {
			startedAt := time.Now()
			defer func() {
				klog.V(2).Infof("decode finished in %s", time.Since(startedAt))
			}()

			data, err := readInput(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}

			buf, err := yason.Decode(data)
			if err != nil {
				return cli.Exit(err, 1)
			}

			var text string
			if c.Bool("pretty") {
				text, err = jsonconv.ToJSONPretty(buf.AsYason())
			} else {
				text, err = jsonconv.ToJSON(buf.AsYason())
			}
			if err != nil {
				return cli.Exit(err, 1)
			}

			out, closeOut, err := openOutput(c.String("out"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer closeOut()

			if _, err := out.Write([]byte(text)); err != nil {
				return cli.Exit(err, 1)
			}
			if c.String("out") == "" || c.String("out") == "-" {
				out.Write([]byte("\n"))
			}
			return nil
		},
	}
}
