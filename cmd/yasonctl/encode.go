package main

import (
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/yashan-technologies/yason-go/yason/jsonconv"
)

// newCmd_Encode parses JSON text into a YASON document.
func newCmd_Encode() *cli.Command {
	return &cli.Command{
		Name:        "encode",
		Description: "Encode a JSON document into the YASON binary format.",
		ArgsUsage:   "[input.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file path (default: stdout)",
			},
		},
		Action: func(c *cli.Context) error {
			startedAt := time.Now()
			defer func() {
				klog.V(2).Infof("encode finished in %s", time.Since(startedAt))
			}()

			data, err := readInput(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}

			buf, err := jsonconv.Parse(data)
			if err != nil {
				return cli.Exit(err, 1)
			}

			out, closeOut, err := openOutput(c.String("out"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer closeOut()

			if _, err := out.Write(buf.AsYason().Bytes()); err != nil {
				return cli.Exit(err, 1)
			}
			klog.V(2).Infof("encoded %d bytes of JSON into %d bytes of YASON (hash %x)",
				len(data), len(buf.AsYason().Bytes()), buf.AsYason().Hash())
			return nil
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
