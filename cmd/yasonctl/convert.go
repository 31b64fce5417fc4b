package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v2"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/jsonconv"
)

// newCmd_Convert batch-converts a directory of JSON files to YASON (or back)
// with one goroutine per file, reporting progress with a bar. When
// converting JSON to YASON it skips files whose destination already holds
// a document with the same content hash.
func newCmd_Convert() *cli.Command {
	return &cli.Command{
		Name:        "convert",
		Description: "Batch-convert a directory of JSON files to YASON, or YASON back to JSON.",
		ArgsUsage:   "<src-dir> <dst-dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "to-json",
				Usage: "convert YASON files back to JSON instead of JSON to YASON",
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "wrap each output file in zstd compression",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "maximum number of files converted at once",
				Value: 8,
			},
		},
		Action: func(c *cli.Context) error {
			runID := uuid.New().String()
			srcDir := c.Args().Get(0)
			dstDir := c.Args().Get(1)
			if srcDir == "" || dstDir == "" {
				return cli.Exit("src-dir and dst-dir are required", 1)
			}
			if err := os.MkdirAll(dstDir, 0o755); err != nil {
				return cli.Exit(err, 1)
			}

			toJSON := c.Bool("to-json")
			srcExt, dstExt := ".json", ".yason"
			if toJSON {
				srcExt, dstExt = ".yason", ".json"
			}

			var files []string
			err := filepath.WalkDir(srcDir, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.EqualFold(filepath.Ext(p), srcExt) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return cli.Exit(err, 1)
			}
			klog.Infof("[%s] converting %d files from %s to %s", runID, len(files), srcDir, dstDir)

			p := mpb.New(mpb.WithWidth(64))
			bar := p.AddBar(int64(len(files)),
				mpb.PrependDecorators(decor.Name("convert")),
				mpb.AppendDecorators(decor.CountersNoUnit("%d / %d"), decor.Percentage()),
			)

			g, _ := errgroup.WithContext(c.Context)
			g.SetLimit(c.Int("concurrency"))

			startedAt := time.Now()
			for _, src := range files {
				src := src
				g.Go(func() error {
					defer bar.Increment()
					rel, err := filepath.Rel(srcDir, src)
					if err != nil {
						return err
					}
					dst := filepath.Join(dstDir, strings.TrimSuffix(rel, srcExt)+dstExt)
					return convertOne(src, dst, toJSON, c.Bool("compress"))
				})
			}
			if err := g.Wait(); err != nil {
				return cli.Exit(err, 1)
			}
			p.Wait()
			klog.Infof("[%s] converted %d files in %s", runID, len(files), time.Since(startedAt))
			return nil
		},
	}
}

func convertOne(src, dst string, toJSON, compress bool) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	var out []byte
	if toJSON {
		doc, err := yason.Decode(data)
		if err != nil {
			return err
		}
		text, err := jsonconv.ToJSON(doc.AsYason())
		if err != nil {
			return err
		}
		out = []byte(text)
	} else {
		doc, err := jsonconv.Parse(data)
		if err != nil {
			return err
		}
		if existing, rerr := os.ReadFile(dst); rerr == nil {
			if existingDoc, derr := yason.Decode(decompressIfNeeded(existing, compress)); derr == nil {
				if existingDoc.AsYason().Hash() == doc.AsYason().Hash() {
					return nil
				}
			}
		}
		out = doc.AsYason().Bytes()
	}

	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		out = enc.EncodeAll(out, nil)
		enc.Close()
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, out, 0o644)
}

func decompressIfNeeded(data []byte, compressed bool) []byte {
	if !compressed {
		return data
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return data
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return data
	}
	return out
}
