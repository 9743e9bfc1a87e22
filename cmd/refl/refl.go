package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/scott-cotton/cli"
)

func reflMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y, cfg.C) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml] -c[bor]", cli.ErrUsage)
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelInfo)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	if cfg.Z {
		if err := cfg.zstdIO(cc); err != nil {
			return err
		}
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// zstdIO wraps the context's input and output in zstd streams. The output
// stream is flushed before any -o file is closed.
func (cfg *MainConfig) zstdIO(cc *cli.Context) error {
	in, out, err := zstdStreams(cc.In, cc.Out)
	if err != nil {
		return err
	}
	cc.In = in
	cc.Out = out
	closeOut := cfg.CloseOut
	cfg.CloseOut = func() error {
		in.Close()
		err := out.Close()
		if closeOut != nil {
			return errors.Join(err, closeOut())
		}
		return err
	}
	return nil
}

func zstdStreams(r io.Reader, w io.Writer) (io.ReadCloser, io.WriteCloser, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		zr.Close()
		return nil, nil, err
	}
	return zr.IOReadCloser(), zw, nil
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
