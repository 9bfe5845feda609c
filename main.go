package main

import (
	"log/slog"
	"os"

	"bootimg/convert"
	"bootimg/inspect"
	"bootimg/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers int            `help:"Number of files processed concurrently (0 for one per CPU)" default:"0"`
	Info    inspect.CLICmd `cmd:"" help:"Print the header of every BMP file in a folder"`
	Convert convert.CLICmd `cmd:"" help:"Decode BMP files, crop and scale them, and save them in another format"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("bootimg"),
		kong.Description("Inspect and convert the BMP images shown by the boot menu."),
		kong.UsageOnError(),
	)

	pool := parallel.Start(c.Workers)
	slog.Info("running", "command", kctx.Command(), "workers", pool.Workers())

	if err := kctx.Run(pool.Do, pool.Wait); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
