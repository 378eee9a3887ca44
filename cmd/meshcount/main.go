// meshcount decodes an STL or PLY mesh file and prints its triangle count.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/meshproc/internal/config"
	"github.com/Faultbox/meshproc/internal/logger"
	"github.com/Faultbox/meshproc/pkg/formats"
)

const usage = "Expected arguments: /path/to/mesh/file"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "meshcount /path/to/mesh/file",
		Short: "Count the triangles in an STL or PLY mesh",
		Long: `meshcount decodes a binary or ASCII STL file, or an ASCII PLY file,
and prints the number of triangles it holds.

The format is chosen by file extension (.stl or .ply, any case).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New(usage)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &flags, args[0])
		},
	}

	flags.Register(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, flags *config.Flags, path string) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cmd.ErrOrStderr()); err != nil {
		return err
	}
	defer logger.Sync()

	logger.Debug("decoding mesh", zap.String("path", path))
	start := time.Now()

	mesh, err := formats.ParseMeshFile(path)
	if err != nil {
		logger.Debug("decode failed", zap.String("path", path), zap.Error(err))
		return err
	}

	if cfg.Decode.RepairNormals && mesh.Format == formats.FormatSTL {
		if n := mesh.RepairNormals(); n > 0 {
			logger.Warn("replaced invalid facet normals", zap.String("path", path), zap.Int("count", n))
		}
	}

	logger.Debug("decoded mesh",
		zap.String("path", path),
		zap.Stringer("format", mesh.Format),
		zap.String("encoding", mesh.Encoding),
		zap.Int("triangles", mesh.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	out := cmd.OutOrStdout()
	if mesh.Empty {
		fmt.Fprintln(out, "Empty file")
		return nil
	}
	fmt.Fprintf(out, "Number of triangles: %d\n", mesh.Len())

	if cfg.Output.Summary {
		printSummary(out, mesh)
	}
	return nil
}

func printSummary(w io.Writer, mesh *formats.Mesh) {
	fmt.Fprintf(w, "Format:   %s (%s)\n", mesh.Format, mesh.Encoding)
	if mesh.Name != "" {
		fmt.Fprintf(w, "Name:     %s\n", mesh.Name)
	}
	if lo, hi, ok := mesh.Bounds(); ok {
		fmt.Fprintf(w, "Min:      %g %g %g\n", lo.X, lo.Y, lo.Z)
		fmt.Fprintf(w, "Max:      %g %g %g\n", hi.X, hi.Y, hi.Z)
	}
}
