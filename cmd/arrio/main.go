package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arrio/arrio"
	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/codec/mat"
	"github.com/arrio/arrio/dtype"
)

var (
	verbose  bool
	jsonLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "arrio",
	Short: "arrio - inspect and convert multi-dimensional array files",
	Long: `arrio reads and writes multi-dimensional array containers in the
formats this module supports: MATLAB-compatible .mat files, .tsr tensor
archives and legacy .bindata flat-binary files.

The format is selected by the file extension.`,
	SilenceUsage: true,
}

func arrayOptions() []arrio.Option {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if jsonLogs {
		return []arrio.Option{arrio.WithLogger(arrio.NewJSONLogger(level))}
	}
	if verbose {
		return []arrio.Option{arrio.WithLogLevel(level)}
	}
	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the element kind and shape of an array file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := arrio.FromFile(args[0], arrayOptions()...)
		if err != nil {
			return err
		}
		info := a.Type()
		fmt.Fprintf(cmd.OutOrStdout(), "codec: %s\n", a.CodecName())
		fmt.Fprintf(cmd.OutOrStdout(), "dtype: %s\n", info.Dtype)
		fmt.Fprintf(cmd.OutOrStdout(), "shape: %v\n", info.Shape)
		fmt.Fprintf(cmd.OutOrStdout(), "elements: %d\n", info.ElementCount())
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls <file>",
	Short: "List the variables stored in a container file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := codec.Default().ByExtension(args[0])
		if err != nil {
			return err
		}
		switch lister := c.(type) {
		case interface {
			ListNames(path string) ([]string, error)
		}:
			names, err := lister.ListNames(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		case interface {
			ListVariables(path string) (map[int]mat.Entry, error)
		}:
			entries, err := lister.ListVariables(args[0])
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(entries))
			for id := range entries {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			for _, id := range ids {
				e := entries[id]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Name, e.Info)
			}
		default:
			return fmt.Errorf("codec %q does not support listing", c.Name())
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert an array file between formats",
	Long: `Convert loads the source array into memory and saves it through the
codec selected by the destination's extension.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := arrio.FromFile(args[0], arrayOptions()...)
		if err != nil {
			return err
		}
		if err := a.Save(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[1], a.Type())
		return nil
	},
}

var castCmd = &cobra.Command{
	Use:   "cast <src> <dst> <kind>",
	Short: "Convert an array file to a different element kind",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := dtype.ByName(args[2])
		if !ok {
			return fmt.Errorf("unknown element kind %q", args[2])
		}
		a, err := arrio.FromFile(args[0], arrayOptions()...)
		if err != nil {
			return err
		}
		buf, err := a.Cast(kind)
		if err != nil {
			return err
		}
		out, err := arrio.FromData(buf.Type(), buf.Bytes())
		if err != nil {
			return err
		}
		if err := out.Save(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[1], out.Type())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "emit logs as JSON")
	rootCmd.AddCommand(infoCmd, lsCmd, convertCmd, castCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
