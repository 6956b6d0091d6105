/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/stash"
)

const maxTextColumn = 50

func newPrintCmd() *cobra.Command {
	printCmd := &cobra.Command{
		Use:   "print <file>",
		Short: "List the chunks of a PNG file",
		Long: `Print every chunk of a PNG file.

The text format prints one line per chunk with its data as text, or a placeholder for
binary data. The table and json formats add the type, length, CRC and property bits.

Examples:
  pngstash print secret.png
  pngstash print secret.png --format table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			data, err := container.GetFileStore().Read(args[0])
			if err != nil {
				return err
			}

			svc := container.GetStash()
			out := cmd.OutOrStdout()

			switch rt.cfg.Output.Format {
			case "text", "":
				lines, err := svc.Print(data)
				if err != nil {
					return err
				}
				for _, line := range lines {
					if _, err := fmt.Fprintln(out, line); err != nil {
						return err
					}
				}
				return nil
			case "table":
				infos, err := svc.Inspect(data)
				if err != nil {
					return err
				}
				return outputChunksTable(out, infos)
			case "json":
				infos, err := svc.Inspect(data)
				if err != nil {
					return err
				}
				return outputChunksJSON(out, infos)
			default:
				return fmt.Errorf("unknown format %q (want text, table or json)", rt.cfg.Output.Format)
			}
		},
	}

	printCmd.Flags().StringP("format", "f", "text", "Output format: text, table or json")
	return printCmd
}

func outputChunksTable(out io.Writer, infos []stash.ChunkInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "INDEX\tTYPE\tLENGTH\tCRC\tFLAGS\tTEXT")
	for _, info := range infos {
		text := info.Text
		if runes := []rune(text); len(runes) > maxTextColumn {
			text = string(runes[:maxTextColumn-3]) + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%08x\t%s\t%s\n",
			info.Index, info.Type, info.Length, info.CRC, formatFlags(info), text)
	}

	return w.Flush()
}

func outputChunksJSON(out io.Writer, infos []stash.ChunkInfo) error {
	if infos == nil {
		infos = []stash.ChunkInfo{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(infos)
}

// formatFlags lists the set property bits, "-" when none are
func formatFlags(info stash.ChunkInfo) string {
	var flags []string
	if info.Critical {
		flags = append(flags, "critical")
	}
	if info.Public {
		flags = append(flags, "public")
	}
	if !info.Valid {
		flags = append(flags, "reserved")
	}
	if info.SafeToCopy {
		flags = append(flags, "safe-to-copy")
	}
	if info.Sealed {
		flags = append(flags, "sealed")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
