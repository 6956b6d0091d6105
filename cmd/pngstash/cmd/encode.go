/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode <file> <type> <message> [output]",
		Short: "Hide a message in a PNG file",
		Long: `Append a chunk of the given type holding the message and write the result.

The output defaults to output.default_file from the configuration (output.png).

Examples:
  pngstash encode cat.png ruSt "meet at dawn"
  pngstash encode cat.png ruSt "meet at dawn" secret.png --passphrase hunter2`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			filePath, typeText, message := args[0], args[1], args[2]
			output := rt.cfg.Output.DefaultFile
			if len(args) == 4 {
				output = args[3]
			}

			files := container.GetFileStore()
			data, err := files.Read(filePath)
			if err != nil {
				return err
			}

			encoded, err := container.GetStash().Encode(data, typeText, message, passphraseFrom(cmd))
			if err != nil {
				return err
			}

			if err := files.Write(output, encoded); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			rt.logger.Debug("wrote %d bytes to %s", len(encoded), output)
			return nil
		},
	}

	encodeCmd.Flags().String("passphrase", "", "Seal the message with this passphrase")
	return encodeCmd
}
