/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode <file> <type>",
		Short: "Print the message stored under a chunk type",
		Long: `Print the data of the first chunk of the given type as text.

Sealed messages are opened when --passphrase (or PNGSTASH_PASSPHRASE) is set.

Examples:
  pngstash decode secret.png ruSt
  pngstash decode secret.png ruSt --passphrase hunter2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runtimeFrom(cmd); err != nil {
				return err
			}

			data, err := container.GetFileStore().Read(args[0])
			if err != nil {
				return err
			}

			message, err := container.GetStash().Decode(data, args[1], passphraseFrom(cmd))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	decodeCmd.Flags().String("passphrase", "", "Open a sealed message with this passphrase")
	return decodeCmd
}
