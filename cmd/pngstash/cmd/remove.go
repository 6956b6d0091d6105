/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <type>",
		Short: "Remove the first chunk of a type",
		Long: `Remove the first chunk of the given type and rewrite the file in place.

Example:
  pngstash remove secret.png ruSt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			filePath := args[0]
			files := container.GetFileStore()
			data, err := files.Read(filePath)
			if err != nil {
				return err
			}

			out, err := container.GetStash().Remove(data, args[1])
			if err != nil {
				return err
			}

			if err := files.Write(filePath, out); err != nil {
				return fmt.Errorf("failed to write %s: %w", filePath, err)
			}
			rt.logger.Debug("removed %s chunk from %s", args[1], filePath)
			return nil
		},
	}
}
