package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"thirdcoast.systems/adminkit/pkg/utils/passwords"
)

// newHashPasswordCmd creates the hash-password subcommand.
func newHashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password for ADMIN_PASSWORD_HASH",
		Long: `Read a password from the first line of stdin and print its argon2id hash.

Example:
  printf '%s\n' "$PASSWORD" | adminctl hash-password`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password on stdin")
			}
			password := strings.TrimRight(line, "\r\n")

			hash, err := passwords.New(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash.String())
			return nil
		},
	}
	return cmd
}
