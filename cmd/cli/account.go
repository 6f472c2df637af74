package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"modelbench/domain/account"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return newAccountCmd("login", "Check credentials against the training API", "Logged in as %s\n", false)
}

func newSignupCmd() *cobra.Command {
	return newAccountCmd("signup", "Register a new user with the training API", "Signed up as %s\n", true)
}

func newAccountCmd(use, short, done string, signup bool) *cobra.Command {
	var creds account.Credentials

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

The password is read from the first line of stdin when --password is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				password, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				creds.Password = password
			}

			c, err := newContainer()
			if err != nil {
				return err
			}
			login := c.Accounts.Login
			if signup {
				login = c.Accounts.Signup
			}
			session, err := login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), done, session.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "user", "u", "", "Username")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Password (default: first line of stdin)")
	cmd.MarkFlagRequired("user")

	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
