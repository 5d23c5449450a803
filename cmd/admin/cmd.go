package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"japjap-server/pkg/table"
	"japjap-server/pkg/token"
)

const (
	minPasswordLength = 6

	// generatedPasswordLength is the length of a password made by reset-password
	generatedPasswordLength = 12

	// adminRemoteAddr is recorded as the signup address of players made here
	adminRemoteAddr = "127.0.0.1"
)

func newCmd(p *prompter) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "japjap-admin",
		Short:         "Manage Jap Jap players from the command line.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(newUserCmd(p), newResetPasswordCmd(p))
	return cmd
}

func newUserCmd(p *prompter) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create a player and optionally make them a site admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := p.email()
			if err != nil {
				return err
			}

			password, err := p.password()
			if err != nil {
				return err
			}

			player, err := table.CreatePlayer(cmd.Context(), email, name, password, adminRemoteAddr)
			if err != nil {
				return fmt.Errorf("create player: %w", err)
			}
			_, _ = fmt.Fprintf(p.out, "Created player %d\n", player.ID)

			promote, err := p.confirm("Make site admin")
			if err != nil || !promote {
				return err
			}

			if err := player.SetIsSiteAdmin(cmd.Context(), true); err != nil {
				return fmt.Errorf("promote player: %w", err)
			}

			_, _ = fmt.Fprintln(p.out, "Player is now a site admin")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Admin", "the display name of the new player")
	return cmd
}

func newResetPasswordCmd(p *prompter) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Give a player a new random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := p.email()
			if err != nil {
				return err
			}

			player, err := table.GetPlayerByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("find player: %w", err)
			}

			password, err := token.Generate(generatedPasswordLength)
			if err != nil {
				return err
			}

			if err := player.SetPassword(cmd.Context(), password); err != nil {
				return fmt.Errorf("set password: %w", err)
			}

			_, _ = fmt.Fprintf(p.out, "New password for %s: %s\n", player.Email, password)
			return nil
		},
	}
}
