package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/farguessr/internal/signer"
)

var signCmd = &cobra.Command{
	Use:   "sign <url>",
	Short: "Sign a URL with the configured secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := signer.New(cfg.SigningSecret)
		if err != nil {
			return err
		}
		out, err := s.Sign(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <url>",
	Short: "Check a signed URL and print it without the signature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := signer.New(cfg.SigningSecret)
		if err != nil {
			return err
		}
		out, err := s.Verify(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
}
