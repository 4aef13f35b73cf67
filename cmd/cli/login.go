package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session token",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		cfg, gw, _, err := newSession()
		if err != nil {
			return err
		}
		resp, err := gw.Login(cobraCmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return err
		}

		cfg.Client.Token = resp.Token
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("could not store token: %w", err)
		}
		fmt.Printf("logged in as %s\n", resp.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and drop the stored token",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		cfg, gw, _, err := newSession()
		if err != nil {
			return err
		}
		if err := gw.Logout(cobraCmd.Context()); err != nil {
			return err
		}
		cfg.Client.Token = ""
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
