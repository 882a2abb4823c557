package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/errors"
)

func init() {
	RootCmd.AddCommand(&VerifyCommand)
}

var VerifyCommand = cobra.Command{
	Use:   "verify",
	Short: "Check the bookmark source credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.bookmarks.Authenticate(context.Background()); err != nil {
			if errors.Is(err, errors.AuthFailed) {
				cmd.Println("Invalid credentials. Please check your settings.")
			} else {
				cmd.Println("Connection failed:", err)
			}
			return err
		}

		if cfg.Bookmarks.Source == "chrome" {
			cmd.Println("Bookmark export found")
		} else {
			cmd.Println("Connected to Instapaper successfully")
		}
		return nil
	},
}
