package main

import (
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/errors"
)

func init() {
	ReadingListCommand.Flags().String("html", "", "write the reading list rendered as HTML to this file")

	RootCmd.AddCommand(&ReadingListCommand)
}

var ReadingListCommand = cobra.Command{
	Use:   "readinglist",
	Short: "Print the reading list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		out, _ := cmd.Flags().GetString("html")
		if out == "" {
			content, err := a.readingList.Content()
			if err != nil {
				return err
			}
			cmd.Print(content)
			return nil
		}

		html, err := a.readingList.HTML()
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(out, html, 0644); err != nil {
			return errors.New("error writing "+out, errors.WithCause(err))
		}
		cmd.Println("Reading list written to", out)
		return nil
	},
}
