package main

import (
	"fmt"
	"io/ioutil"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/arxiv"
	"github.com/bobinette/papersync/chrome"
	"github.com/bobinette/papersync/cron"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/instapaper"
	"github.com/bobinette/papersync/log"
	"github.com/bobinette/papersync/syncer"
)

var (
	// flags
	env        string
	configFile string
	verbose    bool

	// logger
	logger log.Logger

	cfg Configuration
)

type Configuration struct {
	Instapaper instapaper.Config `toml:"instapaper"`
	Bookmarks  struct {
		// Source is "instapaper" or "chrome".
		Source string        `toml:"source"`
		Chrome chrome.Config `toml:"chrome"`
	} `toml:"bookmarks"`
	Arxiv arxiv.Config `toml:"arxiv"`
	Vault struct {
		Path         string `toml:"path"`
		PapersFolder string `toml:"papers_folder"`
		ReadingList  string `toml:"reading_list"`
	} `toml:"vault"`
	Sync syncer.Config `toml:"sync"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Cron cron.Config `toml:"cron"`
}

func defaultConfiguration() Configuration {
	var c Configuration
	c.Bookmarks.Source = "instapaper"
	c.Vault.Path = "."
	c.Vault.PapersFolder = "Papers"
	c.Vault.ReadingList = "Reading List.md"
	c.Sync.Archive = true
	c.Server.Addr = ":1705"
	c.Cron.Spec = cron.DefaultSpec
	return c
}

func loadConfiguration(filename string) (Configuration, error) {
	c := defaultConfiguration()

	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return c, errors.New("error reading configuration", errors.WithCause(err))
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return c, errors.New("error unmarshalling configuration", errors.WithCause(err))
	}
	return c, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
}

var RootCmd = cobra.Command{
	Use:           "papersync",
	Short:         "Turn your arXiv bookmarks into notes",
	Long:          "Sync the arXiv papers saved on Instapaper into a markdown vault, one note per paper, plus a reading list.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.New(env)

		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}

		var err error
		cfg, err = loadConfiguration(configFile)
		if err != nil {
			logger.Error(err)
			return err
		}
		return nil
	},
}
