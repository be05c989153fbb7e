// Command ostore inspects and maintains an object store
package main

import (
	"fmt"
	"os"

	"github.com/FAU-CDI/vobox/internal/config"
	"github.com/FAU-CDI/vobox/internal/status"
	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

func main() {
	opts := &options{}
	root := newRootCmd(opts)

	err := root.Execute()
	opts.stopProfile()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options hold flags shared by all subcommands
type options struct {
	configPath   string
	dir          string
	backend      string
	debugProfile string

	profile interface{ Stop() }
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "ostore",
		Short:         "Inspect and maintain an object store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debugProfile != "" {
				opts.profile = profile.Start(profile.ProfilePath(opts.debugProfile), profile.Quiet)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "load configuration from the given yaml file")
	flags.StringVar(&opts.dir, "dir", "", "directory containing the store (overrides configuration)")
	flags.StringVar(&opts.backend, "backend", "", "store backend to use, 'file' or 'leveldb' (overrides configuration)")
	flags.StringVar(&opts.debugProfile, "debug-profile", "", "write a cpu profile into the given directory")

	root.AddCommand(newLsCmd(opts))
	root.AddCommand(newCatCmd(opts))
	root.AddCommand(newRmCmd(opts))
	root.AddCommand(newSQLCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

func (opts *options) stopProfile() {
	if opts.profile != nil {
		opts.profile.Stop()
		opts.profile = nil
	}
}

// open loads the configuration and opens the store.
// The returned store is always enabled.
func (opts *options) open(cmd *cobra.Command) (*ostore.Store, *status.Status, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.dir != "" {
		cfg.Store.Dir = opts.dir
	}
	if opts.backend != "" {
		cfg.Store.Backend = config.Backend(opts.backend)
	}
	cfg.Store.Enabled = true

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, _ := cfg.Level()
	st := status.NewStatus(cmd.ErrOrStderr(), level)

	var store *ostore.Store
	err = st.DoStage(status.StageOpenStore, func() error {
		store, err = cfg.OpenStore()
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	st.LogDebug("opened store", "dir", cfg.Store.Dir, "backend", cfg.Store.Backend)
	return store, st, nil
}
