package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/FAU-CDI/vobox/pkg/vobj"
	"github.com/spf13/cobra"
)

func newCatCmd(opts *options) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "cat kind id",
		Short: "Print the record of a single object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := omap.ParseID(args[1])
			if err != nil {
				return err
			}

			store, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Disable()

			raw, err := store.Load(args[0], id)
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s object %s does not exist", args[0], id)
			}
			if err != nil {
				return err
			}

			if !decode {
				_, err := cmd.OutOrStdout().Write(raw)
				return err
			}

			kind := vobj.Kind(args[0])
			if !kind.Valid() {
				return fmt.Errorf("cannot decode objects of kind %q", args[0])
			}
			value, err := vobj.Decode(kind, raw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}

	cmd.Flags().BoolVar(&decode, "decode", false, "print the decoded value instead of the raw record")
	return cmd
}
