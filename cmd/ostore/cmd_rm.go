package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/spf13/cobra"
)

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm kind id...",
		Short: "Remove the records of objects",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]omap.ID, len(args)-1)
			for i, arg := range args[1:] {
				id, err := omap.ParseID(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}

			store, st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Disable()

			kind := args[0]
			for _, id := range ids {
				if _, err := store.Load(kind, id); err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						return fmt.Errorf("%s object %s does not exist", kind, id)
					}
					return err
				}
				store.Unlink(&ostore.Record{Type: kind, ID: id})
				st.Log("removed object", "kind", kind, "id", id)
			}
			return nil
		},
	}
}
