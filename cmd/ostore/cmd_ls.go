package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/FAU-CDI/vobox/internal/status"
	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func newLsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [kind]",
		Short: "List kinds, or the objects of a kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Disable()

			var sizes map[string]map[omap.ID]uint64
			if err := st.DoStage(status.StageScanStore, func() (err error) {
				sizes, err = recordSizes(store, st)
				return
			}); err != nil {
				return err
			}

			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer out.Flush()

			if len(args) == 0 {
				kinds := maps.Keys(sizes)
				slices.Sort(kinds)
				for _, kind := range kinds {
					var total uint64
					for _, size := range sizes[kind] {
						total += size
					}
					fmt.Fprintf(out, "%s\t%d\t%s\n", kind, len(sizes[kind]), humanize.Bytes(total))
				}
				return nil
			}

			objects, ok := sizes[args[0]]
			if !ok {
				return fmt.Errorf("no objects of kind %q", args[0])
			}
			ids := maps.Keys(objects)
			slices.Sort(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "%s\t%s\n", id, humanize.Bytes(objects[id]))
			}
			return nil
		},
	}
}

// recordSizes returns the size of all records in store, grouped by kind and id.
func recordSizes(store *ostore.Store, st *status.Status) (map[string]map[omap.ID]uint64, error) {
	records := store.Records()
	defer records.Close()

	sizes := make(map[string]map[omap.ID]uint64)
	for records.Next() {
		rec := records.Datum()
		if sizes[rec.Type] == nil {
			sizes[rec.Type] = make(map[omap.ID]uint64)
		}
		sizes[rec.Type][rec.ID] = uint64(len(rec.Value))
		st.Add(1)
	}
	return sizes, records.Err()
}
