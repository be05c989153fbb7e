package main

import (
	"net"
	"net/http"

	"github.com/FAU-CDI/vobox/internal/browse"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr string
		open bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only json interface to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Disable()

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			defer listener.Close()

			url := "http://" + listener.Addr().String() + "/api/v1"
			st.Log("listen", "addr", listener.Addr().String(), "url", url)

			if open {
				go func() {
					if err := browser.OpenURL(url); err != nil {
						st.LogError("open browser", err)
					}
				}()
			}

			return http.Serve(listener, &browse.Viewer{Store: store})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:3000", "address to listen on")
	cmd.Flags().BoolVar(&open, "open", false, "open the interface in a browser")
	return cmd
}
