// Command vodemo walks through the operations of value objects and the object map
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/FAU-CDI/vobox/internal/config"
	"github.com/FAU-CDI/vobox/internal/status"
	"github.com/FAU-CDI/vobox/pkg/ostore"
)

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if storeDir != "" {
		cfg.Store.Dir = storeDir
		cfg.Store.Enabled = true
	}
	if buckets > 0 {
		cfg.Map.Buckets = buckets
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	st := status.NewStatus(os.Stderr, level)

	var store *ostore.Store
	if err := st.DoStage(status.StageOpenStore, func() (err error) {
		store, err = cfg.OpenStore()
		return
	}); err != nil {
		st.LogFatal("open store", err)
	}
	defer store.Disable()

	rt, err := cfg.Runtime(store, st.Logger())
	if err != nil {
		st.LogFatal("create runtime", err)
	}
	defer rt.Close()

	if err := st.DoStage(status.StageDemoString, func() error {
		return demoString(os.Stdout, rt)
	}); err != nil {
		st.LogFatal("string demo", err)
	}

	if err := st.DoStage(status.StageDemoInt, func() error {
		return demoInteger(os.Stdout, rt)
	}); err != nil {
		st.LogFatal("integer demo", err)
	}

	if err := st.DoStage(status.StageDemoMap, func() error {
		return demoMap(os.Stdout, 49)
	}); err != nil {
		st.LogFatal("map demo", err)
	}

	st.Log("finished", "took", st.Diff())
}

var (
	configPath string
	storeDir   string
	buckets    int
	debug      bool
)

func init() {
	flag.StringVar(&configPath, "config", configPath, "load configuration from the given yaml file")
	flag.StringVar(&storeDir, "store", storeDir, "mirror objects into a store in the given directory")
	flag.IntVar(&buckets, "buckets", buckets, "number of buckets per object map (overrides configuration)")
	flag.BoolVar(&debug, "debug", debug, "log every created and deleted object")
}
