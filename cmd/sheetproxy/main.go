package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"

	"github.com/chartfeed/sheetproxy/pkg/config"
	"github.com/chartfeed/sheetproxy/pkg/handler"
	"github.com/chartfeed/sheetproxy/pkg/logme"
	"github.com/chartfeed/sheetproxy/pkg/sheetcache"
	"github.com/chartfeed/sheetproxy/pkg/sheets"
)

func main() {
	configFlag := flag.String("config", "", "Path to a local YAML config file (ignored in production)")
	flag.Parse()

	cfg := config.FromEnv()
	if *configFlag != "" {
		if cfg.Production() {
			logme.Debugln("production mode, ignoring config file:", *configFlag)
		} else {
			var err error
			cfg, err = config.Load(*configFlag)
			if err != nil {
				logme.Errorln(fmt.Errorf("couldn't read configuration: %w", err))
				os.Exit(1)
			}
		}
	}

	logme.Debugln("sheet id:", cfg.SheetID)
	logme.Debugln("sheet range:", cfg.SheetRange)
	logme.Debugln("environment:", cfg.Environment)

	cache := sheetcache.New(sheetcache.DefaultTTL)

	var h *handler.Handler
	client, err := sheets.NewClient(context.Background(), []byte(cfg.CredentialsJSON))
	if err != nil {
		// degraded mode is deliberate: the service stays up and serves the
		// mock series until working credentials arrive
		logme.ErrorF("%s %v\n", color.YellowString("sheets client unavailable, serving mock data:"), err)
		h = handler.NewDegraded(cache, err.Error())
	} else {
		h = handler.New(cache, client, cfg.SheetID, cfg.SheetRange)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logme.InfoF("sheetproxy listening on %s\n", color.GreenString(addr))
	if err := http.ListenAndServe(addr, h.Routes()); err != nil {
		logme.Errorln(err)
		os.Exit(1)
	}
}
