package main

import (
	"flag"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/pressly/lg"
	"github.com/zenazn/goji/graceful"

	"github.com/rawpix/rawpix"
	"github.com/rawpix/rawpix/libraw"
	"github.com/rawpix/rawpix/server"
)

var (
	flags    = flag.NewFlagSet("rawpix-server", flag.ExitOnError)
	confFile = flags.String("config", "", "path to config file")
)

func main() {
	flags.Parse(os.Args[1:])

	conf, err := server.NewConfigFromFile(*confFile, os.Getenv("CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(conf, libraw.Codec{})
	if err := srv.Configure(); err != nil {
		log.Fatal(err)
	}

	lg.Infof("** rawpix server v%s at %s **", rawpix.VERSION, srv.Config.Bind)
	lg.Infof("** codec: libraw %s", srv.Codec.Version())
	lg.Infof("** library: %s", srv.Config.Library.Path)

	graceful.AddSignal(syscall.SIGINT, syscall.SIGTERM)
	graceful.Timeout(30 * time.Second)
	graceful.PreHook(srv.Close)
	graceful.PostHook(srv.Shutdown)

	if err := graceful.ListenAndServe(srv.Config.Bind, srv.NewRouter()); err != nil {
		lg.Fatalf("%s", err)
	}
	graceful.Wait()
}
