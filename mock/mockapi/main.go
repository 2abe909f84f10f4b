package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aetherid/console/mock"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Port         int           `short:"p" long:"port" description:"listen port" default:"8080"`
	TokenTTL     time.Duration `long:"ttl" description:"access token lifetime" default:"1h"`
	RefreshDelay time.Duration `long:"refresh-delay" description:"delay applied to every refresh"`
}

func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}
	service, err := mock.New()
	if err != nil {
		log.Fatal(err)
	}
	service.TokenTTL = opts.TokenTTL
	service.RefreshDelay = opts.RefreshDelay
	addr := fmt.Sprintf(":%d", opts.Port)
	slog.Info("mock console backend", "addr", addr, "admin", mock.AdminUsername, "staff", mock.StaffUsername)
	if err = http.ListenAndServe(addr, service.Router()); err != nil {
		log.Fatal(err)
	}
}
