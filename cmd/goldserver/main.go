/*
Goldserver starts a grammar-cache server and begins listening for new
connections.

Usage:

	goldserver [flags]
	goldserver [flags] -l [[ADDRESS]:PORT]

Once started, the server listens for HTTP requests and responds to them
using REST protocol. By default, it listens on localhost:8080. This can be
changed with the --listen/-l flag (or config via environment var).

The flags are:

	-v, --version
		Give the current version of goldserver and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		GOLDSERVER_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory, such as sqlite:path/to/db_dir. If
		not given, defaults to the value of environment variable
		GOLDSERVER_DATABASE. If no DB driver is specified, an in-memory
		database is automatically selected.

	--unauth-delay-ms MILLIS
		Extra time to wait before responding to a request that failed
		authentication, to deprioritize such requests. Defaults to 1000.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/internal/version"
	"github.com/dekarrin/goldrun/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "GOLDSERVER_LISTEN_ADDRESS"
	EnvDB     = "GOLDSERVER_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of goldserver and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
	flagDelayMS = pflag.Int("unauth-delay-ms", 0, "Extra delay in milliseconds before responding to unauthenticated requests.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (goldrun engine v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		addr = *flagListen
	}
	if addr == "" {
		addr = "localhost:8080"
	}
	if err := validateListenAddr(addr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	var cfg server.Config

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		db, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
		cfg.DB = db
	}

	if pflag.Lookup("unauth-delay-ms").Changed {
		cfg.UnauthDelayMillis = *flagDelayMS
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	key, err := srv.BootstrapAdminKey(context.Background(), "admin")
	if err != nil && !errors.Is(err, golderr.ErrAlreadyExists) {
		log.Fatalf("FATAL could not create initial admin API key: %s", err.Error())
	}
	if err == nil {
		log.Printf("INFO  Created initial admin API key: %s", key)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.ServeForever(ctx, addr); err != nil {
		log.Fatalf("FATAL server exited with error: %s", err.Error())
	}
}

func validateListenAddr(addr string) error {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("listen address %q is not in ADDRESS:PORT or :PORT format", addr)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return fmt.Errorf("%q is not a valid port number", parts[1])
	}
	return nil
}
