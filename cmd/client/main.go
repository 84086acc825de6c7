// Command client is a small command-line front end for the go-identity API.
//
//	client [-a address] [-t token] <command> [args]
//
// The token may also come from IDENTITY_TOKEN; the address from
// IDENTITY_ADDRESS. Results are printed as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-identity/internal/adapter"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/caarlos0/env/v11"
)

type clientConfig struct {
	Address string        `env:"IDENTITY_ADDRESS" envDefault:"localhost:3900"`
	Token   string        `env:"IDENTITY_TOKEN"`
	Timeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"15s"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("error parsing env: %w", err)
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", cfg.Address, "identity server address")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}

	log := logger.NewLogger("identity-client")
	if err := logger.SetLevel("warn"); err != nil {
		return err
	}

	client, err := adapter.NewHTTPIdentityClient(cfg.Address, cfg.Timeout, log)
	if err != nil {
		return err
	}
	client.SetToken(cfg.Token)

	result, err := dispatch(context.Background(), client, fs.Arg(0), fs.Args()[1:])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
