// Package cli implements the author-side command line tool: encode a
// document into a token, decode a token back, share a token through a
// server and check the stats counter.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/lovelab-app/lovelab/internal/codec"
	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/share"
)

const defaultServerURL = "http://localhost:8080"

// pinAttempts bounds the decode retry loop on a wrong PIN.
const pinAttempts = 3

type App struct {
	in  io.Reader
	out io.Writer
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{in: in, out: out}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errors.New("no command given")
	}

	switch args[0] {
	case "encode":
		return a.runEncode(args[1:])
	case "decode":
		return a.runDecode(args[1:])
	case "share":
		return a.runShare(ctx, args[1:])
	case "stats":
		return a.runStats(ctx, args[1:])
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: lovelab <encode|decode|share|stats> [flags]")
}

// runEncode reads a document as JSON and prints its token. With -pin the
// PIN is prompted without echo and the token comes out encrypted.
func (a *App) runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(a.out)
	file := fs.String("f", "-", "document JSON file, - for stdin")
	withPIN := fs.Bool("pin", false, "protect the token with a PIN")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := a.readDocument(*file)
	if err != nil {
		return err
	}

	var pin string
	if *withPIN {
		if pin, err = GetPIN(a.out, "PIN: "); err != nil {
			return err
		}
	}

	token, err := codec.Encode(doc, pin)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

// runDecode prints the document carried by a token as indented JSON. An
// encrypted token triggers a PIN prompt, with a bounded retry on a wrong
// PIN.
func (a *App) runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	token := fs.Arg(0)
	if token == "" {
		return errors.New("decode: token argument required")
	}

	doc, err := codec.Decode(token, "")
	if errors.Is(err, common.ErrPasswordRequired) {
		doc, err = a.decodeWithPIN(token)
	}
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(pretty))
	return nil
}

func (a *App) decodeWithPIN(token string) (map[string]any, error) {
	for attempt := 0; attempt < pinAttempts; attempt++ {
		pin, err := GetPIN(a.out, "PIN: ")
		if err != nil {
			return nil, err
		}
		doc, err := codec.Decode(token, pin)
		if errors.Is(err, common.ErrIncorrectPassword) {
			fmt.Fprintln(a.out, "Incorrect PIN, try again.")
			continue
		}
		return doc, err
	}
	return nil, common.ErrIncorrectPassword
}

// runShare encodes a document and prints a share URL. It prefers a short
// link through the server and warns before falling back to an
// embedded-token URL when the server cannot take the save.
func (a *App) runShare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	fs.SetOutput(a.out)
	file := fs.String("f", "-", "document JSON file, - for stdin")
	server := fs.String("server", defaultServerURL, "server URL")
	base := fs.String("base", "", "public viewer base URL, defaults to the server URL")
	withPIN := fs.Bool("pin", false, "protect the token with a PIN")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := a.readDocument(*file)
	if err != nil {
		return err
	}

	var pin string
	if *withPIN {
		if pin, err = GetPIN(a.out, "PIN: "); err != nil {
			return err
		}
	}

	token, err := codec.Encode(doc, pin)
	if err != nil {
		return err
	}

	baseURL := *base
	if baseURL == "" {
		baseURL = *server
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("bad base URL: %w", err)
	}

	saver := newAPIClient(*server)
	link, err := share.ShortLinkStrategy{Saver: saver}.ShareURL(ctx, u, token)
	if err != nil {
		fmt.Fprintf(a.out, "warning: short link unavailable (%v), using embedded token\n", err)
		link, _ = share.EmbeddedTokenStrategy{}.ShareURL(ctx, u, token)
	}
	fmt.Fprintln(a.out, link)
	return nil
}

func (a *App) runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(a.out)
	server := fs.String("server", defaultServerURL, "server URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	count, err := newAPIClient(*server).Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "links generated: %d\n", count)
	return nil
}

func (a *App) readDocument(file string) (map[string]any, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}
	return doc, nil
}
