// This file is part of GopherDMG.
//
// GopherDMG is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDMG is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDMG.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/gateway"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/hardware/memory"
	"github.com/jetsetilly/gopherdmg/input"
	"github.com/jetsetilly/gopherdmg/logger"
	"github.com/jetsetilly/gopherdmg/modalflag"
	"github.com/jetsetilly/gopherdmg/paths"
	"github.com/jetsetilly/gopherdmg/poller"
	"github.com/jetsetilly/gopherdmg/prefs"
	"github.com/jetsetilly/gopherdmg/session"
	"github.com/jetsetilly/gopherdmg/statsview"
	"github.com/jetsetilly/gopherdmg/version"
)

// name of the preferences file inside the config directory
const prefsFile = "preferences"

// how long a server has to finish outstanding requests after an interrupt
const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitVal := launch(ctx, os.Args[1:])
	stop()

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. returns the value
// to use with os.Exit().
func launch(ctx context.Context, args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("GATEWAY", "INPUT", "REGSTORE", "PLAY", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "GATEWAY":
		err = gatewayServer(ctx, md)

	case "INPUT":
		err = inputServer(ctx, md)

	case "REGSTORE":
		err = regstoreServer(ctx, md)

	case "PLAY":
		err = play(ctx, md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// flags common to the server modes.
type serverFlags struct {
	prefs     *string
	log       *bool
	statsview *bool
}

func addServerFlags(md *modalflag.Modes) serverFlags {
	return serverFlags{
		prefs:     md.AddString("prefs", "", "preferences to apply. eg. gateway.timeout::2s; input.serialise::true"),
		log:       md.AddBool("log", false, "echo log to stdout"),
		statsview: md.AddBool("statsview", false, "launch runtime statistics server"),
	}
}

// apply the log and statsview flags and load the preferences. the returned
// preferences are frozen.
func (f serverFlags) apply(save bool) (*gateway.Preferences, error) {
	if *f.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *f.statsview {
		statsview.Launch(os.Stdout, "")
	}

	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(*f.prefs)
	p, err := gateway.NewPreferences(pth)
	if err != nil {
		prefs.PopCommandLineStack()
		return nil, err
	}

	err = p.Load()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "prefs", "unknown preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	if save {
		err = p.Save()
		if err != nil {
			return nil, err
		}
		logger.Logf(logger.Allow, "prefs", "saved to %s", pth)
	}

	p.Freeze()

	return p, nil
}

func gatewayServer(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	flgs := addServerFlags(md)
	save := md.AddBool("saveprefs", false, "save the preferences before starting")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := flgs.apply(*save)
	if err != nil {
		return err
	}

	gw, err := gateway.NewGateway(session.NewMemory(nil), prf)
	if err != nil {
		return err
	}

	logger.Logf(logger.Allow, "gateway", "preferences: %s", prf.String())

	return serve(ctx, "gateway", prf.ListenAddr(), gw)
}

func inputServer(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("The register store is located with the gateway.memory preference.")

	flgs := addServerFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := flgs.apply(false)
	if err != nil {
		return err
	}

	bus := memory.NewClient(prf.Memory.String(), prf.Timeout.Value())
	svc := input.NewService(input.NewTranslator(bus, prf.Serialise.Value()))

	return serve(ctx, "input", prf.ListenAddr(), svc)
}

func regstoreServer(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	flgs := addServerFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := flgs.apply(false)
	if err != nil {
		return err
	}

	return serve(ctx, "memory", prf.ListenAddr(), memory.NewStore())
}

// serve the handler until the context is cancelled.
func serve(ctx context.Context, tag string, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logf(logger.Allow, tag, "listening on %s", addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Logf(logger.Allow, tag, "shutting down")
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

func play(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp(`An optional ROM file, which may be an archive, is loaded into the new session.

Keys: arrows for the d-pad, x for A, z for B, enter for Start and space
for Select. q quits.`)

	addr := md.AddString("gateway", "http://localhost:8080", "URL of the session gateway")
	timeout := md.AddDuration("timeout", 5*time.Second, "timeout for each request to the gateway")
	interval := md.AddDuration("interval", poller.DefaultInterval, "time between frame requests")
	scale := md.AddInt("scale", 2, "frame scaling. every nth pixel is drawn")
	hold := md.AddDuration("hold", poller.DefaultHold, "how long a key press holds a button down")
	tty := md.AddString("tty", "/dev/tty", "terminal device to read keys from")
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	var rom []byte
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		rom, err = os.ReadFile(md.GetArg(0))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	client := poller.NewClient(*addr, *timeout)

	sess, err := client.Create(ctx)
	if err != nil {
		return err
	}
	logger.Logf(logger.Allow, "play", "session %s", sess.ID)

	// the session is destroyed even if the context has been cancelled
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		if err := client.Destroy(dctx, sess.ID); err != nil {
			logger.Log(logger.Allow, "play", err)
		}
	}()

	if rom != nil {
		err = client.Load(ctx, sess.ID, rom)
		if err != nil {
			return err
		}
	}

	kb, err := poller.OpenKeyboard(*tty, *hold)
	if err != nil {
		return err
	}
	defer kb.Close()

	pl := poller.NewPoller(client, sess.ID)
	pl.Interval = *interval

	keys := make(chan joypad.Snapshot)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return kb.Run(ctx, keys)
	})

	g.Go(func() error {
		return pl.Run(ctx, keys, func(frame []byte) {
			if err := poller.Render(os.Stdout, frame, *scale); err != nil {
				logger.Log(logger.Allow, "play", err)
			}
		})
	})

	err = g.Wait()
	fmt.Printf("\x1b[0m\r\n%s\r\n", pl.Stats())

	if curated.Is(err, poller.Quit) {
		return nil
	}
	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Printf("%s\n%s\n", v, r)
		return nil
	}

	fmt.Println(version.String())
	return nil
}
