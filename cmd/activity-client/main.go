// Package main — консольный клиент страницы кружков: загружает справочник,
// записывает и выписывает участников и печатает получившуюся страницу.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"activity-signup/internal/client"
)

type Args struct {
	Server    string
	Email     string
	Activity  string
	HTML      bool
	Verbose   bool
	Timeout   time.Duration
	Command   string
	HideAfter time.Duration
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs() (Args, error) {
	var args Args

	flag.StringVar(&args.Server, "server", "http://localhost:8080", "activity service base URL")
	flag.StringVar(&args.Email, "email", "", "student email for signup/unregister")
	flag.StringVar(&args.Activity, "activity", "", "activity name for signup/unregister")
	flag.BoolVar(&args.HTML, "html", false, "print the whole rendered page instead of a text summary")
	flag.BoolVar(&args.Verbose, "v", false, "log request failures to stderr")
	flag.DurationVar(&args.Timeout, "timeout", 0, "overall deadline for the command (0 means none)")
	flag.DurationVar(&args.HideAfter, "hide-after", client.DefaultHideAfter, "how long status messages stay visible")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [list|signup|unregister]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args.Command = "list"
	if flag.NArg() > 0 {
		args.Command = flag.Arg(0)
	}

	switch args.Command {
	case "list", "signup":
	case "unregister":
		if args.Email == "" || args.Activity == "" {
			return Args{}, errors.New("unregister needs -email and -activity")
		}
	default:
		return Args{}, fmt.Errorf("unknown command %q", args.Command)
	}
	return args, nil
}

func run() error {
	args, err := parseArgs()
	if err != nil {
		flag.Usage()
		return err
	}

	var logOut io.Writer = io.Discard
	if args.Verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if args.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, args.Timeout)
		defer cancel()
	}

	api := client.NewAPIClient(args.Server, &http.Client{})
	c, err := client.New(api, client.WithLogger(logger), client.WithHideAfter(args.HideAfter))
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}
	defer c.Close()

	// страница всегда начинается с загрузки справочника
	loadErr := c.LoadActivities(ctx)

	var actionErr error
	switch args.Command {
	case "signup":
		// форму заполняем после загрузки: иначе в выпадающем списке ещё нет кружков
		c.FillSignupForm(args.Email, args.Activity)
		actionErr = c.SubmitSignup(ctx)
	case "unregister":
		actionErr = c.UnregisterParticipant(ctx, args.Activity, args.Email)
	}

	if err := printPage(os.Stdout, c, args.HTML); err != nil {
		return err
	}

	if actionErr != nil {
		return actionErr
	}
	return loadErr
}

func printPage(w io.Writer, c *client.ActivityClient, asHTML bool) error {
	if asHTML {
		out, err := c.HTML()
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}

	if st := c.Status(); st.Visible {
		fmt.Fprintf(w, "[%s] %s\n\n", strings.ToUpper(st.Kind), st.Text)
	}

	cards := c.Cards()
	if len(cards) == 0 {
		fmt.Fprintln(w, c.ListText())
		return nil
	}

	for _, card := range cards {
		fmt.Fprintf(w, "%s\n  %s\n  Schedule: %s\n  Availability: %s\n  Participants:\n",
			card.Name, card.Description, card.Schedule, card.Availability)
		if len(card.Roster) == 0 {
			fmt.Fprintf(w, "    %s\n", card.Placeholder)
		}
		for _, entry := range card.Roster {
			fmt.Fprintf(w, "    - %s\n", entry.Email)
		}
		fmt.Fprintln(w)
	}
	return nil
}
