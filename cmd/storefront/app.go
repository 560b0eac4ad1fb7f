package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"store-frontend/internal/api"
	"store-frontend/internal/auth"
	"store-frontend/internal/config"
	"store-frontend/internal/logger"
	"store-frontend/internal/order"
	"store-frontend/internal/product"
	"store-frontend/internal/session"
	"store-frontend/internal/view"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// app holds everything a command needs. It is built once per invocation.
type app struct {
	cfg    *config.Config
	client *api.Client

	auth     auth.Service
	products product.Service
	orders   order.Service

	nav     *terminalNavigator
	confirm view.Confirmer

	in     *bufio.Reader
	rawIn  io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(cfg *config.Config, yes bool, in io.Reader, out, errOut io.Writer) *app {
	a := &app{
		cfg:    cfg,
		nav:    &terminalNavigator{w: errOut},
		in:     bufio.NewReader(in),
		rawIn:  in,
		out:    out,
		errOut: errOut,
	}

	store := session.NewFileStore(cfg.SessionFile)
	a.client = api.NewClient(cfg.APIBaseURL, store,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		api.WithUnauthorizedHandler(func() { a.nav.Navigate(view.RouteLogin) }),
	)

	a.auth = auth.NewService(a.client, store)
	a.products = product.NewService(a.client)
	a.orders = order.NewService(a.client)

	if yes {
		a.confirm = view.AlwaysConfirm
	} else {
		a.confirm = view.ConfirmerFunc(a.ask)
	}
	return a
}

func (a *app) logStats() {
	s := a.client.Stats()
	logger.L().Debug("client stats",
		zap.Uint64("requests", s.Requests),
		zap.Uint64("failures", s.Failures),
		zap.Uint64("unauthorized", s.Unauthorized),
		zap.Duration("slowest", s.Slowest),
	)
}

// ask prints prompt and waits for a yes/no answer; anything but y/yes is no.
func (a *app) ask(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	answer, err := a.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// prompt reads a value, echoing unless secret is set and stdin is a terminal.
func (a *app) prompt(label string, secret bool) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)

	if f, ok := a.rawIn.(*os.File); ok && secret && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}
	return a.readLine()
}

// terminalNavigator turns route changes into hints about the next command.
type terminalNavigator struct {
	w io.Writer

	mu   sync.Mutex
	last view.Route
}

func (n *terminalNavigator) Navigate(to view.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if to == n.last {
		return
	}
	n.last = to

	switch to {
	case view.RouteLogin:
		fmt.Fprintln(n.w, "You are not logged in. Run `storefront login` to sign in.")
	case view.RouteOrders:
		fmt.Fprintln(n.w, "Run `storefront orders --watch` to follow the payment status.")
	}
}

// userError carries the message a view prepared for display.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func failed(msg string, err error) error {
	if msg == "" {
		return err
	}
	return &userError{msg: msg, err: err}
}
