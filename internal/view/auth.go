package view

import (
	"context"
	"strings"
	"sync"

	"store-frontend/internal/auth"
	"store-frontend/internal/utils"
)

type FormState struct {
	Loading bool
	Error   string
}

type Login struct {
	auth auth.Service
	nav  Navigator

	mu    sync.Mutex
	state FormState
}

func NewLogin(svc auth.Service, nav Navigator) *Login {
	return &Login{auth: svc, nav: nav}
}

func (v *Login) State() FormState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Login) Submit(ctx context.Context, username, password string) error {
	v.setState(FormState{Loading: true})

	if _, err := v.auth.Login(ctx, username, password); err != nil {
		v.setState(FormState{Error: authErrorMessage(err, "Login failed", "Invalid username or password")})
		return err
	}

	v.setState(FormState{})
	v.nav.Navigate(RouteHome)
	return nil
}

func (v *Login) setState(s FormState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
}

type RegisterForm struct {
	Username          string
	EmailAddress      string
	Password          string
	ConfirmPassword   string
	BankAccountNumber string
	Agree             bool
}

type Register struct {
	auth auth.Service
	nav  Navigator

	mu    sync.Mutex
	state FormState
}

func NewRegister(svc auth.Service, nav Navigator) *Register {
	return &Register{auth: svc, nav: nav}
}

func (v *Register) State() FormState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Register) Submit(ctx context.Context, form RegisterForm) error {
	if form.Password != form.ConfirmPassword {
		v.setState(FormState{Error: "Passwords do not match"})
		return ErrPasswordMismatch
	}
	if !form.Agree {
		v.setState(FormState{Error: "Please agree to the User Agreement and Privacy Policy"})
		return ErrAgreementRequired
	}

	v.setState(FormState{Loading: true})

	_, err := v.auth.Register(ctx, auth.RegisterInput{
		Username:          form.Username,
		Password:          form.Password,
		EmailAddress:      form.EmailAddress,
		BankAccountNumber: form.BankAccountNumber,
	})
	if err != nil {
		v.setState(FormState{Error: authErrorMessage(err, "Registration failed", "Registration failed. Please try again.")})
		return err
	}

	v.setState(FormState{})
	v.nav.Navigate(RouteHome)
	return nil
}

func (v *Register) setState(s FormState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
}

// Navbar shows who is signed in and offers logout.
type Navbar struct {
	auth auth.Service
	nav  Navigator
}

func NewNavbar(svc auth.Service, nav Navigator) *Navbar {
	return &Navbar{auth: svc, nav: nav}
}

func (n *Navbar) Username() string {
	return n.auth.Username()
}

func (n *Navbar) Avatar() string {
	return utils.Initial(n.auth.Username(), "U")
}

func (n *Navbar) Title() string {
	name := strings.TrimSpace(n.auth.Username())
	if name == "" {
		return "Online Store"
	}
	return "Online Store | " + n.Avatar() + " " + name
}

func (n *Navbar) Logout(ctx context.Context) error {
	err := n.auth.Logout(ctx)
	n.nav.Navigate(RouteLogin)
	return err
}
