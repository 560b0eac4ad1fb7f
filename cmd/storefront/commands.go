package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"store-frontend/internal/config"
	"store-frontend/internal/logger"
	"store-frontend/internal/order"
	"store-frontend/internal/render"
	"store-frontend/internal/utils"
	"store-frontend/internal/view"

	"github.com/spf13/cobra"
)

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var (
		a   *app
		yes bool
	)

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse products and manage orders in the online store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.Init(cfg.AppEnv)
			a = newApp(cfg, yes, in, out, errOut)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.logStats()
			logger.Sync()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "answer yes to every confirmation")

	// commands read a lazily, once PersistentPreRunE has built it
	get := func() *app { return a }

	root.AddCommand(
		newLoginCmd(get),
		newRegisterCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newProductsCmd(get),
		newProductCmd(get),
		newBuyCmd(get),
		newOrdersCmd(get),
		newOrderCmd(get),
		newPayCmd(get),
		newCancelCmd(get),
	)
	return root
}

func newLoginCmd(get func() *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var err error
			if username == "" {
				if username, err = a.prompt("Username", false); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt("Password", true); err != nil {
					return err
				}
			}

			v := view.NewLogin(a.auth, a.nav)
			if err := v.Submit(cmd.Context(), username, password); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", a.auth.Username())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(get func() *app) *cobra.Command {
	var form view.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var err error
			if form.Username == "" {
				if form.Username, err = a.prompt("Username", false); err != nil {
					return err
				}
			}
			if form.EmailAddress == "" {
				if form.EmailAddress, err = a.prompt("Email", false); err != nil {
					return err
				}
			}
			if form.Password == "" {
				if form.Password, err = a.prompt("Password", true); err != nil {
					return err
				}
				if form.ConfirmPassword, err = a.prompt("Confirm password", true); err != nil {
					return err
				}
			} else if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}

			v := view.NewRegister(a.auth, a.nav)
			if err := v.Submit(cmd.Context(), form); err != nil {
				return failed(v.State().Error, err)
			}
			fmt.Fprintf(a.out, "Registered and logged in as %s.\n", a.auth.Username())
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "account username")
	cmd.Flags().StringVar(&form.EmailAddress, "email", "", "email address")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&form.BankAccountNumber, "bank-account", "", "bank account number for payments")
	cmd.Flags().BoolVar(&form.Agree, "agree", false, "accept the User Agreement and Privacy Policy")
	return cmd
}

func newLogoutCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			// the login hint is noise right after an explicit logout
			nav := view.NavigatorFunc(func(view.Route) {})
			if err := view.NewNavbar(a.auth, nav).Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			return render.Session(a.out, a.auth.Session(), time.Now())
		},
	}
}

func newProductsCmd(get func() *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			v := view.NewProductList(a.products)
			v.Search(search)
			if err := v.Load(cmd.Context()); err != nil {
				return failed(v.State().Error, err)
			}
			return render.ProductList(a.out, v.State())
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show products whose name contains this text")
	return cmd
}

func newProductCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			v := view.NewProductDetail(a.products, a.orders, a.nav)
			if err := v.Load(cmd.Context(), id); err != nil {
				return failed(v.State().Error, err)
			}
			return render.ProductDetail(a.out, v.State())
		},
	}
}

func newBuyCmd(get func() *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "buy <product-id>",
		Short: "Order a product and request payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			v := view.NewProductDetail(a.products, a.orders, a.nav)
			if err := v.Load(cmd.Context(), id); err != nil {
				return failed(v.State().Error, err)
			}

			if p := v.State().Product; p.InStock() && !v.SetQuantity(quantity) {
				return failed(fmt.Sprintf("Please enter a quantity between 1 and %d", p.Stock), view.ErrQuantityOutOfRange)
			}

			if _, err := v.Purchase(cmd.Context()); err != nil {
				return failed(v.State().Error, err)
			}
			return render.ProductDetail(a.out, v.State())
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of items")
	return cmd
}

func newOrdersCmd(get func() *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()

			v := view.NewOrders(a.orders, a.auth, a.nav, a.confirm,
				view.WithRefreshInterval(a.cfg.RefreshInterval),
				view.WithRefreshHook(func(s view.OrdersState) {
					fmt.Fprintln(a.out)
					_ = render.Orders(a.out, s)
				}),
			)
			defer v.Close()

			if err := v.Load(ctx, false); err != nil {
				return failed(v.State().Error, err)
			}
			if err := render.Orders(a.out, v.State()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			v.SetAutoRefresh(ctx, true)
			// until interrupted
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "refresh the list until interrupted")
	return cmd
}

func newOrderCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			o, err := a.orders.Get(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, order.ErrOrderNotFound) {
					return failed("Order not found.", err)
				}
				return failed(view.Describe(err, "Failed to load order"), err)
			}
			return render.Order(a.out, *o)
		},
	}
}

func newPayCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Request payment for a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return orderAction(cmd.Context(), get(), args[0], (*view.Orders).Pay)
		},
	}
}

func newCancelCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order that has not been shipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return orderAction(cmd.Context(), get(), args[0], (*view.Orders).Cancel)
		},
	}
}

func orderAction(ctx context.Context, a *app, arg string, act func(*view.Orders, context.Context, int) error) error {
	id, err := utils.ParseID(arg)
	if err != nil {
		return err
	}

	v := view.NewOrders(a.orders, a.auth, a.nav, a.confirm)
	defer v.Close()

	err = act(v, ctx, id)
	switch {
	case errors.Is(err, view.ErrNotConfirmed):
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	case err != nil:
		return failed(v.State().Error, err)
	}
	fmt.Fprintln(a.out, v.State().Success)
	return nil
}
