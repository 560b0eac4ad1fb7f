package view

import (
	"context"
	"slices"
	"sync"
	"time"

	"store-frontend/internal/logger"
	"store-frontend/internal/order"

	"go.uber.org/zap"
)

const DefaultRefreshInterval = 10 * time.Second

const (
	payPrompt    = "Proceed with payment for this order?"
	cancelPrompt = "Are you sure you want to cancel this order?"

	paySuccess    = "Payment request sent successfully! Processing payment asynchronously..."
	cancelSuccess = "Order cancelled successfully!"
)

// Authenticator reports whether a session token is held.
type Authenticator interface {
	IsAuthenticated() bool
}

type OrdersState struct {
	Orders       []order.Order
	Loading      bool
	Refreshing   bool
	AutoRefresh  bool
	Error        string
	Success      string
	PayingID     int
	CancellingID int
}

// Orders is the "my orders" screen. Payment is fire-and-poll: after a pay
// request the order normally stays PENDING until a later refresh shows the
// backend's verdict.
type Orders struct {
	orders    order.Service
	auth      Authenticator
	nav       Navigator
	confirm   Confirmer
	interval  time.Duration
	onRefresh func(OrdersState)

	mu    sync.Mutex
	state OrdersState

	// guards the auto-refresh loop; never held while mu is wanted by the loop
	loopMu sync.Mutex
	stop   context.CancelFunc
	done   chan struct{}
}

type OrdersOption func(*Orders)

func WithRefreshInterval(d time.Duration) OrdersOption {
	return func(v *Orders) {
		if d > 0 {
			v.interval = d
		}
	}
}

// WithRefreshHook registers fn to receive the state after every automatic
// refresh.
func WithRefreshHook(fn func(OrdersState)) OrdersOption {
	return func(v *Orders) {
		v.onRefresh = fn
	}
}

func NewOrders(orders order.Service, auth Authenticator, nav Navigator, confirm Confirmer, opts ...OrdersOption) *Orders {
	v := &Orders{
		orders:   orders,
		auth:     auth,
		nav:      nav,
		confirm:  confirm,
		interval: DefaultRefreshInterval,
		state:    OrdersState{Loading: true},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Orders) State() OrdersState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Orders = slices.Clone(v.state.Orders)
	return s
}

func (v *Orders) update(fn func(s *OrdersState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.state)
}

// Load fetches all orders. A silent load flags Refreshing instead of Loading.
func (v *Orders) Load(ctx context.Context, silent bool) error {
	v.update(func(s *OrdersState) {
		if silent {
			s.Refreshing = true
		} else {
			s.Loading = true
		}
		s.Error = ""
	})

	orders, err := v.orders.List(ctx)

	v.update(func(s *OrdersState) {
		s.Loading = false
		s.Refreshing = false
		if err != nil {
			s.Error = Describe(err, "Failed to load orders")
			return
		}
		s.Orders = orders
	})

	if err != nil {
		logger.FromCtx(ctx).Info("error loading orders", zap.Error(err))
	}
	return err
}

func (v *Orders) Refresh(ctx context.Context) error {
	return v.Load(ctx, false)
}

// SetAutoRefresh starts or stops re-fetching the list every interval.
func (v *Orders) SetAutoRefresh(ctx context.Context, on bool) {
	v.loopMu.Lock()
	defer v.loopMu.Unlock()

	if on == (v.stop != nil) {
		return
	}

	if !on {
		v.stop()
		<-v.done
		v.stop, v.done = nil, nil
		v.update(func(s *OrdersState) { s.AutoRefresh = false })
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.stop, v.done = cancel, done
	v.update(func(s *OrdersState) { s.AutoRefresh = true })

	go v.refreshLoop(loopCtx, done)
}

func (v *Orders) refreshLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = v.Load(ctx, true)
			if ctx.Err() != nil {
				return
			}
			if v.onRefresh != nil {
				v.onRefresh(v.State())
			}
		}
	}
}

// Close stops auto-refresh, if running.
func (v *Orders) Close() {
	v.SetAutoRefresh(context.Background(), false)
}

// Pay asks the backend to start payment for the order. Success only means
// the request was accepted.
func (v *Orders) Pay(ctx context.Context, id int) error {
	if !v.confirm.Confirm(payPrompt) {
		return ErrNotConfirmed
	}
	if !v.requireSession("You must be logged in to process payment. Please login first.") {
		return ErrNotAuthenticated
	}

	v.update(func(s *OrdersState) {
		s.PayingID = id
		s.Error = ""
		s.Success = ""
	})
	defer v.update(func(s *OrdersState) { s.PayingID = 0 })

	log := logger.FromCtx(ctx).With(zap.Int("order_id", id))

	o, err := v.orders.Pay(ctx, id)
	if err != nil {
		msg := payErrorMessage(err)
		log.Info("payment request failed", zap.Error(err), zap.String("message", msg))

		// show the latest status alongside the failure
		_ = v.Load(ctx, false)
		v.update(func(s *OrdersState) { s.Error = msg })
		return err
	}

	log.Info("payment request accepted, completion is asynchronous",
		zap.String("status", string(o.Status)),
	)
	v.update(func(s *OrdersState) { s.Success = paySuccess })
	return nil
}

func (v *Orders) Cancel(ctx context.Context, id int) error {
	if !v.confirm.Confirm(cancelPrompt) {
		return ErrNotConfirmed
	}
	if !v.requireSession("You must be logged in to cancel orders. Please login first.") {
		return ErrNotAuthenticated
	}

	v.update(func(s *OrdersState) {
		s.CancellingID = id
		s.Error = ""
		s.Success = ""
	})
	defer v.update(func(s *OrdersState) { s.CancellingID = 0 })

	if _, err := v.orders.Cancel(ctx, id); err != nil {
		msg := cancelErrorMessage(err)
		logger.FromCtx(ctx).Info("cancel failed", zap.Int("order_id", id), zap.Error(err))
		v.update(func(s *OrdersState) { s.Error = msg })
		return err
	}

	v.update(func(s *OrdersState) { s.Success = cancelSuccess })
	_ = v.Load(ctx, false)
	return nil
}

func (v *Orders) requireSession(msg string) bool {
	if v.auth.IsAuthenticated() {
		return true
	}
	v.update(func(s *OrdersState) { s.Error = msg })
	v.nav.Navigate(RouteLogin)
	return false
}
