package order

// These mirror the backend's rules so the UI only offers sensible actions.
// The backend re-checks both; a cached status may be stale.

// CanPay reports whether a payment may be started for o.
func CanPay(o Order) bool {
	return o.Status.Is(StatusPending)
}

// CanCancel reports whether o may still be cancelled: pending or confirmed,
// and no delivery request dispatched yet.
func CanCancel(o Order) bool {
	s := o.Status.Normalize()
	if s == StatusCancelled || o.DeliveryRequestSent {
		return false
	}
	return s == StatusPending || s == StatusConfirmed
}
