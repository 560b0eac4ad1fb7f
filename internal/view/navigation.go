package view

import "fmt"

type Route string

const (
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteOrders   Route = "/orders"
)

func ProductRoute(id int) Route {
	return Route(fmt.Sprintf("/products/%d", id))
}

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(to Route)
}

type NavigatorFunc func(to Route)

func (f NavigatorFunc) Navigate(to Route) {
	f(to)
}

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}

var AlwaysConfirm Confirmer = ConfirmerFunc(func(string) bool { return true })
