package transport

import "sync"

// DefaultLoginRoute is where a terminated session is sent.
const DefaultLoginRoute = "/login"

// Navigator moves the user to another entry point, e.g. the login screen
// once a session cannot be refreshed.
type Navigator interface {
	Location() string
	Navigate(route string) error
}

// RouteNavigator tracks the current route in memory and reports every navigation.
type RouteNavigator struct {
	mu         sync.Mutex
	location   string
	onNavigate func(route string)
}

// NewRouteNavigator creates a navigator positioned at location.
func NewRouteNavigator(location string, onNavigate func(route string)) *RouteNavigator {
	return &RouteNavigator{location: location, onNavigate: onNavigate}
}

func (n *RouteNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *RouteNavigator) Navigate(route string) error {
	n.mu.Lock()
	n.location = route
	onNavigate := n.onNavigate
	n.mu.Unlock()
	if onNavigate != nil {
		onNavigate(route)
	}
	return nil
}
