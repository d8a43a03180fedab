package model

// NavigationMessage is a host-level navigation request emitted by
// presentation logic through Model.Navigate. The host decides what a
// route name means; this package only carries the request.
type NavigationMessage interface {
	isNavigationMessage()
}

// To requests forward navigation to a named route.
type To struct {
	// Route names the destination in the host's routing scheme.
	Route string
	// Args carries optional route arguments.
	Args map[string]any
}

func (To) isNavigationMessage() {}

// Back requests backward navigation.
type Back struct{}

func (Back) isNavigationMessage() {}
