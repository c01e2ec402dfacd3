package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
)

const loginHint = "La sesión expiró. Ingresa un token nuevo con `backoffice token set`."

// terminalNavigator hace de navegación en la terminal: ir al login es avisar
// que hay que cargar un token nuevo.
type terminalNavigator struct {
	mu      sync.Mutex
	current string
	out     io.Writer
}

func newTerminalNavigator(out io.Writer) *terminalNavigator {
	return &terminalNavigator{out: out}
}

func (navigator *terminalNavigator) Current() string {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	return navigator.current
}

func (navigator *terminalNavigator) Navigate(route string) {
	navigator.mu.Lock()
	navigator.current = route
	navigator.mu.Unlock()

	if route == apiclient.LoginRoute {
		fmt.Fprintln(navigator.out, styles.alert.Render(loginHint))
	}
}
