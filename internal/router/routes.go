// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "strings"

// =============================================================================
// ROUTE TABLE
// =============================================================================

// Well-known paths.
const (
	PathRoot            = "/"
	PathLogin           = "/login"
	PathHome            = "/usuario"
	PathClients         = "/usuario/clientes"
	PathRepresentatives = "/usuario/representantes"
	PathProducts        = "/usuario/produtos"
	PathPrices          = "/usuario/precos"
	PathPaymentMethods  = "/usuario/formas-pagamento"
	PathLogout          = "/logout/:accountType"
	PathAccessDenied    = "/acessoNegado"
	PathNotFound        = "/404"
)

// Route is one entry in the route table.
type Route struct {
	Name      string
	Pattern   string
	Title     string
	Protected bool
	// PortID is checked with checkPermission.php before rendering.
	PortID string
	// Redirect, when set, sends navigation elsewhere.
	Redirect string
}

// Routes is the route table in match order.
var Routes = []Route{
	{Name: "root", Pattern: PathRoot, Redirect: PathLogin},
	{Name: "login", Pattern: PathLogin, Title: "Login"},
	{Name: "home", Pattern: PathHome, Title: "Início", Protected: true},
	{Name: "clients", Pattern: PathClients, Title: "Clientes", Protected: true, PortID: "clientes"},
	{Name: "representatives", Pattern: PathRepresentatives, Title: "Representantes", Protected: true, PortID: "representantes"},
	{Name: "products", Pattern: PathProducts, Title: "Produtos", Protected: true, PortID: "produtos"},
	{Name: "prices", Pattern: PathPrices, Title: "Preços", Protected: true, PortID: "precos"},
	{Name: "payment-methods", Pattern: PathPaymentMethods, Title: "Formas de pagamento", Protected: true, PortID: "formas-pagamento"},
	{Name: "logout", Pattern: PathLogout, Title: "Sair"},
	{Name: "access-denied", Pattern: PathAccessDenied, Title: "Acesso negado"},
	{Name: "not-found", Pattern: PathNotFound, Title: "Página não encontrada"},
}

// Match finds the route for path and its ":name" parameters. Unknown paths
// match the not-found route.
func Match(path string) (Route, map[string]string) {
	path = clean(path)
	for _, r := range Routes {
		if params, ok := matchPattern(r.Pattern, path); ok {
			return r, params
		}
	}
	r, _ := Lookup("not-found")
	return r, nil
}

// Lookup returns the route with name.
func Lookup(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Resolve follows redirects and returns the final path.
func Resolve(path string) string {
	path = clean(path)
	for i := 0; i < len(Routes); i++ {
		r, _ := Match(path)
		if r.Redirect == "" {
			if r.Name == "not-found" {
				return PathNotFound
			}
			return path
		}
		path = r.Redirect
	}
	return path
}

func clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	if pattern == path {
		return nil, true
	}
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(pp) != len(sp) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = sp[i]
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return params, true
}
