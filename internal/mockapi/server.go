// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// Messages the real backend sends; the client matches on them.
const (
	MsgTokenExpired       = "Token has expired"
	MsgUserInactive       = "User is not active"
	MsgInvalidToken       = "Invalid token"
	MsgInvalidFingerprint = "Invalid fingerprint"
	MsgInvalidCredentials = "Invalid credentials"
	MsgNotFound           = "Record not found"
)

// DefaultPrefix is where the PHP endpoints are mounted.
const DefaultPrefix = "/api"

// =============================================================================
// SERVER
// =============================================================================

// Server is an in-memory stand-in for the PHP backend.
type Server struct {
	mu     sync.Mutex
	fix    *Fixtures
	keys   *signer
	prefix string
}

// Option configures a Server.
type Option func(*Server)

// WithSecret sets the token signing key. The default is random per process.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.keys.secret = secret }
}

// WithClock replaces time.Now for token issue and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.keys.now = now }
}

// WithPrefix mounts the endpoints under prefix instead of /api.
func WithPrefix(prefix string) Option {
	return func(s *Server) { s.prefix = "/" + strings.Trim(prefix, "/") }
}

// NewServer builds a server over fix.
func NewServer(fix *Fixtures, opts ...Option) *Server {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)
	s := &Server{
		fix:    fix,
		keys:   &signer{secret: secret, now: time.Now},
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDatabaseUp toggles what checkDatabaseConnection.php reports.
func (s *Server) SetDatabaseUp(up bool) {
	s.mu.Lock()
	s.fix.DatabaseUp = up
	s.mu.Unlock()
}

// SetUserActive toggles an account.
func (s *Server) SetUserActive(username string, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.fix.user(username)
	if ok {
		u.Active = active
	}
	return ok
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logMiddleware)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	api := r.PathPrefix(s.prefix).Subrouter()
	api.HandleFunc("/checkDatabaseConnection.php", s.handleDatabase).Methods(http.MethodGet)

	post := map[string]http.HandlerFunc{
		"userLogin.php":                       s.handleLogin,
		"verifyUserLogin.php":                 s.handleVerify,
		"hasResourcePermission.php":           s.authed(s.handleResource),
		"checkPermission.php":                 s.authed(s.handlePort),
		"getClients.php":                      s.authed(s.handleClients),
		"getClient.php":                       s.authed(s.handleClient),
		"deleteClient.php":                    s.authed(s.deleter(&s.fix.Clients, "clientID")),
		"getRepresentatives.php":              s.authed(s.handleRepresentatives),
		"getRepresentative.php":               s.authed(s.handleRepresentative),
		"deleteRepresentative.php":            s.authed(s.deleter(&s.fix.Representatives, "representativeID")),
		"getProducts.php":                     s.authed(s.handleProducts),
		"deleteProduct.php":                   s.authed(s.deleter(&s.fix.Products, "productID")),
		"getColors.php":                       s.authed(s.list("colors", func() any { return s.fix.Colors })),
		"getTissues.php":                      s.authed(s.list("tissues", func() any { return s.fix.Tissues })),
		"getCollections.php":                  s.authed(s.list("collections", func() any { return s.fix.Collections })),
		"getSizes.php":                        s.authed(s.list("formattedSizes", func() any { return s.fix.Sizes })),
		"getPaymentMethods.php":               s.authed(s.list("paymentMethods", func() any { return s.fix.PaymentMethods })),
		"getRepresentativePaymentMethods.php": s.authed(s.handleRepPaymentMethods),
		"getCarriers.php":                     s.authed(s.handleCarriers),
		"getPrices.php":                       s.authed(s.handlePrices),
		"getRepresentativePrices.php":         s.authed(s.handleRepPrices),
	}
	for endpoint, h := range post {
		api.HandleFunc("/"+endpoint, h).Methods(http.MethodPost)
	}
	return r
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("MOCKAPI | %s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("MOCKAPI | encode failed: %v", err)
	}
}

func fail(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]any{"success": false, "message": message})
}

// =============================================================================
// AUTH
// =============================================================================

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"connection": s.fix.DatabaseUp, "version": s.fix.Version})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	u, ok := s.fix.user(r.PostForm.Get("username"))
	var hash string
	var user User
	if ok {
		hash = u.PasswordHash
		user = *u
	}
	ttl := s.fix.SessionTTL
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(r.PostForm.Get("password"))) != nil {
		fail(w, MsgInvalidCredentials)
		return
	}
	token, err := s.keys.issue(&user, r.PostForm.Get("fingerprint"), ttl)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "token": token})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	claims, err := s.keys.parse(r.PostForm.Get("token"))
	switch {
	case err == errTokenExpired:
		writeJSON(w, map[string]any{"success": false, "message": MsgTokenExpired, "remainingTime": 0})
		return
	case err != nil:
		fail(w, MsgInvalidToken)
		return
	}
	if claims.Fingerprint != r.PostForm.Get("fingerprint") {
		fail(w, MsgInvalidFingerprint)
		return
	}

	s.mu.Lock()
	u, ok := s.fix.user(claims.Subject)
	active := ok && u.Active
	s.mu.Unlock()
	if !active {
		writeJSON(w, map[string]any{
			"success":       false,
			"message":       MsgUserInactive,
			"remainingTime": s.keys.remaining(claims),
		})
		return
	}
	writeJSON(w, map[string]any{
		"success":       true,
		"user_id":       claims.UserID,
		"remainingTime": s.keys.remaining(claims),
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, u User)

// authed parses the form and rejects requests without a valid token for an
// active user.
func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		claims, err := s.keys.parse(r.PostForm.Get("token"))
		if err == errTokenExpired {
			fail(w, MsgTokenExpired)
			return
		}
		if err != nil {
			fail(w, MsgInvalidToken)
			return
		}
		s.mu.Lock()
		u, ok := s.fix.user(claims.Subject)
		var user User
		if ok {
			user = *u
		}
		s.mu.Unlock()
		if !ok || !user.Active {
			fail(w, MsgUserInactive)
			return
		}
		h(w, r, user)
	}
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request, u User) {
	writeJSON(w, map[string]any{"success": contains(u.Resources, r.PostForm.Get("resourceName"))})
}

func (s *Server) handlePort(w http.ResponseWriter, r *http.Request, u User) {
	writeJSON(w, map[string]any{"success": contains(u.Ports, r.PostForm.Get("portID"))})
}

// =============================================================================
// CATALOG
// =============================================================================

func (s *Server) list(key string, rows func() any) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ User) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, map[string]any{"success": true, key: rows()})
	}
}

// rangeFilter keeps rows whose id lies in [de, ate]; empty bounds are open.
type rangeFilter struct {
	from, to int
	set      bool
}

func parseRange(r *http.Request) rangeFilter {
	var f rangeFilter
	if v, err := strconv.Atoi(r.PostForm.Get("de")); err == nil {
		f.from, f.set = v, true
	}
	f.to = int(^uint(0) >> 1)
	if v, err := strconv.Atoi(r.PostForm.Get("ate")); err == nil {
		f.to, f.set = v, true
	}
	return f
}

func (f rangeFilter) keep(row Row) bool {
	id := rowID(row)
	return id >= f.from && id <= f.to
}

func rowID(row Row) int {
	switch v := row["id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func fieldContains(row Row, field, needle string) bool {
	if needle == "" {
		return true
	}
	v := strings.ToLower(fmt.Sprint(row[field]))
	return strings.Contains(v, strings.ToLower(needle))
}

func filterRows(rows []Row, keep func(Row) bool) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request, _ User) {
	rng := parseRange(r)
	name := r.PostForm.Get("cliente")
	rep := r.PostForm.Get("representante")
	filtered := rng.set || name != "" || rep != ""

	s.mu.Lock()
	defer s.mu.Unlock()
	resp := map[string]any{"success": true, "clients": s.fix.Clients, "wasFiltered": filtered}
	if filtered {
		resp["filteredClients"] = filterRows(s.fix.Clients, func(row Row) bool {
			return rng.keep(row) && fieldContains(row, "nome", name) && fieldContains(row, "nome_representante", rep)
		})
	}
	writeJSON(w, resp)
}

func (s *Server) handleRepresentatives(w http.ResponseWriter, r *http.Request, _ User) {
	rng := parseRange(r)
	name := r.PostForm.Get("representante")
	filtered := rng.set || name != ""

	s.mu.Lock()
	defer s.mu.Unlock()
	resp := map[string]any{"success": true, "representatives": s.fix.Representatives, "wasFiltered": filtered}
	if filtered {
		resp["filteredRepresentatives"] = filterRows(s.fix.Representatives, func(row Row) bool {
			return rng.keep(row) && fieldContains(row, "nome", name)
		})
	}
	writeJSON(w, resp)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request, _ User) {
	rng := parseRange(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	resp := map[string]any{"success": true, "products": s.fix.Products, "wasFiltered": rng.set}
	if rng.set {
		resp["filteredProducts"] = filterRows(s.fix.Products, rng.keep)
	}
	writeJSON(w, resp)
}

func findRow(rows []Row, id string) (Row, bool) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, false
	}
	for _, row := range rows {
		if rowID(row) == n {
			return row, true
		}
	}
	return nil, false
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request, _ User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := findRow(s.fix.Clients, r.PostForm.Get("clientID"))
	if !ok {
		writeJSON(w, map[string]any{"success": true, "client": nil})
		return
	}
	writeJSON(w, map[string]any{"success": true, "client": row})
}

func (s *Server) handleRepresentative(w http.ResponseWriter, r *http.Request, _ User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := findRow(s.fix.Representatives, r.PostForm.Get("representativeID"))
	if !ok {
		writeJSON(w, map[string]any{"success": true, "representative": nil})
		return
	}
	out := make(Row, len(row)+1)
	for k, v := range row {
		out[k] = v
	}
	if r.PostForm.Get("withLoginAttribute") == "true" {
		out["login"] = loginName(row)
	}
	writeJSON(w, map[string]any{"success": true, "representative": out})
}

// loginName derives the representative's login from the first word of the
// name.
func loginName(row Row) string {
	fields := strings.Fields(fmt.Sprint(row["nome"]))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func (s *Server) deleter(rows *[]Row, idField string) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ User) {
		id := r.PostForm.Get(idField)
		s.mu.Lock()
		defer s.mu.Unlock()
		n, err := strconv.Atoi(id)
		if err != nil {
			fail(w, MsgNotFound)
			return
		}
		for i, row := range *rows {
			if rowID(row) == n {
				*rows = append((*rows)[:i], (*rows)[i+1:]...)
				writeJSON(w, map[string]any{"success": true})
				return
			}
		}
		fail(w, MsgNotFound)
	}
}

func (s *Server) handleRepPaymentMethods(w http.ResponseWriter, r *http.Request, _ User) {
	id := r.PostForm.Get("representativeID")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := filterRows(s.fix.RepresentativePaymentMethods, func(row Row) bool {
		return id == "" || fmt.Sprint(row["id_representante"]) == id
	})
	writeJSON(w, map[string]any{"success": true, "representativePaymentMethods": out})
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request, _ User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{
		"success":          true,
		"additionalParams": map[string]any{"carriers": s.fix.Carriers},
	})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request, _ User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{
		"success": true,
		"additionalParams": map[string]any{
			"prices":          s.fix.Prices,
			"priceReferences": s.fix.PriceReferences,
		},
	})
}

func (s *Server) handleRepPrices(w http.ResponseWriter, r *http.Request, _ User) {
	id := r.PostForm.Get("representativeID")
	s.mu.Lock()
	defer s.mu.Unlock()
	var prices []string
	if id == "" {
		seen := map[string]bool{}
		for _, list := range s.fix.RepresentativePrices {
			for _, p := range list {
				if !seen[p] {
					seen[p] = true
					prices = append(prices, p)
				}
			}
		}
		sort.Strings(prices)
	} else {
		prices = s.fix.RepresentativePrices[id]
	}
	if prices == nil {
		prices = []string{}
	}
	writeJSON(w, map[string]any{"success": true, "representativePrices": prices})
}
