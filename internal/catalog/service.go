// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/router"
)

// =============================================================================
// MESSAGES
// =============================================================================

const (
	MsgClientsError         = "Ocorreu um erro ao buscar clientes!"
	MsgRepresentativesError = "Ocorreu um erro ao buscar os representantes!"
	MsgClientError          = "Ocorreu um erro ao buscar o cliente!"
	MsgRepresentativeError  = "Ocorreu um erro ao buscar o representante!"

	MsgClientDeleted             = "Cliente deletado com sucesso!"
	MsgClientDeleteError         = "Ocorreu um erro ao deletar o cliente!"
	MsgRepresentativeDeleted     = "Representante deletado com sucesso!"
	MsgRepresentativeDeleteError = "Ocorreu um erro ao deletar o representante!"
	MsgProductDeleted            = "Produto deletado com sucesso!"
	MsgProductDeleteError        = "Ocorreu um erro ao deletar o produto!"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// API is the slice of the backend client the service calls.
type API interface {
	GetClients(ctx context.Context, token string, f backend.ClientFilter) (*backend.ClientList, error)
	GetClient(ctx context.Context, token, clientID string) (*backend.Customer, error)
	DeleteClient(ctx context.Context, token, clientID string) error
	GetRepresentatives(ctx context.Context, token string, f backend.RepresentativeFilter) (*backend.RepresentativeList, error)
	GetRepresentative(ctx context.Context, token string, id int) (*backend.Representative, error)
	DeleteRepresentative(ctx context.Context, token, representativeID string) error
	GetProducts(ctx context.Context, token string, f backend.ProductFilter) (*backend.ProductList, error)
	DeleteProduct(ctx context.Context, token, productID string) error
	GetColors(ctx context.Context, token string) ([]backend.Color, error)
	GetSizes(ctx context.Context, token string) (*backend.FormattedSizes, error)
	GetTissues(ctx context.Context, token string) ([]backend.Tissue, error)
	GetCollections(ctx context.Context, token string) ([]backend.Collection, error)
	GetPaymentMethods(ctx context.Context, token string) ([]backend.PaymentMethod, error)
	GetRepresentativePaymentMethods(ctx context.Context, token string, representativeID int) ([]backend.RepresentativePaymentMethod, error)
	GetCarriers(ctx context.Context, token string) ([]backend.Carrier, error)
	GetPrices(ctx context.Context, token string) (*backend.PriceList, error)
	GetRepresentativePrices(ctx context.Context, token string, representativeID int) ([]backend.Price, error)
}

// TokenSource supplies the current session token.
type TokenSource interface {
	Token() string
}

// Navigator moves the UI to another route.
type Navigator interface {
	Navigate(path string)
}

// Service fetches catalog data on behalf of the current session.
type Service struct {
	api    API
	tokens TokenSource
	notes  notify.Notifier
	nav    Navigator
}

// Option configures a Service.
type Option func(*Service)

// WithNavigator lets the service redirect on access denial and on missing
// records.
func WithNavigator(nav Navigator) Option {
	return func(s *Service) { s.nav = nav }
}

// NewService builds a Service. A nil notifier gets a private center.
func NewService(api API, tokens TokenSource, notes notify.Notifier, opts ...Option) *Service {
	if notes == nil {
		notes = notify.NewCenter()
	}
	s := &Service{api: api, tokens: tokens, notes: notes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) token() string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.Token()
}

// fail reports a failed fetch. ErrDenied also sends the user to the access
// denied page.
func (s *Service) fail(what string, err error, msg string) {
	log.Printf("CATALOG | %s failed: %v", what, err)
	if errors.Is(err, backend.ErrDenied) && s.nav != nil {
		s.nav.Navigate(router.PathAccessDenied)
	}
	s.notes.Show(notify.Error(msg))
}

// =============================================================================
// CLIENTS
// =============================================================================

// Clients lists clients. The visible list is the filtered one when the
// backend applied a filter.
func (s *Service) Clients(ctx context.Context, f ClientFilter) Result[Client] {
	list, err := s.api.GetClients(ctx, s.token(), f)
	if err != nil {
		s.fail("clients", err, MsgClientsError)
		return failedResult[Client]()
	}
	res := resultOf(list.Visible())
	res.WasFiltered = list.WasFiltered
	return res
}

// Client fetches one client. A missing client shows an error and returns
// to the client list.
func (s *Service) Client(ctx context.Context, id string) (*Client, bool) {
	c, err := s.api.GetClient(ctx, s.token(), id)
	if err != nil {
		log.Printf("CATALOG | client %s failed: %v", id, err)
		s.notes.Show(notify.Error(MsgClientError))
		if s.nav != nil {
			s.nav.Navigate(router.PathClients)
		}
		return nil, false
	}
	return c, true
}

// DeleteClient removes a client and reports the outcome.
func (s *Service) DeleteClient(ctx context.Context, id string) bool {
	return s.remove(ctx, "client", id, s.api.DeleteClient, MsgClientDeleted, MsgClientDeleteError)
}

// =============================================================================
// REPRESENTATIVES
// =============================================================================

// Representatives lists representatives.
func (s *Service) Representatives(ctx context.Context, f RepresentativeFilter) Result[Representative] {
	list, err := s.api.GetRepresentatives(ctx, s.token(), f)
	if err != nil {
		s.fail("representatives", err, MsgRepresentativesError)
		return failedResult[Representative]()
	}
	res := resultOf(list.Visible())
	res.WasFiltered = list.WasFiltered
	return res
}

// Representative fetches one representative with its login attribute.
func (s *Service) Representative(ctx context.Context, id int) (*Representative, bool) {
	r, err := s.api.GetRepresentative(ctx, s.token(), id)
	if err != nil {
		log.Printf("CATALOG | representative %d failed: %v", id, err)
		s.notes.Show(notify.Error(MsgRepresentativeError))
		if s.nav != nil {
			s.nav.Navigate(router.PathRepresentatives)
		}
		return nil, false
	}
	return r, true
}

// DeleteRepresentative removes a representative and reports the outcome.
func (s *Service) DeleteRepresentative(ctx context.Context, id string) bool {
	return s.remove(ctx, "representative", id, s.api.DeleteRepresentative,
		MsgRepresentativeDeleted, MsgRepresentativeDeleteError)
}

// RepresentativePaymentMethods lists the payment method links of a
// representative.
func (s *Service) RepresentativePaymentMethods(ctx context.Context, id int) Result[RepresentativePaymentMethod] {
	items, err := s.api.GetRepresentativePaymentMethods(ctx, s.token(), id)
	if err != nil {
		s.fail("representative payment methods", err, notify.MsgFetchError)
		return failedResult[RepresentativePaymentMethod]()
	}
	return resultOf(items)
}

// RepresentativePrices lists the price tables a representative may use.
func (s *Service) RepresentativePrices(ctx context.Context, id int) Result[Price] {
	items, err := s.api.GetRepresentativePrices(ctx, s.token(), id)
	if err != nil {
		s.fail("representative prices", err, notify.MsgFetchError)
		return failedResult[Price]()
	}
	return resultOf(items)
}

// =============================================================================
// PRODUCTS
// =============================================================================

// Products lists product variations.
func (s *Service) Products(ctx context.Context, f ProductFilter) Result[Product] {
	list, err := s.api.GetProducts(ctx, s.token(), f)
	if err != nil {
		s.fail("products", err, notify.MsgFetchError)
		return failedResult[Product]()
	}
	res := resultOf(list.Visible())
	res.WasFiltered = list.WasFiltered
	return res
}

// DeleteProduct removes a product and reports the outcome.
func (s *Service) DeleteProduct(ctx context.Context, id string) bool {
	return s.remove(ctx, "product", id, s.api.DeleteProduct, MsgProductDeleted, MsgProductDeleteError)
}

// Colors lists colors sorted by name.
func (s *Service) Colors(ctx context.Context) Result[Color] {
	items, err := s.api.GetColors(ctx, s.token())
	if err != nil {
		s.fail("colors", err, notify.MsgFetchError)
		return failedResult[Color]()
	}
	sorted := append([]Color(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cor < sorted[j].Cor })
	return resultOf(sorted)
}

// Sizes returns the size grids. Failure yields empty grids.
func (s *Service) Sizes(ctx context.Context) (FormattedSizes, bool) {
	sizes, err := s.api.GetSizes(ctx, s.token())
	if err != nil || sizes == nil {
		s.fail("sizes", err, notify.MsgFetchError)
		return FormattedSizes{}, false
	}
	return *sizes, true
}

// Tissues lists fabrics.
func (s *Service) Tissues(ctx context.Context) Result[Tissue] {
	items, err := s.api.GetTissues(ctx, s.token())
	if err != nil {
		s.fail("tissues", err, notify.MsgFetchError)
		return failedResult[Tissue]()
	}
	return resultOf(items)
}

// Collections lists collections.
func (s *Service) Collections(ctx context.Context) Result[Collection] {
	items, err := s.api.GetCollections(ctx, s.token())
	if err != nil {
		s.fail("collections", err, notify.MsgFetchError)
		return failedResult[Collection]()
	}
	return resultOf(items)
}

// =============================================================================
// PRICING AND LOGISTICS
// =============================================================================

// PaymentMethods lists payment methods.
func (s *Service) PaymentMethods(ctx context.Context) Result[PaymentMethod] {
	items, err := s.api.GetPaymentMethods(ctx, s.token())
	if err != nil {
		s.fail("payment methods", err, notify.MsgFetchError)
		return failedResult[PaymentMethod]()
	}
	return resultOf(items)
}

// Carriers lists carriers.
func (s *Service) Carriers(ctx context.Context) Result[Carrier] {
	items, err := s.api.GetCarriers(ctx, s.token())
	if err != nil {
		s.fail("carriers", err, notify.MsgFetchError)
		return failedResult[Carrier]()
	}
	return resultOf(items)
}

// Prices returns price tables and references. Failure yields empty lists.
func (s *Service) Prices(ctx context.Context) (PriceList, bool) {
	list, err := s.api.GetPrices(ctx, s.token())
	if err != nil || list == nil {
		s.fail("prices", err, notify.MsgFetchError)
		return PriceList{Prices: []Price{}, PriceReferences: []PriceReference{}}, false
	}
	return *list, true
}

// =============================================================================
// DELETES
// =============================================================================

type deleteFunc func(ctx context.Context, token, id string) error

func (s *Service) remove(ctx context.Context, what, id string, del deleteFunc, okMsg, errMsg string) bool {
	if err := del(ctx, s.token(), id); err != nil {
		log.Printf("CATALOG | delete %s %s failed: %v", what, id, err)
		s.notes.Show(notify.Error(errMsg))
		return false
	}
	log.Printf("CATALOG | deleted %s %s", what, id)
	s.notes.Show(notify.Success(okMsg))
	return true
}

// ParseID converts a route parameter to a numeric id. Non-numeric input
// is 0.
func ParseID(raw string) int {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
