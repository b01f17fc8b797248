// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/router"
)

// fakeAPI answers every call with err when set, otherwise with the canned
// data below.
type fakeAPI struct {
	err       error
	gotToken  string
	gotFilter any
	deleted   []string
}

func (f *fakeAPI) seen(token string) error {
	f.gotToken = token
	return f.err
}

func (f *fakeAPI) GetClients(_ context.Context, token string, flt backend.ClientFilter) (*backend.ClientList, error) {
	f.gotFilter = flt
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.ClientList{
		Clients:         []backend.Customer{{ID: 1}, {ID: 2}},
		FilteredClients: []backend.Customer{{ID: 2}},
		WasFiltered:     flt.Client != "",
	}, nil
}

func (f *fakeAPI) GetClient(_ context.Context, token, id string) (*backend.Customer, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.Customer{ID: backend.FlexInt(ParseID(id))}, nil
}

func (f *fakeAPI) DeleteClient(_ context.Context, token, id string) error {
	f.deleted = append(f.deleted, "client:"+id)
	return f.seen(token)
}

func (f *fakeAPI) GetRepresentatives(_ context.Context, token string, flt backend.RepresentativeFilter) (*backend.RepresentativeList, error) {
	f.gotFilter = flt
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.RepresentativeList{Representatives: []backend.Representative{{ID: 5}}}, nil
}

func (f *fakeAPI) GetRepresentative(_ context.Context, token string, id int) (*backend.Representative, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.Representative{ID: backend.FlexInt(id)}, nil
}

func (f *fakeAPI) DeleteRepresentative(_ context.Context, token, id string) error {
	f.deleted = append(f.deleted, "representative:"+id)
	return f.seen(token)
}

func (f *fakeAPI) GetProducts(_ context.Context, token string, flt backend.ProductFilter) (*backend.ProductList, error) {
	f.gotFilter = flt
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.ProductList{Products: []backend.Product{{ID: 1, CodProd: "123456001"}}}, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, token, id string) error {
	f.deleted = append(f.deleted, "product:"+id)
	return f.seen(token)
}

func (f *fakeAPI) GetColors(_ context.Context, token string) ([]backend.Color, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return []backend.Color{{ID: 1, Cor: "Verde"}, {ID: 2, Cor: "Azul"}, {ID: 3, Cor: "Preto"}}, nil
}

func (f *fakeAPI) GetSizes(_ context.Context, token string) (*backend.FormattedSizes, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.FormattedSizes{Alfa: backend.Size{Label: "Alfa", Tamanhos: []backend.FlexString{"P"}}}, nil
}

func (f *fakeAPI) GetTissues(_ context.Context, token string) ([]backend.Tissue, error) {
	return nil, f.seen(token)
}

func (f *fakeAPI) GetCollections(_ context.Context, token string) ([]backend.Collection, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return []backend.Collection{{ID: 1, NomeColecao: "Verão"}}, nil
}

func (f *fakeAPI) GetPaymentMethods(_ context.Context, token string) ([]backend.PaymentMethod, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return []backend.PaymentMethod{{ID: 1, Descricao: "À vista"}}, nil
}

func (f *fakeAPI) GetRepresentativePaymentMethods(_ context.Context, token string, id int) ([]backend.RepresentativePaymentMethod, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return []backend.RepresentativePaymentMethod{{RepresentativeID: backend.FlexInt(id), PaymentMethodID: 1}}, nil
}

func (f *fakeAPI) GetCarriers(_ context.Context, token string) ([]backend.Carrier, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return []backend.Carrier{{CodTrans: "1", Nome: "Rapidão"}}, nil
}

func (f *fakeAPI) GetPrices(_ context.Context, token string) (*backend.PriceList, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return &backend.PriceList{Prices: []backend.Price{"Varejo"}}, nil
}

func (f *fakeAPI) GetRepresentativePrices(_ context.Context, token string, _ int) ([]backend.Price, error) {
	if err := f.seen(token); err != nil {
		return nil, err
	}
	return []backend.Price{"Atacado"}, nil
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recordingNav struct{ paths []string }

func (n *recordingNav) Navigate(path string) { n.paths = append(n.paths, path) }

func newService(api *fakeAPI) (*Service, *notify.Center, *recordingNav) {
	center := notify.NewCenter()
	nav := &recordingNav{}
	return NewService(api, staticToken("tok"), center, WithNavigator(nav)), center, nav
}

func messages(c *notify.Center) []string {
	var out []string
	for _, n := range c.Active() {
		out = append(out, n.Message)
	}
	return out
}

func TestClients_UsesVisibleList(t *testing.T) {
	api := &fakeAPI{}
	svc, center, _ := newService(api)
	ctx := context.Background()

	all := svc.Clients(ctx, ClientFilter{})
	assert.False(t, all.Failed)
	assert.False(t, all.WasFiltered)
	assert.Equal(t, 2, all.Len())
	assert.Equal(t, "tok", api.gotToken)

	filtered := svc.Clients(ctx, ClientFilter{Client: "loja"})
	assert.True(t, filtered.WasFiltered)
	require.Equal(t, 1, filtered.Len())
	assert.Equal(t, backend.FlexInt(2), filtered.Items[0].ID)
	assert.Empty(t, center.Active())
}

func TestFetchFailure_FallsBackWithToast(t *testing.T) {
	api := &fakeAPI{err: &backend.Error{Kind: backend.ErrTransport, Endpoint: "x"}}
	svc, center, nav := newService(api)
	ctx := context.Background()

	clients := svc.Clients(ctx, ClientFilter{})
	assert.True(t, clients.Failed)
	assert.NotNil(t, clients.Items)
	assert.Empty(t, clients.Items)

	reps := svc.Representatives(ctx, RepresentativeFilter{})
	assert.True(t, reps.Failed)

	products := svc.Products(ctx, ProductFilter{})
	assert.True(t, products.Failed)

	sizes, okSizes := svc.Sizes(ctx)
	assert.False(t, okSizes)
	assert.Equal(t, FormattedSizes{}, sizes)

	prices, okPrices := svc.Prices(ctx)
	assert.False(t, okPrices)
	assert.NotNil(t, prices.Prices)

	msgs := messages(center)
	assert.Contains(t, msgs, MsgClientsError)
	assert.Contains(t, msgs, MsgRepresentativesError)
	assert.Contains(t, msgs, notify.MsgFetchError)
	assert.Empty(t, nav.paths, "transport failures stay on the page")
}

func TestFetchDenied_RoutesToAccessDenied(t *testing.T) {
	api := &fakeAPI{err: backend.Denied(backend.EndpointColors, "sem permissão")}
	svc, _, nav := newService(api)

	res := svc.Colors(context.Background())
	assert.True(t, res.Failed)
	assert.Equal(t, []string{router.PathAccessDenied}, nav.paths)
}

func TestColors_SortedByName(t *testing.T) {
	svc, _, _ := newService(&fakeAPI{})
	res := svc.Colors(context.Background())
	require.Equal(t, 3, res.Len())
	assert.Equal(t, backend.FlexString("Azul"), res.Items[0].Cor)
	assert.Equal(t, backend.FlexString("Preto"), res.Items[1].Cor)
	assert.Equal(t, backend.FlexString("Verde"), res.Items[2].Cor)
}

func TestNilListsBecomeEmpty(t *testing.T) {
	svc, _, _ := newService(&fakeAPI{})
	res := svc.Tissues(context.Background())
	assert.False(t, res.Failed)
	assert.NotNil(t, res.Items)
}

func TestSingleRecord(t *testing.T) {
	svc, center, nav := newService(&fakeAPI{})
	ctx := context.Background()

	c, found := svc.Client(ctx, "9")
	require.True(t, found)
	assert.Equal(t, backend.FlexInt(9), c.ID)

	r, found := svc.Representative(ctx, 4)
	require.True(t, found)
	assert.Equal(t, backend.FlexInt(4), r.ID)
	assert.Empty(t, center.Active())
	assert.Empty(t, nav.paths)
}

func TestSingleRecord_MissingReturnsToList(t *testing.T) {
	api := &fakeAPI{err: backend.Denied(backend.EndpointClient, "not found")}
	svc, center, nav := newService(api)
	ctx := context.Background()

	_, found := svc.Client(ctx, "9")
	assert.False(t, found)
	_, found = svc.Representative(ctx, 4)
	assert.False(t, found)

	assert.Equal(t, []string{router.PathClients, router.PathRepresentatives}, nav.paths)
	msgs := messages(center)
	assert.Contains(t, msgs, MsgClientError)
	assert.Contains(t, msgs, MsgRepresentativeError)
}

func TestDeletes(t *testing.T) {
	api := &fakeAPI{}
	svc, center, _ := newService(api)
	ctx := context.Background()

	assert.True(t, svc.DeleteClient(ctx, "1"))
	assert.True(t, svc.DeleteRepresentative(ctx, "2"))
	assert.True(t, svc.DeleteProduct(ctx, "3"))
	assert.Equal(t, []string{"client:1", "representative:2", "product:3"}, api.deleted)

	msgs := messages(center)
	assert.Contains(t, msgs, MsgClientDeleted)
	assert.Contains(t, msgs, MsgRepresentativeDeleted)
	assert.Contains(t, msgs, MsgProductDeleted)
	for _, n := range center.Active() {
		assert.Equal(t, notify.KindSuccess, n.Kind)
	}
}

func TestDeletes_Failure(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	svc, center, _ := newService(api)
	ctx := context.Background()

	assert.False(t, svc.DeleteClient(ctx, "1"))
	assert.False(t, svc.DeleteRepresentative(ctx, "2"))
	assert.False(t, svc.DeleteProduct(ctx, "3"))

	msgs := messages(center)
	assert.Contains(t, msgs, MsgClientDeleteError)
	assert.Contains(t, msgs, MsgRepresentativeDeleteError)
	assert.Contains(t, msgs, MsgProductDeleteError)
}

func TestRepresentativeScoped(t *testing.T) {
	svc, _, _ := newService(&fakeAPI{})
	ctx := context.Background()

	links := svc.RepresentativePaymentMethods(ctx, 7)
	require.Equal(t, 1, links.Len())
	assert.Equal(t, backend.FlexInt(7), links.Items[0].RepresentativeID)

	prices := svc.RepresentativePrices(ctx, 7)
	assert.Equal(t, []Price{"Atacado"}, prices.Items)

	assert.Equal(t, 1, svc.PaymentMethods(ctx).Len())
	assert.Equal(t, 1, svc.Carriers(ctx).Len())
	assert.Equal(t, 1, svc.Collections(ctx).Len())
	sizes, found := svc.Sizes(ctx)
	assert.True(t, found)
	assert.Equal(t, "Alfa", sizes.Alfa.Label)
}

func TestParseID(t *testing.T) {
	assert.Equal(t, 12, ParseID("12"))
	assert.Equal(t, 0, ParseID("abc"))
	assert.Equal(t, 0, ParseID("-3"))
	assert.Equal(t, 0, ParseID(""))
}
