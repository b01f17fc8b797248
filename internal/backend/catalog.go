// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
)

// =============================================================================
// CATALOG ENTITIES
// =============================================================================

// Customer is a client row from getClients.php / getClient.php.
type Customer struct {
	ID                FlexInt    `json:"id"`
	Nome              FlexString `json:"nome"`
	Fantasia          FlexString `json:"fantasia"`
	NomeRepresentante FlexString `json:"nome_representante"`
	Endereco          FlexString `json:"endereco"`
	Bairro            FlexString `json:"bairro"`
	IDRepresentante   FlexString `json:"id_representante"`
	Cidade            FlexString `json:"cidade"`
	UF                FlexString `json:"uf,omitempty"`
	CEP               FlexString `json:"cep,omitempty"`
	Email             FlexString `json:"email,omitempty"`
	Telefone1         FlexString `json:"telefone1,omitempty"`
	CPF               FlexString `json:"cpf,omitempty"`
	CNPJ              FlexString `json:"cnpj,omitempty"`
}

// Representative is a sales representative.
type Representative struct {
	ID         FlexInt    `json:"id"`
	Nome       FlexString `json:"nome"`
	Endereco   FlexString `json:"endereco"`
	Bairro     FlexString `json:"bairro"`
	Cidade     FlexString `json:"cidade"`
	UF         FlexString `json:"uf"`
	CEP        FlexString `json:"cep"`
	Email      FlexString `json:"email"`
	Telefone1  FlexString `json:"telefone1"`
	Telefone2  FlexString `json:"telefone2"`
	Telefone3  FlexString `json:"telefone3"`
	CPF        FlexString `json:"cpf"`
	Identidade FlexString `json:"identidade"`
	Situacao   FlexInt    `json:"situacao"`
	Comissao   FlexFloat  `json:"comissao"`
	Meta       FlexFloat  `json:"meta"`
	Observacao FlexString `json:"observacao"`
	Razao      FlexString `json:"razao"`
	CNPJ       FlexString `json:"cnpj"`
	Area       FlexString `json:"area"`
	Banco      FlexString `json:"banco"`
	Agencia    FlexString `json:"agencia"`
	Conta      FlexString `json:"conta"`
	ChavePix   FlexString `json:"chavepix"`
	TipoChave  FlexString `json:"tipochave"`
	Bloqueado  FlexInt    `json:"bloqueado"`
}

// Product is one product variation.
type Product struct {
	ID                FlexInt    `json:"id"`
	Nome              FlexString `json:"nome"`
	Altura            FlexFloat  `json:"altura"`
	Largura           FlexFloat  `json:"largura"`
	Comprimento       FlexFloat  `json:"comprimen"`
	Peso              FlexFloat  `json:"peso"`
	Barra             FlexString `json:"barra"`
	Codigo            FlexString `json:"codigo"`
	Descricao         FlexString `json:"descricao"`
	Preco             FlexString `json:"preco"`
	QuantidadeEstoque FlexString `json:"quantidade_estoque"`
	CodProd           FlexString `json:"codprod"`
	Lista             FlexInt    `json:"lista"`
}

// Color is a product color.
type Color struct {
	ID        FlexInt    `json:"id"`
	Descricao FlexString `json:"descricao"`
	Cor       FlexString `json:"cor"`
}

// Tissue is a fabric.
type Tissue struct {
	ID     FlexInt    `json:"id"`
	Tecido FlexString `json:"tecido"`
}

// Collection is a product collection.
type Collection struct {
	ID          FlexInt    `json:"id"`
	NomeColecao FlexString `json:"nome_colecao"`
}

// Size is a labelled size grid.
type Size struct {
	Label    string       `json:"label"`
	Tamanhos []FlexString `json:"tamanhos"`
}

// FormattedSizes groups the three size grids.
type FormattedSizes struct {
	Alfa     Size `json:"alfa"`
	Numerica Size `json:"numerica"`
	Especial Size `json:"especial"`
}

// PaymentMethod is a payment condition with up to ten installment days.
type PaymentMethod struct {
	ID        FlexInt    `json:"id"`
	Descricao FlexString `json:"descricao"`
	QtdParc   FlexInt    `json:"qtdparc"`
	DDParc1   FlexInt    `json:"ddparc1"`
	DDParc2   FlexInt    `json:"ddparc2"`
	DDParc3   FlexInt    `json:"ddparc3"`
	DDParc4   FlexInt    `json:"ddparc4"`
	DDParc5   FlexInt    `json:"ddparc5"`
	DDParc6   FlexInt    `json:"ddparc6"`
	DDParc7   FlexInt    `json:"ddparc7"`
	DDParc8   FlexInt    `json:"ddparc8"`
	DDParc9   FlexInt    `json:"ddparc9"`
	DDParc10  FlexInt    `json:"ddparc10"`
}

// InstallmentDays returns the first QtdParc installment offsets.
func (p PaymentMethod) InstallmentDays() []int {
	all := []FlexInt{p.DDParc1, p.DDParc2, p.DDParc3, p.DDParc4, p.DDParc5,
		p.DDParc6, p.DDParc7, p.DDParc8, p.DDParc9, p.DDParc10}
	n := int(p.QtdParc)
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int(all[i])
	}
	return out
}

// RepresentativePaymentMethod links a representative to a payment method.
type RepresentativePaymentMethod struct {
	RepresentativeID FlexInt `json:"id_representante"`
	PaymentMethodID  FlexInt `json:"id_formapag"`
}

// Carrier is a shipping company.
type Carrier struct {
	CodTrans  FlexString `json:"codtrans"`
	Nome      FlexString `json:"nome"`
	InscEst   FlexString `json:"inscest"`
	CNPJ      FlexString `json:"cnpj"`
	Endereco  FlexString `json:"endereco"`
	Bairro    FlexString `json:"bairro"`
	Cidade    FlexString `json:"cidade"`
	UF        FlexString `json:"uf"`
	CEP       FlexString `json:"cep"`
	Telefone1 FlexString `json:"telefone1"`
	Obs       FlexString `json:"obs"`
	Email     FlexString `json:"email"`
	Fax       FlexString `json:"fax"`
	Telefone2 FlexString `json:"telefone2"`
	Contato   FlexString `json:"contato"`
}

// Price is a price table name.
type Price = FlexString

// PriceReference maps a price type to its reference.
type PriceReference struct {
	TipoPreco  FlexString `json:"tipopreco"`
	Referencia FlexString `json:"referencia"`
}

// =============================================================================
// FILTERS
// =============================================================================

// ClientFilter narrows getClients.php.
type ClientFilter struct {
	From           string // de
	To             string // ate
	Client         string // cliente
	Representative string // representante
}

func (f ClientFilter) values(token string) url.Values {
	return url.Values{
		"token":         {token},
		"de":            {f.From},
		"ate":           {f.To},
		"cliente":       {f.Client},
		"representante": {f.Representative},
	}
}

// RepresentativeFilter narrows getRepresentatives.php.
type RepresentativeFilter struct {
	From           string
	To             string
	Representative string
}

func (f RepresentativeFilter) values(token string) url.Values {
	return url.Values{
		"token":         {token},
		"de":            {f.From},
		"ate":           {f.To},
		"representante": {f.Representative},
	}
}

// ProductFilter narrows getProducts.php.
type ProductFilter struct {
	From string
	To   string
}

func (f ProductFilter) values(token string) url.Values {
	return url.Values{
		"token": {token},
		"de":    {f.From},
		"ate":   {f.To},
	}
}

// =============================================================================
// LIST RESULTS
// =============================================================================

// ClientList is the body of getClients.php.
type ClientList struct {
	Clients         []Customer `json:"clients"`
	FilteredClients []Customer `json:"filteredClients"`
	WasFiltered     bool     `json:"wasFiltered"`
}

// Visible returns the filtered list when a filter applied, else all.
func (l *ClientList) Visible() []Customer {
	if l.WasFiltered {
		return nonNil(l.FilteredClients)
	}
	return nonNil(l.Clients)
}

// RepresentativeList is the body of getRepresentatives.php.
type RepresentativeList struct {
	Representatives         []Representative `json:"representatives"`
	FilteredRepresentatives []Representative `json:"filteredRepresentatives"`
	WasFiltered             bool             `json:"wasFiltered"`
}

// Visible returns the filtered list when a filter applied, else all.
func (l *RepresentativeList) Visible() []Representative {
	if l.WasFiltered {
		return nonNil(l.FilteredRepresentatives)
	}
	return nonNil(l.Representatives)
}

// ProductList is the body of getProducts.php.
type ProductList struct {
	Products         []Product `json:"products"`
	FilteredProducts []Product `json:"filteredProducts"`
	WasFiltered      bool      `json:"wasFiltered"`
}

// Visible returns the filtered list when a filter applied, else all.
func (l *ProductList) Visible() []Product {
	if l.WasFiltered {
		return nonNil(l.FilteredProducts)
	}
	return nonNil(l.Products)
}

// PriceList is the additionalParams of getPrices.php.
type PriceList struct {
	Prices          []Price          `json:"prices"`
	PriceReferences []PriceReference `json:"priceReferences"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

// fetch posts form and decodes the body into out. An explicit
// success:false is ErrDenied carrying the backend message.
func (c *Client) fetch(ctx context.Context, endpoint string, form url.Values, out any) error {
	var raw json.RawMessage
	if err := c.Post(ctx, endpoint, form, &raw); err != nil {
		return err
	}
	var env struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return malformedErr(endpoint, err)
	}
	if env.Success != nil && !*env.Success {
		return deniedErr(endpoint, env.Message)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return malformedErr(endpoint, err)
	}
	return nil
}

func tokenForm(token string) url.Values {
	return url.Values{"token": {token}}
}

// GetClients lists clients.
func (c *Client) GetClients(ctx context.Context, token string, f ClientFilter) (*ClientList, error) {
	var resp ClientList
	if err := c.fetch(ctx, EndpointClients, f.values(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetClient fetches one client. A missing client is ErrDenied.
func (c *Client) GetClient(ctx context.Context, token, clientID string) (*Customer, error) {
	var resp struct {
		Client json.RawMessage `json:"client"`
	}
	form := tokenForm(token)
	form.Set("clientID", clientID)
	if err := c.fetch(ctx, EndpointClient, form, &resp); err != nil {
		return nil, err
	}
	var out Customer
	if err := decodeObject(EndpointClient, resp.Client, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteClient removes a client.
func (c *Client) DeleteClient(ctx context.Context, token, clientID string) error {
	return c.Delete(ctx, EndpointDeleteClient, token, "clientID", clientID)
}

// GetRepresentatives lists representatives.
func (c *Client) GetRepresentatives(ctx context.Context, token string, f RepresentativeFilter) (*RepresentativeList, error) {
	var resp RepresentativeList
	if err := c.fetch(ctx, EndpointRepresentatives, f.values(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRepresentative fetches one representative with its login attribute.
func (c *Client) GetRepresentative(ctx context.Context, token string, id int) (*Representative, error) {
	var resp struct {
		Representative json.RawMessage `json:"representative"`
	}
	form := tokenForm(token)
	form.Set("representativeID", strconv.Itoa(id))
	form.Set("withLoginAttribute", "true")
	if err := c.fetch(ctx, EndpointRepresentative, form, &resp); err != nil {
		return nil, err
	}
	var out Representative
	if err := decodeObject(EndpointRepresentative, resp.Representative, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRepresentative removes a representative.
func (c *Client) DeleteRepresentative(ctx context.Context, token, representativeID string) error {
	return c.Delete(ctx, EndpointDeleteRepresentative, token, "representativeID", representativeID)
}

// GetProducts lists products.
func (c *Client) GetProducts(ctx context.Context, token string, f ProductFilter) (*ProductList, error) {
	var resp ProductList
	if err := c.fetch(ctx, EndpointProducts, f.values(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.Delete(ctx, EndpointDeleteProduct, token, "productID", productID)
}

// GetColors lists colors in backend order.
func (c *Client) GetColors(ctx context.Context, token string) ([]Color, error) {
	var resp struct {
		Colors []Color `json:"colors"`
	}
	if err := c.fetch(ctx, EndpointColors, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Colors), nil
}

// GetSizes returns the size grids.
func (c *Client) GetSizes(ctx context.Context, token string) (*FormattedSizes, error) {
	var resp struct {
		FormattedSizes json.RawMessage `json:"formattedSizes"`
	}
	if err := c.fetch(ctx, EndpointSizes, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	var out FormattedSizes
	if err := decodeObject(EndpointSizes, resp.FormattedSizes, &out); err != nil {
		if errors.Is(err, ErrDenied) {
			return &FormattedSizes{}, nil
		}
		return nil, err
	}
	return &out, nil
}

// GetTissues lists fabrics.
func (c *Client) GetTissues(ctx context.Context, token string) ([]Tissue, error) {
	var resp struct {
		Tissues []Tissue `json:"tissues"`
	}
	if err := c.fetch(ctx, EndpointTissues, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Tissues), nil
}

// GetCollections lists collections.
func (c *Client) GetCollections(ctx context.Context, token string) ([]Collection, error) {
	var resp struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.fetch(ctx, EndpointCollections, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Collections), nil
}

// GetPaymentMethods lists payment methods.
func (c *Client) GetPaymentMethods(ctx context.Context, token string) ([]PaymentMethod, error) {
	var resp struct {
		PaymentMethods []PaymentMethod `json:"paymentMethods"`
	}
	if err := c.fetch(ctx, EndpointPaymentMethods, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.PaymentMethods), nil
}

// GetRepresentativePaymentMethods lists the payment methods linked to a
// representative.
func (c *Client) GetRepresentativePaymentMethods(ctx context.Context, token string, representativeID int) ([]RepresentativePaymentMethod, error) {
	var resp struct {
		Methods []RepresentativePaymentMethod `json:"representativePaymentMethods"`
	}
	form := tokenForm(token)
	form.Set("representativeID", idOrEmpty(representativeID))
	if err := c.fetch(ctx, EndpointRepPaymentMethods, form, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Methods), nil
}

// GetCarriers lists carriers.
func (c *Client) GetCarriers(ctx context.Context, token string) ([]Carrier, error) {
	var resp struct {
		AdditionalParams struct {
			Carriers []Carrier `json:"carriers"`
		} `json:"additionalParams"`
	}
	if err := c.fetch(ctx, EndpointCarriers, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.AdditionalParams.Carriers), nil
}

// GetPrices lists price tables and their references.
func (c *Client) GetPrices(ctx context.Context, token string) (*PriceList, error) {
	var resp struct {
		AdditionalParams PriceList `json:"additionalParams"`
	}
	if err := c.fetch(ctx, EndpointPrices, tokenForm(token), &resp); err != nil {
		return nil, err
	}
	out := resp.AdditionalParams
	out.Prices = nonNil(out.Prices)
	out.PriceReferences = nonNil(out.PriceReferences)
	return &out, nil
}

// GetRepresentativePrices lists the price tables a representative may use.
func (c *Client) GetRepresentativePrices(ctx context.Context, token string, representativeID int) ([]Price, error) {
	var resp struct {
		Prices []Price `json:"representativePrices"`
	}
	form := tokenForm(token)
	form.Set("representativeID", idOrEmpty(representativeID))
	if err := c.fetch(ctx, EndpointRepresentativePrices, form, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Prices), nil
}

// decodeObject decodes a single-entity payload. PHP encodes a missing row
// as null, false or an empty array; all of those are ErrDenied.
func decodeObject(endpoint string, raw json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0,
		bytes.Equal(trimmed, []byte("null")),
		bytes.Equal(trimmed, []byte("false")),
		trimmed[0] == '[':
		return deniedErr(endpoint, "not found")
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return malformedErr(endpoint, err)
	}
	return nil
}

func idOrEmpty(id int) string {
	if id <= 0 {
		return ""
	}
	return strconv.Itoa(id)
}
