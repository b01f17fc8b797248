// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeranaias/painel-tui/internal/catalog"
	"github.com/jeranaias/painel-tui/internal/mask"
)

// =============================================================================
// DISPATCH
// =============================================================================

// HandleCatalog runs one of the catalog commands. All of them need a
// verified session; a failed fetch was already shown as a notification and
// becomes ErrCommandFailed.
func (a *App) HandleCatalog(ctx context.Context, cmd Command, opts *ArgParser) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	switch cmd {
	case CmdClients:
		return a.handleClients(ctx, opts)
	case CmdRepresentatives:
		return a.handleRepresentatives(ctx, opts)
	case CmdProducts:
		return a.handleProducts(ctx, opts)
	case CmdPrices:
		return a.handlePrices(ctx, opts)
	case CmdPaymentMethods:
		return a.handlePaymentMethods(ctx, opts)
	case CmdCarriers:
		return a.handleCarriers(ctx)
	case CmdColors:
		return a.handleColors(ctx)
	case CmdSizes:
		return a.handleSizes(ctx)
	case CmdTissues:
		return a.handleTissues(ctx)
	case CmdCollections:
		return a.handleCollections(ctx)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// CatalogTable fetches the listing for a dashboard page. name is the
// router.Route name of the page. A failed fetch returns ErrCommandFailed.
func (a *App) CatalogTable(ctx context.Context, name string) (*Table, error) {
	switch name {
	case "clients":
		res := a.Catalog.Clients(ctx, catalog.ClientFilter{})
		if res.Failed {
			return nil, ErrCommandFailed
		}
		return clientTable(res.Items), nil
	case "representatives":
		res := a.Catalog.Representatives(ctx, catalog.RepresentativeFilter{})
		if res.Failed {
			return nil, ErrCommandFailed
		}
		return representativeTable(res.Items), nil
	case "products":
		res := a.Catalog.Products(ctx, catalog.ProductFilter{})
		if res.Failed {
			return nil, ErrCommandFailed
		}
		return productTable(res.Items), nil
	case "prices":
		list, ok := a.Catalog.Prices(ctx)
		if !ok {
			return nil, ErrCommandFailed
		}
		return priceTable(list), nil
	case "payment-methods":
		res := a.Catalog.PaymentMethods(ctx)
		if res.Failed {
			return nil, ErrCommandFailed
		}
		return paymentMethodTable(res.Items), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// emitList prints a listing, or fails when the fetch fell back to empty.
func emitList[T any](a *App, kind string, res catalog.Result[T], table func() *Table) error {
	if res.Failed {
		return NewCommandError(kind, "list", "fetch failed", ErrCommandFailed)
	}
	data := ListData{Kind: kind, Count: res.Len(), WasFiltered: res.WasFiltered, Items: res.Items}
	return a.Emit(kind, data, func(w io.Writer) {
		if res.Len() == 0 {
			fmt.Fprintln(w, RenderConditional(DimStyle, "Nenhum registro encontrado."))
			return
		}
		table().Render(w, GetTerminalWidth())
		note := fmt.Sprintf("%d registro(s)", res.Len())
		if res.WasFiltered {
			note += " (filtrado)"
		}
		fmt.Fprintln(w, RenderConditional(DimStyle, note))
	})
}

// =============================================================================
// CLIENTS
// =============================================================================

func (a *App) handleClients(ctx context.Context, opts *ArgParser) error {
	switch opts.Subcommand() {
	case "show":
		id := opts.Positional(1)
		if _, err := ParsePositiveID(id, "client id"); err != nil {
			return err
		}
		c, ok := a.Catalog.Client(ctx, id)
		if !ok {
			return &NotFoundError{Resource: "client", ID: id}
		}
		return a.Emit("clients", c, func(w io.Writer) {
			renderFields(w, clientFields(c))
		})

	case "delete":
		id := opts.Positional(1)
		if _, err := ParsePositiveID(id, "client id"); err != nil {
			return err
		}
		return a.confirmDelete(opts, "clients", "cliente", id, func() bool {
			return a.Catalog.DeleteClient(ctx, id)
		})
	}

	f := catalog.ClientFilter{
		From:           opts.Flag("de"),
		To:             opts.Flag("ate"),
		Client:         opts.Flag("cliente"),
		Representative: opts.Flag("representante"),
	}
	res := a.Catalog.Clients(ctx, f)
	return emitList(a, "clients", res, func() *Table {
		return clientTable(res.Items)
	})
}

func clientTable(clients []catalog.Client) *Table {
	t := &Table{Headers: []string{"ID", "Nome", "Fantasia", "Cidade", "Representante"}}
	for _, c := range clients {
		t.Append(strconv.Itoa(int(c.ID)), string(c.Nome), string(c.Fantasia), string(c.Cidade), string(c.NomeRepresentante))
	}
	return t
}

func clientFields(c *catalog.Client) [][2]string {
	return [][2]string{
		{"ID", strconv.Itoa(int(c.ID))},
		{"Nome", string(c.Nome)},
		{"Fantasia", string(c.Fantasia)},
		{"CPF", mask.ApplyField("cpf", string(c.CPF))},
		{"CNPJ", mask.ApplyField("cnpj", string(c.CNPJ))},
		{"Endereço", string(c.Endereco)},
		{"Bairro", string(c.Bairro)},
		{"Cidade", string(c.Cidade)},
		{"UF", string(c.UF)},
		{"CEP", mask.ApplyField("cep", string(c.CEP))},
		{"E-mail", string(c.Email)},
		{"Telefone", mask.ApplyField("telefone1", string(c.Telefone1))},
		{"Representante", string(c.NomeRepresentante)},
	}
}

// =============================================================================
// REPRESENTATIVES
// =============================================================================

func (a *App) handleRepresentatives(ctx context.Context, opts *ArgParser) error {
	switch opts.Subcommand() {
	case "show":
		id, err := ParsePositiveID(opts.Positional(1), "representative id")
		if err != nil {
			return err
		}
		r, ok := a.Catalog.Representative(ctx, id)
		if !ok {
			return &NotFoundError{Resource: "representative", ID: strconv.Itoa(id)}
		}
		return a.Emit("representatives", r, func(w io.Writer) {
			renderFields(w, representativeFields(r))
		})

	case "delete":
		id := opts.Positional(1)
		if _, err := ParsePositiveID(id, "representative id"); err != nil {
			return err
		}
		return a.confirmDelete(opts, "representatives", "representante", id, func() bool {
			return a.Catalog.DeleteRepresentative(ctx, id)
		})
	}

	f := catalog.RepresentativeFilter{
		From:           opts.Flag("de"),
		To:             opts.Flag("ate"),
		Representative: opts.Flag("representante"),
	}
	res := a.Catalog.Representatives(ctx, f)
	return emitList(a, "representatives", res, func() *Table {
		return representativeTable(res.Items)
	})
}

func representativeTable(reps []catalog.Representative) *Table {
	t := &Table{Headers: []string{"ID", "Nome", "Cidade", "UF", "Comissão", "Situação"}}
	for _, r := range reps {
		t.Append(strconv.Itoa(int(r.ID)), string(r.Nome), string(r.Cidade), string(r.UF),
			mask.FormatPercentage(strconv.FormatFloat(float64(r.Comissao), 'f', -1, 64)),
			situation(int(r.Situacao), int(r.Bloqueado)))
	}
	return t
}

func situation(situacao, bloqueado int) string {
	switch {
	case bloqueado != 0:
		return "Bloqueado"
	case situacao != 0:
		return "Ativo"
	default:
		return "Inativo"
	}
}

func representativeFields(r *catalog.Representative) [][2]string {
	return [][2]string{
		{"ID", strconv.Itoa(int(r.ID))},
		{"Nome", string(r.Nome)},
		{"Razão social", string(r.Razao)},
		{"CPF", mask.ApplyField("cpf", string(r.CPF))},
		{"CNPJ", mask.ApplyField("cnpj", string(r.CNPJ))},
		{"Endereço", string(r.Endereco)},
		{"Cidade", string(r.Cidade) + " " + string(r.UF)},
		{"CEP", mask.ApplyField("cep", string(r.CEP))},
		{"E-mail", string(r.Email)},
		{"Telefone", mask.ApplyField("telefone1", string(r.Telefone1))},
		{"Comissão", mask.FormatPercentage(strconv.FormatFloat(float64(r.Comissao), 'f', -1, 64))},
		{"Meta", mask.FormatCurrency(float64(r.Meta))},
		{"Chave PIX", mask.ApplyPixKey(string(r.TipoChave), string(r.ChavePix))},
		{"Situação", situation(int(r.Situacao), int(r.Bloqueado))},
	}
}

// =============================================================================
// PRODUCTS
// =============================================================================

func (a *App) handleProducts(ctx context.Context, opts *ArgParser) error {
	if opts.Subcommand() == "delete" {
		id := opts.Positional(1)
		if _, err := ParsePositiveID(id, "product id"); err != nil {
			return err
		}
		return a.confirmDelete(opts, "products", "produto", id, func() bool {
			return a.Catalog.DeleteProduct(ctx, id)
		})
	}

	res := a.Catalog.Products(ctx, catalog.ProductFilter{From: opts.Flag("de"), To: opts.Flag("ate")})

	if opts.BoolFlag("grouped") && !res.Failed {
		groups := catalog.GroupProducts(res.Items)
		return a.Emit("products", groups, func(w io.Writer) {
			for _, g := range groups {
				fmt.Fprintf(w, "%s (%d)\n", RenderConditional(TitleStyle, g.GroupCode), len(g.Products))
				productTable(g.Products).Render(w, GetTerminalWidth())
				fmt.Fprintln(w)
			}
		})
	}

	return emitList(a, "products", res, func() *Table {
		return productTable(res.Items)
	})
}

func productTable(products []catalog.Product) *Table {
	t := &Table{Headers: []string{"ID", "Código", "Nome", "Preço", "Estoque", "Código de barras"}}
	for _, p := range products {
		barcode := string(p.Barra)
		if barcode != "" && !catalog.ValidBarcode(barcode) {
			barcode += " (!)"
		}
		t.Append(strconv.Itoa(int(p.ID)), string(p.CodProd), string(p.Nome),
			mask.FormatCurrency(mask.ToFloatOr0(string(p.Preco))),
			string(p.QuantidadeEstoque), barcode)
	}
	return t
}

// =============================================================================
// PRICES AND PAYMENT METHODS
// =============================================================================

func (a *App) handlePrices(ctx context.Context, opts *ArgParser) error {
	if raw := opts.Flag("representante"); raw != "" {
		id, err := ParsePositiveID(raw, "representante")
		if err != nil {
			return err
		}
		res := a.Catalog.RepresentativePrices(ctx, id)
		return emitList(a, "prices", res, func() *Table {
			t := &Table{Headers: []string{"Tabela de preço"}}
			for _, p := range res.Items {
				t.Append(string(p))
			}
			return t
		})
	}

	list, ok := a.Catalog.Prices(ctx)
	if !ok {
		return NewCommandError("prices", "list", "fetch failed", ErrCommandFailed)
	}
	return a.Emit("prices", list, func(w io.Writer) {
		priceTable(list).Render(w, GetTerminalWidth())
		if len(list.PriceReferences) > 0 {
			fmt.Fprintln(w)
			refs := &Table{Headers: []string{"Tipo", "Referência"}}
			for _, r := range list.PriceReferences {
				refs.Append(string(r.TipoPreco), string(r.Referencia))
			}
			refs.Render(w, GetTerminalWidth())
		}
	})
}

func (a *App) handlePaymentMethods(ctx context.Context, opts *ArgParser) error {
	if raw := opts.Flag("representante"); raw != "" {
		id, err := ParsePositiveID(raw, "representante")
		if err != nil {
			return err
		}
		res := a.Catalog.RepresentativePaymentMethods(ctx, id)
		return emitList(a, "payment-methods", res, func() *Table {
			t := &Table{Headers: []string{"Representante", "Forma de pagamento"}}
			for _, l := range res.Items {
				t.Append(strconv.Itoa(int(l.RepresentativeID)), strconv.Itoa(int(l.PaymentMethodID)))
			}
			return t
		})
	}

	res := a.Catalog.PaymentMethods(ctx)
	return emitList(a, "payment-methods", res, func() *Table {
		return paymentMethodTable(res.Items)
	})
}

func priceTable(list catalog.PriceList) *Table {
	t := &Table{Headers: []string{"Tabela de preço"}}
	for _, p := range list.Prices {
		t.Append(string(p))
	}
	return t
}

func paymentMethodTable(methods []catalog.PaymentMethod) *Table {
	t := &Table{Headers: []string{"ID", "Descrição", "Parcelas", "Dias"}}
	for _, p := range methods {
		t.Append(strconv.Itoa(int(p.ID)), string(p.Descricao), strconv.Itoa(int(p.QtdParc)), joinDays(p.InstallmentDays()))
	}
	return t
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "/")
}

// =============================================================================
// REFERENCE LISTS
// =============================================================================

func (a *App) handleCarriers(ctx context.Context) error {
	res := a.Catalog.Carriers(ctx)
	return emitList(a, "carriers", res, func() *Table {
		t := &Table{Headers: []string{"Código", "Nome", "CNPJ", "Cidade", "Telefone"}}
		for _, c := range res.Items {
			t.Append(string(c.CodTrans), string(c.Nome), mask.ApplyField("cnpj", string(c.CNPJ)),
				string(c.Cidade), mask.ApplyField("telefone1", string(c.Telefone1)))
		}
		return t
	})
}

func (a *App) handleColors(ctx context.Context) error {
	res := a.Catalog.Colors(ctx)
	return emitList(a, "colors", res, func() *Table {
		t := &Table{Headers: []string{"ID", "Cor", "Descrição"}}
		for _, c := range res.Items {
			t.Append(strconv.Itoa(int(c.ID)), string(c.Cor), string(c.Descricao))
		}
		return t
	})
}

func (a *App) handleSizes(ctx context.Context) error {
	sizes, ok := a.Catalog.Sizes(ctx)
	if !ok {
		return NewCommandError("sizes", "list", "fetch failed", ErrCommandFailed)
	}
	return a.Emit("sizes", sizes, func(w io.Writer) {
		t := &Table{Headers: []string{"Grade", "Tamanhos"}}
		for _, s := range []catalog.Size{sizes.Alfa, sizes.Numerica, sizes.Especial} {
			if len(s.Tamanhos) == 0 {
				continue
			}
			labels := make([]string, len(s.Tamanhos))
			for i, v := range s.Tamanhos {
				labels[i] = string(v)
			}
			t.Append(s.Label, strings.Join(labels, " "))
		}
		t.Render(w, GetTerminalWidth())
	})
}

func (a *App) handleTissues(ctx context.Context) error {
	res := a.Catalog.Tissues(ctx)
	return emitList(a, "tissues", res, func() *Table {
		t := &Table{Headers: []string{"ID", "Tecido"}}
		for _, x := range res.Items {
			t.Append(strconv.Itoa(int(x.ID)), string(x.Tecido))
		}
		return t
	})
}

func (a *App) handleCollections(ctx context.Context) error {
	res := a.Catalog.Collections(ctx)
	return emitList(a, "collections", res, func() *Table {
		t := &Table{Headers: []string{"ID", "Coleção"}}
		for _, c := range res.Items {
			t.Append(strconv.Itoa(int(c.ID)), string(c.NomeColecao))
		}
		return t
	})
}

// =============================================================================
// DELETE CONFIRMATION
// =============================================================================

// confirmDelete asks before deleting unless --yes was given.
func (a *App) confirmDelete(opts *ArgParser, command, noun, id string, del func() bool) error {
	ok, err := confirm(a.Output, opts, fmt.Sprintf("Excluir %s %s?", noun, id), a.In)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.Err, "Cancelado.")
		return nil
	}
	if !del() {
		return NewCommandError(command, "delete", "backend refused", ErrCommandFailed)
	}
	return a.Emit(command, map[string]string{"deleted": id}, func(io.Writer) {})
}

// confirm asks question unless --yes was given. Without a terminal (or in
// JSON mode) --yes is required.
func confirm(out Output, opts *ArgParser, question string, in io.Reader) (bool, error) {
	if opts.BoolFlag("yes", "y") {
		return true, nil
	}
	if out.JSON || !CanPrompt() {
		return false, NewValidationError("confirmation", "", "this action requires --yes")
	}
	return promptYesNo(in, out.Err, question), nil
}

// promptYesNo asks a yes/no question; anything but y/yes/s/sim is no.
func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [s/N]: ", question)
	answer, err := readLine(in)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
