// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Endpoint file names.
const (
	EndpointLogin                = "userLogin.php"
	EndpointVerify               = "verifyUserLogin.php"
	EndpointResourcePermission   = "hasResourcePermission.php"
	EndpointCheckPermission      = "checkPermission.php"
	EndpointDatabaseConnection   = "checkDatabaseConnection.php"
	EndpointClients              = "getClients.php"
	EndpointClient               = "getClient.php"
	EndpointDeleteClient         = "deleteClient.php"
	EndpointRepresentatives      = "getRepresentatives.php"
	EndpointRepresentative       = "getRepresentative.php"
	EndpointDeleteRepresentative = "deleteRepresentative.php"
	EndpointProducts             = "getProducts.php"
	EndpointDeleteProduct        = "deleteProduct.php"
	EndpointColors               = "getColors.php"
	EndpointSizes                = "getSizes.php"
	EndpointTissues              = "getTissues.php"
	EndpointCollections          = "getCollections.php"
	EndpointPaymentMethods       = "getPaymentMethods.php"
	EndpointRepPaymentMethods    = "getRepresentativePaymentMethods.php"
	EndpointCarriers             = "getCarriers.php"
	EndpointPrices               = "getPrices.php"
	EndpointRepresentativePrices = "getRepresentativePrices.php"
)

// =============================================================================
// RESPONSE SCHEMAS
// =============================================================================

const successRequired = `{
	"type": "object",
	"required": ["success"],
	"properties": {
		"success": {"type": "boolean"},
		"message": {"type": ["string", "null"]}
	}
}`

func listSchema(props ...string) string {
	fields := make([]string, 0, len(props))
	for _, p := range props {
		fields = append(fields, fmt.Sprintf(`%q: {"type": ["array", "null"]}`, p))
	}
	return `{
	"type": "object",
	"properties": {
		"success": {"type": "boolean"},
		"wasFiltered": {"type": ["boolean", "null"]},
		` + strings.Join(fields, ",\n\t\t") + `
	}
}`
}

func nestedListSchema(props ...string) string {
	fields := make([]string, 0, len(props))
	for _, p := range props {
		fields = append(fields, fmt.Sprintf(`%q: {"type": ["array", "null"]}`, p))
	}
	return `{
	"type": "object",
	"properties": {
		"success": {"type": "boolean"},
		"additionalParams": {
			"type": ["object", "null"],
			"properties": {` + strings.Join(fields, ", ") + `}
		}
	}
}`
}

const objectSchemaTmpl = `{
	"type": "object",
	"properties": {
		"success": {"type": "boolean"},
		%q: {"type": ["object", "array", "null"]}
	}
}`

// schemaSources maps each endpoint to its response schema. Endpoints not
// listed are decoded without validation.
var schemaSources = map[string]string{
	EndpointLogin: `{
		"type": "object",
		"required": ["success"],
		"properties": {
			"success": {"type": "boolean"},
			"token": {"type": ["string", "null"]},
			"message": {"type": ["string", "null"]}
		}
	}`,
	EndpointVerify: `{
		"type": "object",
		"required": ["success"],
		"properties": {
			"success": {"type": "boolean"},
			"user_id": {"type": ["integer", "string", "null"]},
			"message": {"type": ["string", "null"]},
			"remainingTime": {"type": ["number", "string", "null"]}
		}
	}`,
	EndpointResourcePermission: successRequired,
	EndpointCheckPermission:    successRequired,
	EndpointDatabaseConnection: `{
		"type": "object",
		"required": ["connection"],
		"properties": {
			"connection": {"type": "boolean"},
			"version": {"type": ["string", "null"]}
		}
	}`,
	EndpointDeleteClient:         successRequired,
	EndpointDeleteRepresentative: successRequired,
	EndpointDeleteProduct:        successRequired,

	EndpointClients:              listSchema("clients", "filteredClients"),
	EndpointRepresentatives:      listSchema("representatives", "filteredRepresentatives"),
	EndpointProducts:             listSchema("products", "filteredProducts"),
	EndpointColors:               listSchema("colors"),
	EndpointTissues:              listSchema("tissues"),
	EndpointCollections:          listSchema("collections"),
	EndpointPaymentMethods:       listSchema("paymentMethods"),
	EndpointRepPaymentMethods:    listSchema("representativePaymentMethods"),
	EndpointRepresentativePrices: listSchema("representativePrices"),
	EndpointCarriers:             nestedListSchema("carriers"),
	EndpointPrices:               nestedListSchema("prices", "priceReferences"),
	EndpointClient:               fmt.Sprintf(objectSchemaTmpl, "client"),
	EndpointRepresentative:       fmt.Sprintf(objectSchemaTmpl, "representative"),
	EndpointSizes:                fmt.Sprintf(objectSchemaTmpl, "formattedSizes"),
}

const schemaBaseURL = "https://painel.schemas.local/backend/"

// compileSchemas compiles every schema in schemaSources.
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	out := make(map[string]*jsonschema.Schema, len(schemaSources))
	for endpoint, src := range schemaSources {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		schemaURL := schemaBaseURL + endpoint + ".schema.json"
		if err := c.AddResource(schemaURL, strings.NewReader(src)); err != nil {
			return nil, fmt.Errorf("schema load failed for %s: %w", endpoint, err)
		}
		compiled, err := c.Compile(schemaURL)
		if err != nil {
			return nil, fmt.Errorf("schema compile failed for %s: %w", endpoint, err)
		}
		out[endpoint] = compiled
	}
	return out, nil
}
