package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nomadsurfing/invoices-tracker/constants"
)

// BuildInvoiceJSONSchema returns the JSON-Schema (draft 2020-12 subset) for a
// serialized InvoiceRecord, used to sanity-check the debug side-channel before
// it is written out.
func BuildInvoiceJSONSchema() map[string]any {
	amount := map[string]any{"type": "number"}
	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"reference":   map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"quantity":    amount,
			"unit_price":  amount,
			"discount":    map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"net_amount":  amount,
			"vat_rate":    amount,
		},
		"required": []string{"reference", "description", "quantity", "unit_price"},
	}
	totals := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"gross_total":     amount,
			"net_total":       amount,
			"vat_amount":      amount,
			"shipping_fee":    amount,
			"shipping_mode":   map[string]any{"type": "string"},
			"deposit_amount":  amount,
			"global_discount": amount,
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"dialect": map[string]any{
				"type": "string",
				"enum": []string{string(constants.WebStore), string(constants.BackOffice)},
			},
			"invoice_number": map[string]any{"type": "string"},
			"invoice_date":   map[string]any{"type": "string"},
			"order_date":     map[string]any{"type": "string"},
			"client_number":  map[string]any{"type": "string"},
			"client_name":    map[string]any{"type": "string"},
			"sale_code":      map[string]any{"type": "string"},
			"sale_category":  map[string]any{"type": "string"},
			"sale_network":   map[string]any{"type": "string"},
			"comment":        map[string]any{"type": "string"},
			"payment_status": map[string]any{"type": "string"},
			"payment_method": map[string]any{"type": "string"},
			"line_items":     map[string]any{"type": []string{"array", "null"}, "items": lineItem},
			"totals":         totals,
			"article_count":  map[string]any{"type": "integer", "minimum": 0},
			"extracted_at":   map[string]any{"type": "string"},
		},
		"required": []string{"dialect", "line_items", "totals", "article_count"},
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidateRecordJSON validates a serialized InvoiceRecord against the schema.
// The schema is compiled once on first use.
func ValidateRecordJSON(data []byte) error {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildInvoiceJSONSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("invoice.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("invoice.json")
	})
	if schemaErr != nil {
		return schemaErr
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
