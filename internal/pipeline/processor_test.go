package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const backOfficeText = `FACTURE
N° : FAC2024-0042
Date : 15/03/2024
N° client : CLT00123
Monsieur Jean Dupont
ART12 - Wetsuit 3mm 2,00 89,90€ 10,00% 161,82€ 20,00%
Total HT 161,82 €
TVA 32,36 €
Total TTC 194,18 €
`

const webStoreText = `FACTURE Marie Lefèvre N° de commande : 12345
Date de commande : 15/03/2024
UGS : WSUIT-3MM
Combinaison néoprène 2 59,90 €
Sous-total 99,84 €
Total 119,80 € (dont 19,96 € TVA)
`

func TestProcessDocumentsContainsFailures(t *testing.T) {
	t.Parallel()

	docs := []Document{
		{ID: "facture_1.pdf", Text: backOfficeText},
		{ID: "facture_2.pdf", Text: "   "},
		{ID: "facture_3.pdf", Text: webStoreText},
	}
	res := NewProcessor(nil, nil).ProcessDocuments(context.Background(), docs)

	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d want 2", len(res.Rows))
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d want 1", len(res.Errors))
	}
	if res.Errors[0].ID != "facture_2.pdf" {
		t.Fatalf("failed doc = %q", res.Errors[0].ID)
	}
	if res.Errors[0].Err != "no text extracted" {
		t.Fatalf("error = %q", res.Errors[0].Err)
	}

	// surviving rows keep input order
	if res.Rows[0]["Client"] != "Jean Dupont" {
		t.Fatalf("row 1 client = %v", res.Rows[0]["Client"])
	}
	if res.Rows[1]["Client"] != "Marie Lefèvre" {
		t.Fatalf("row 2 client = %v", res.Rows[1]["Client"])
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d want 2", len(res.Records))
	}
}

func TestProcessDocumentsDebugEntries(t *testing.T) {
	t.Parallel()

	docs := []Document{
		{ID: "ok.pdf", Text: backOfficeText},
		{ID: "empty.pdf", Text: ""},
	}
	res := NewProcessor(nil, nil).ProcessDocuments(context.Background(), docs)

	ok, found := res.Debug["ok.pdf"]
	if !found || ok.Data == nil || ok.Text != backOfficeText || ok.Error != "" {
		t.Fatalf("debug entry for success = %+v", ok)
	}
	bad, found := res.Debug["empty.pdf"]
	if !found || bad.Data != nil || bad.Error != "no text extracted" {
		t.Fatalf("debug entry for failure = %+v", bad)
	}
}

func TestProcessDocumentsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewProcessor(nil, nil).ProcessDocuments(ctx, []Document{{ID: "a.pdf", Text: backOfficeText}})
	if len(res.Rows) != 0 {
		t.Fatalf("rows = %d want 0 after cancellation", len(res.Rows))
	}
	if len(res.Errors) != 1 || res.Errors[0].ID != "a.pdf" {
		t.Fatalf("errors = %+v", res.Errors)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	t.Parallel()

	res := NewProcessor(nil, nil).ProcessDocuments(context.Background(), []Document{
		{ID: "ok.pdf", Text: backOfficeText},
		{ID: "empty.pdf", Text: ""},
	})

	path := filepath.Join(t.TempDir(), "factures.json")
	if err := WriteDebugJSON(path, res.Debug); err != nil {
		t.Fatalf("WriteDebugJSON: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded map[string]DebugEntry
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("entries = %d want 2", len(decoded))
	}
	if decoded["empty.pdf"].Error != "no text extracted" {
		t.Fatalf("failure entry = %+v", decoded["empty.pdf"])
	}
}
