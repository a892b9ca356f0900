package report

import "fmt"

// MaxArticles is the number of positional article slots in the report schema.
// Articles beyond this index are dropped from the row (a known, accepted
// truncation); the aggregate quantity column still counts them.
const MaxArticles = 20

// baseColumns is the fixed header-field part of the schema, in accounting
// spreadsheet order. Columns with no extracted counterpart ("n°ordre",
// "Syst", ...) stay blank and are filled in by hand downstream.
var baseColumns = []string{
	"Type-facture",
	"n°ordre",
	"saisie",
	"Syst",
	"N° Syst.",
	"comptable",
	"Type_Vente",
	"Réseau_Vente",
	"Client",
	"Typologie",
	"Banque créditée",
	"Date commande",
	"Date facture",
	"Date expédition",
	"Commentaire",
	"Règlement",
	"date1",
	"acompte1",
	"date2",
	"acompte2",
	"Date solde",
	"solde",
	"contrôle paiement",
	"reste dû",
	"AVO",
	"tva",
	"ttc",
	"Credit TTC",
	"Credit HT",
	"remise",
	"TVA Collectee",
	"quantité",
}

// articleColumnNames returns the eight column names of article slot i (1-based).
func articleColumnNames(i int) []string {
	return []string{
		fmt.Sprintf("supfam%d", i),
		fmt.Sprintf("fam%d", i),
		fmt.Sprintf("ref%d", i),
		fmt.Sprintf("q%d", i),
		fmt.Sprintf("prix%d", i),
		fmt.Sprintf("r€%d", i),
		fmt.Sprintf("ht%d", i),
		fmt.Sprintf("tva€%d", i),
	}
}

// Columns returns the full fixed column order: the base columns followed by
// MaxArticles positional slots of eight columns each (192 in total).
func Columns() []string {
	cols := make([]string, 0, len(baseColumns)+MaxArticles*8)
	cols = append(cols, baseColumns...)
	for i := 1; i <= MaxArticles; i++ {
		cols = append(cols, articleColumnNames(i)...)
	}
	return cols
}
