package extract

import (
	"strings"

	"github.com/nomadsurfing/invoices-tracker/constants"
)

// webStoreMarkers are the labels that only ever appear on web-store invoices:
// the article-code label, the order-number and order-date labels, and the
// free-shipping phrase. Checked by plain substring containment, position and
// order do not matter.
var webStoreMarkers = []string{
	"UGS",
	"N° de commande",
	"Date de commande",
	"Livraison gratuite",
}

// DetectDialect classifies a document's raw text. The classification is closed
// two-way: any web-store marker means WebStore, the absence of all of them is
// itself the BackOffice signal. There is no unknown state and no error.
func DetectDialect(text string) constants.Dialect {
	for _, marker := range webStoreMarkers {
		if strings.Contains(text, marker) {
			return constants.WebStore
		}
	}
	return constants.BackOffice
}
