/*
catalog.go - Fixed, ordered lists of selectable values

PURPOSE:
  Catalogs are the two option lists the workflow selects from: books
  (sportsbook/operator accounts) and payment methods. They are pure data,
  fixed at process start, and ordered - the paginator slices them in
  catalog order.

DUPLICATES:
  Duplicate entries are a caller bug, not a runtime error. Membership is
  checked by linear scan; the lists are small and fixed.

SEE ALSO:
  - paginate.go: Windows a catalog for display
  - workflow.go: Validates selections against these lists
*/
package withdraw

// Catalog is a fixed, ordered list of selectable string values.
type Catalog []string

// Contains reports whether value is a member of the catalog.
func (c Catalog) Contains(value string) bool {
	for _, v := range c {
		if v == value {
			return true
		}
	}
	return false
}

// =============================================================================
// DEFAULT CATALOGS
// =============================================================================

// DefaultPageSize is how many books fit in one selection prompt.
const DefaultPageSize = 25

// DefaultPaymentMethods is the standard payout method list.
var DefaultPaymentMethods = Catalog{
	"Interac E-transfer",
	"Crypto",
	"Debit Card",
	"PayPal",
	"Customer Payout",
	"Invoice Payment",
}

// DefaultBooks is the standard book list, in display order.
var DefaultBooks = Catalog{
	"FANDUEL", "888CASINO", "BALLY", "BET365", "BETANO", "BET99", "BETDSI", "BETMGM",
	"BETONLINE", "BETRIVERS", "BETSAFE", "BETUS", "BETVICTOR", "BETWAY", "BETWHALE",
	"BODOG", "BOOKMAKER", "BWIN", "CAESARS", "CASUMO", "DRAFTKINGS", "FITZDARES", "LEOVEGAS",
	"MYBOOKIE", "NEO", "NORTHSTAR BET", "PARTY SPORTS", "PINNY", "PLAY FALLSVIEW", "POINTSBET",
	"POWER PLAY", "RIVALRY", "SPORTSBETTING.AG", "SPORTS INTERACTION", "TITAN",
	"THE SCORE BET", "TONYBET", "XBET", "TD", "RBC", "BETCRIS", "WILDZ",
}
