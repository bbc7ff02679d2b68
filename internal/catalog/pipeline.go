package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bookbazaar/pkg/domain"
)

// Pipeline derives the displayed book sequence from the raw fetched set and
// the user's criteria. Apply is a pure transform: same inputs yield the same
// output and the input slice is never mutated.
//
// Search text and category are matched server-side at fetch time and are not
// reapplied here; locally only the price window and the sort order apply.
type Pipeline struct {
	collator *collate.Collator
}

// New builds a pipeline whose title ordering follows the given language tag.
// language.Und gives the collator's default tailoring.
func New(tag language.Tag) *Pipeline {
	return &Pipeline{collator: collate.New(tag)}
}

// Apply filters raw to the criteria's price window and sorts the result.
// All sorts are stable: items with equal keys keep their relative input order.
func (p *Pipeline) Apply(raw []domain.Book, c domain.FilterCriteria) []domain.Book {
	out := make([]domain.Book, 0, len(raw))
	for _, b := range raw {
		if b.Price >= c.PriceMin && b.Price <= c.PriceMax {
			out = append(out, b)
		}
	}
	switch c.SortKey {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return p.collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		// newest: ids grow monotonically with creation time
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out
}
