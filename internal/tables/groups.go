package tables

import (
	"github.com/google/uuid"

	"github.com/TemirB/pos-core/internal/domain"
)

// ComputeLinkedGroups lists one group per distinct group id among active orders that span
// more than one table. Colors are left empty; see ColorAssigner.
func ComputeLinkedGroups(orders []domain.OrderRecord) []domain.LinkedGroup {
	seen := make(map[string]struct{})
	groups := make([]domain.LinkedGroup, 0)

	for _, o := range ActiveOrders(orders) {
		if len(o.LinkedTables) <= 1 {
			continue
		}
		id := o.GroupID
		if id == "" {
			id = SyntheticGroupID(o.ID)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		numbers := make([]int, len(o.LinkedTables))
		copy(numbers, o.LinkedTables)
		groups = append(groups, domain.LinkedGroup{
			GroupID:      id,
			OrderID:      o.ID,
			TableNumbers: numbers,
		})
	}
	return groups
}

// SyntheticGroupID derives a stable group id for a linked order that has none.
func SyntheticGroupID(orderID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("order:"+orderID)).String()
}
