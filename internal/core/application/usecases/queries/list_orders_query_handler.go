package queries

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries straight from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the newest orders first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ownerColumn := "customer_id"
	if query.Actor().Role == services.RoleSupplier {
		ownerColumn = "supplier_id"
	}

	codes := make([]string, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		codes = append(codes, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			o.id,
			o.number,
			o.supplier_id,
			o.customer_id,
			o.status,
			o.total_amount,
			o.vat_amount,
			o.desired_delivery_date,
			o.created_at,
			o.updated_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
		FROM orders o
		WHERE o.%s = ?
			AND (cardinality(?::text[]) = 0 OR o.status = ANY(?::text[]))
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, ownerColumn),
		query.Actor().ID.Bytes(),
		pq.Array(codes),
		pq.Array(codes),
		query.Limit(),
		query.Offset(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			id, supplierID, customerID uuid.UUID
			status                     string
			total, vat                 decimal.Decimal
			desired                    *time.Time
			summary                    OrderSummary
		)

		if err = rows.Scan(
			&id,
			&summary.Number,
			&supplierID,
			&customerID,
			&status,
			&total,
			&vat,
			&desired,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.ItemCount,
		); err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.SupplierID, err = kernel.UUIDFromBytes(supplierID[:]); err != nil {
			return nil, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if summary.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if summary.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if summary.VatAmount, err = kernel.NewMoney(vat); err != nil {
			return nil, err
		}
		summary.DesiredDeliveryDate = desired
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
