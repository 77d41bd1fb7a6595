package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

var _ ports.OrderViewResolver = (*OrderViewResolver)(nil)

// OrderViewResolver fills an order with the customer and product data that
// notifications display. A deleted account or product does not fail the
// resolution: the shipping contact and the product ID stand in for them.
type OrderViewResolver struct {
	accounts ports.AccountService
	catalog  ports.CatalogService
}

func NewOrderViewResolver(accounts ports.AccountService, catalog ports.CatalogService) (*OrderViewResolver, error) {
	if accounts == nil {
		return nil, errs.NewValueIsRequiredError("accounts")
	}
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	return &OrderViewResolver{accounts: accounts, catalog: catalog}, nil
}

func (r *OrderViewResolver) Resolve(ctx context.Context, o *order.Order) (ports.OrderView, error) {
	if o == nil {
		return ports.OrderView{}, errs.NewValueIsRequiredError("order")
	}

	customer, err := r.customer(ctx, o)
	if err != nil {
		return ports.OrderView{}, err
	}

	items, err := r.items(ctx, o.Items())
	if err != nil {
		return ports.OrderView{}, err
	}

	pricing := o.Pricing()
	return ports.OrderView{
		OrderID:           o.ID(),
		Number:            o.Number(),
		Status:            o.Status(),
		Customer:          customer,
		Items:             items,
		Subtotal:          pricing.Subtotal(),
		Tax:               pricing.Tax(),
		Shipping:          pricing.Shipping(),
		Discount:          pricing.Discount(),
		Total:             pricing.Total(),
		ShippingAddress:   o.ShippingAddress().Fields(),
		TrackingNumber:    o.TrackingNumber(),
		EstimatedDelivery: o.EstimatedDelivery(),
		CreatedAt:         o.CreatedAt(),
	}, nil
}

func (r *OrderViewResolver) customer(ctx context.Context, o *order.Order) (ports.CustomerView, error) {
	shipping := o.ShippingAddress()
	view := ports.CustomerView{Name: shipping.Name(), Phone: shipping.Phone()}

	account, err := r.accounts.Get(ctx, o.CustomerID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return view, nil
		}
		return ports.CustomerView{}, err
	}

	if account.Name != "" {
		view.Name = account.Name
	}
	if account.Phone != "" {
		view.Phone = account.Phone
	}
	view.Email = account.Email
	return view, nil
}

func (r *OrderViewResolver) items(ctx context.Context, lines []order.LineItem) ([]ports.OrderItemView, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID())
	}

	products, err := r.catalog.Products(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.OrderItemView, 0, len(lines))
	for _, line := range lines {
		view := ports.OrderItemView{
			ProductName:   line.ProductID().String(),
			Quantity:      line.Quantity(),
			Price:         line.Price(),
			LineTotal:     line.LineTotal(),
			Customization: line.Customization(),
		}
		if p, ok := products[line.ProductID()]; ok {
			view.ProductName = p.Name
			view.ImageURL = p.ImageURL
		}
		views = append(views, view)
	}
	return views, nil
}
