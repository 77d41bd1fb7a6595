package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/email"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/accountrepo"
	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/webhook"
	"storefront/internal/core/application/notification"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     order.PricingPolicy
	metrics    *metrics.Metrics
	logger     *slog.Logger

	notifier *notification.Gateway
	closers  []io.Closer
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, m *metrics.Metrics, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := pricingPolicy(config)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		metrics:    m,
		logger:     logger,
	}

	routes, err := c.notificationRoutes()
	if err != nil {
		return nil, err
	}
	c.notifier = notification.NewGateway(routes, notification.Options{
		Timeout: config.NotificationTimeout,
		Admin:   notification.Recipient{Name: "Admin", Phone: config.AdminWhatsAppNumber},
		Metrics: m,
		Logger:  logger,
	})
	return c, nil
}

func pricingPolicy(config Config) (order.PricingPolicy, error) {
	threshold, err := kernel.NewMoney(config.FreeShippingThreshold)
	if err != nil {
		return order.PricingPolicy{}, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err)
	}
	fee, err := kernel.NewMoney(config.FlatShippingFee)
	if err != nil {
		return order.PricingPolicy{}, fmt.Errorf("FLAT_SHIPPING_FEE: %w", err)
	}
	return order.NewPricingPolicy(config.TaxRate, threshold, fee)
}

// notificationRoutes registers only the channels that are configured.
func (c *CompositionRoot) notificationRoutes() ([]notification.Route, error) {
	var routes []notification.Route

	if c.config.EmailEnabled() {
		ch, err := email.NewChannel(email.Config{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUser,
			Password: c.config.SMTPPassword,
			From:     c.config.SMTPFrom,
		})
		if err != nil {
			return nil, err
		}
		routes = append(routes, notification.Route{Channel: ch, Audience: notification.AudienceCustomer})
	} else {
		c.logger.Warn("SMTP_HOST is not set, customer emails are disabled")
	}

	if c.config.WhatsAppEnabled() {
		routes = append(routes, notification.Route{
			Channel: webhook.NewChannel(webhook.Config{
				URL:     c.config.WhatsAppAPIURL,
				Token:   c.config.WhatsAppAPIToken,
				Timeout: c.config.NotificationTimeout,
			}),
			Audience: notification.AudienceAdmin,
			Kinds:    []ports.NotificationKind{ports.OrderCreated},
		})
	} else {
		c.logger.Warn("WhatsApp settings are incomplete, admin alerts are disabled")
	}

	if c.config.KafkaEnabled() {
		ch := kafka.NewChannel(c.config.KafkaHost, c.config.KafkaOrderChangedTopic)
		c.closers = append(c.closers, ch)
		routes = append(routes, notification.Route{Channel: ch, Audience: notification.AudienceBroadcast})
	}

	return routes, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		catalogrepo.NewGormCatalog(c.gormDB),
		c.policy,
		c.config.OrderNumberPrefix,
	)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateShippingDetailsCommandHandler() *commands.UpdateShippingDetailsCommandHandler {
	h := commands.NewUpdateShippingDetailsCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() (*commands.DispatchNotificationsCommandHandler, error) {
	resolver, err := queries.NewOrderViewResolver(
		accountrepo.NewGormAccounts(c.gormDB),
		catalogrepo.NewGormCatalog(c.gormDB),
	)
	if err != nil {
		return nil, err
	}
	h := commands.NewDispatchNotificationsCommandHandler(c.orderUoWFactory(), resolver, c.notifier, c.logger)
	return &h, nil
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:     c.CreateChangeOrderStatusCommandHandler(),
		UpdateShippingDetails: c.CreateUpdateShippingDetailsCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	handler, err := c.CreateDispatchNotificationsCommandHandler()
	if err != nil {
		return nil, err
	}
	dispatch := jobs.NewNotificationDispatchJob(handler, jobs.NotificationDispatchJobOptions{
		BatchSize: c.config.NotificationBatchSize,
		Metrics:   c.metrics,
	}, c.logger)
	return jobs.NewJobManager(dispatch), nil
}

// Close releases outbound channel connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
