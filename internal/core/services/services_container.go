package services

import (
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The ledger services share one lock table and publish to the
// notifier, which also serves subscriptions.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.ChangeNotifierSvc, m *metrics.Metrics, seeds []CompanySeed) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{Notifier: notifier}

	company, err := NewCompanyService(seeds)
	if err != nil {
		return nil, err
	}
	container.Company = company

	options := []ServiceOption{
		WithEntityLocks(NewEntityLocks()),
		WithPublisher(notifier),
		WithMetrics(m),
	}
	container.Listing = NewListingService(repos.LedgerStore, company, options...)
	container.Trade = NewTradeService(repos.LedgerStore, options...)
	container.Wallet = NewWalletService(repos.LedgerStore, options...)

	return container, nil
}
