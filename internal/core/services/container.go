package services

import (
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
)

// ContainerConfig carries the tunables the services need.
type ContainerConfig struct {
	ReportTimeout time.Duration
	CashFlowRules domain.CashFlowRules
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	balanceSvc := NewBalanceService(repos.AccountRepo, repos.ReportingRepo)

	return &portssvc.ServiceContainer{
		BalanceSvc: balanceSvc,
		AccountSvc: NewAccountService(repos.AccountRepo, balanceSvc),
		JournalSvc: NewJournalService(repos.JournalRepo, repos.AccountRepo),
		ReportingSvc: NewReportingService(repos.ReportingRepo,
			WithReportTimeout(cfg.ReportTimeout),
			WithCashFlowRules(cfg.CashFlowRules),
		),
	}
}
