package services

import (
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
)

// ServicesContainer bundles all service facades for handler wiring.
type ServicesContainer struct {
	TransactionSvc portssvc.TransactionSvcFacade
	AccountSvc     portssvc.AccountSvcFacade
	BudgetSvc      portssvc.BudgetSvcFacade
	GoalSvc        portssvc.GoalSvcFacade
	UserSvc        portssvc.UserSvcFacade
	InsightSvc     portssvc.InsightSvcFacade
}

// NewServicesContainer wires all services from the repository provider.
func NewServicesContainer(repos portsrepo.RepositoryProvider) *ServicesContainer {
	txnSvc := NewTransactionService(repos.TxManager, repos.TransactionRepo, repos.AccountRepo)
	return &ServicesContainer{
		TransactionSvc: txnSvc,
		AccountSvc:     NewAccountService(repos.AccountRepo, repos.UserRepo),
		BudgetSvc:      NewBudgetService(repos.BudgetRepo, repos.UserRepo),
		GoalSvc:        NewGoalService(repos.GoalRepo, repos.UserRepo, txnSvc),
		UserSvc:        NewUserService(repos.UserRepo),
		InsightSvc:     NewInsightService(repos.AlertRepo, repos.RecRepo, repos.AuditRepo),
	}
}
