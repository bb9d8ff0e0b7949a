package services

// ServiceContainer bundles every service facade handed to the handlers.
type ServiceContainer struct {
	Payroll       PayrollSvcFacade
	Posting       PostingSvcFacade
	AccountConfig AccountConfigSvcFacade
}
