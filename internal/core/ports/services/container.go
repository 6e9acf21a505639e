package services

// ServiceContainer bundles every service facade for injection into the HTTP
// layer. Handlers depend on these interfaces, never on concrete services.
type ServiceContainer struct {
	Posting       PostingSvcFacade
	Determination DeterminationSvcFacade
	Account       AccountSvcFacade
	Tax           TaxSvcFacade
}
