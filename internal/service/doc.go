// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// defined in internal/store to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete storage implementation. Every error a service
// returns to its caller is a *domain.Error: expected outcomes carry the
// message shown to clients and the matching kind, while unexpected failures
// are classified as internal and wrap a ServiceError naming the operation.
//
// Operations that touch more than one row run inside store.RunInTransaction.
package service
