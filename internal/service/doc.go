// Package service provides the service registry.
//
// The registry keeps a catalog of providers, scores them against free-text
// discovery queries and routes "service.tool" IDs to the owning provider.
//
// Discovery Algorithm:
//   - Keyword matching in ID, name and description
//   - Capability matching
//   - Category bonus
//   - Score-based ranking, ties broken by ID
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(integration.NewProvider(pool, cfg, logger, metrics))
//	services := registry.Discover("monte carlo integration", 5)
//	result, err := registry.Execute(ctx, "integration.quad", params, appCtx)
package service
