// Package routes wires gin route groups to their controllers.
//
// Layout:
//   - api.go: /v1/* JSON API routes
//   - web.go: root and docs routes
//   - routes.go: SetupAllRoutes, the single entry point cmd/server calls
package routes
