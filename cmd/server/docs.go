// Package main Lighter API
//
//	@title			Lighter API
//	@version		1.0
//	@description	Reference listing service for declarative pagination.
//
//	@contact.name	Lighter Maintainers
//
//	@license.name	MIT
//
//	@host			localhost:8080
//	@BasePath		/api/v1
//
//	@tag.name			User
//	@tag.description	User management and paginated listings
package main
