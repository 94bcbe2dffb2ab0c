// Package utils provides input validation shared by the HTTP layer and the
// integration provider: tool IDs, categories, discovery queries and integrand
// expressions.
package utils
