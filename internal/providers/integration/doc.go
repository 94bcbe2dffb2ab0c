// Package integration exposes the numerical integration engine as a
// service provider. Each integration method is a tool named
// "integration.<method>"; results carry the estimate, its error, the
// number of integrand evaluations and the elapsed time.
package integration
