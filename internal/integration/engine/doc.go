// Package engine runs integration requests whose integrand is a JavaScript
// expression. It binds the numeric packages (quadrature, montecarlo) to
// pooled expression runtimes and applies the configured resource limits.
// The service provider and the batch runner both go through Engine.Run.
package engine
