/*
Package expr compiles integrand expressions written in JavaScript and evaluates
them inside sandboxed goja runtimes.

# Expressions

An expression is the body of a function of x:

	sin(x) * exp(-x)        // scalar integrands, x is a number
	x[0] * x[0] + x[1]      // vector integrands, x is an array

Every Math member is also bound as a global (sin, exp, PI, ...), and ln is an
alias of log. require, process, module and exports are removed.

# Sessions

A Session binds one compiled Program to one Runtime for the duration of an
integration. Its Scalar and Vector methods have the shapes of quadrature.Func
and montecarlo.Func. A failed call records the error and returns NaN; every
later call returns NaN without entering the VM, so the numeric core sees a
non-finite value and stops or degrades quickly. Err reports the first failure.

A watchdog interrupts the VM when the runtime timeout elapses or the
context is cancelled.

# Pooling

Pool keeps a fixed set of warm runtimes:

	pool, _ := expr.NewPool(expr.DefaultConfig(), 4)
	defer pool.Close()

	err := pool.Run(ctx, prog, func(s *expr.Session) error {
		res, err = quadrature.Integrate(s.Scalar, 0, 1)
		return err
	})
*/
package expr
