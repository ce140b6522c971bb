package payroll

// Computation holds the per-period arithmetic for one employee.
type Computation struct {
	GrossSalary   float64
	TotalAdvances float64
	NetSalary     float64
}

// Compute applies the monthly salary rules: gross = base + bonus, net =
// gross - deductions - approved advances, floored at zero.
func Compute(baseSalary, bonus, deductions, totalAdvances float64) Computation {
	gross := baseSalary + bonus
	net := gross - deductions - totalAdvances
	if net < 0 {
		net = 0
	}
	return Computation{
		GrossSalary:   gross,
		TotalAdvances: totalAdvances,
		NetSalary:     net,
	}
}

// DeriveStatus maps cumulative payment progress onto a payment status:
// paid once amountPaid covers netSalary, partial for anything in between.
func DeriveStatus(netSalary, amountPaid float64) string {
	switch {
	case amountPaid >= netSalary:
		return StatusPaid
	case amountPaid > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// Remaining returns what is still owed, never negative.
func Remaining(netSalary, amountPaid float64) float64 {
	remaining := netSalary - amountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}
