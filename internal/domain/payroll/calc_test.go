package payroll

import "testing"

func TestComputeSubtractsDeductionsAndAdvances(t *testing.T) {
	calc := Compute(250000, 50000, 25000, 50000)
	if calc.GrossSalary != 300000 {
		t.Fatalf("expected gross 300000, got %v", calc.GrossSalary)
	}
	if calc.NetSalary != 225000 {
		t.Fatalf("expected net 225000, got %v", calc.NetSalary)
	}
	if calc.TotalAdvances != 50000 {
		t.Fatalf("expected advances 50000, got %v", calc.TotalAdvances)
	}
}

func TestComputeFloorsNetAtZero(t *testing.T) {
	calc := Compute(100000, 0, 50000, 80000)
	if calc.NetSalary != 0 {
		t.Fatalf("expected net floored at 0, got %v", calc.NetSalary)
	}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name       string
		net        float64
		amountPaid float64
		want       string
	}{
		{"nothing paid", 225000, 0, StatusPending},
		{"partially paid", 225000, 100000, StatusPartial},
		{"fully paid", 225000, 225000, StatusPaid},
		{"overpaid", 225000, 300000, StatusPaid},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.net, tc.amountPaid); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	if got := Remaining(225000, 100000); got != 125000 {
		t.Fatalf("expected remaining 125000, got %v", got)
	}
	if got := Remaining(225000, 300000); got != 0 {
		t.Fatalf("expected remaining 0 on overpayment, got %v", got)
	}
}
