package domain

import (
	"github.com/shopspring/decimal"
)

// Employee is the payroll back-end's employee-details record. It seeds
// the form once at startup: totalEarnings, pf, vpf and the employer NPS
// ceiling pre-populate their fields, and the FBP list is taken verbatim.
type Employee struct {
	ID             int             `json:"id"`
	EmployeeName   string          `json:"employeeName"`
	EmployeeNumber string          `json:"employeeNumber"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	PF             decimal.Decimal `json:"pf"`
	VPF            decimal.Decimal `json:"vpf"`
	NPSMaxLimit    decimal.Decimal `json:"npsMaxLimit"`
	NPSMaxLimitOld decimal.Decimal `json:"npsMaxLimitOld"`
	NPSMaxLimitNew decimal.Decimal `json:"npsMaxLimitNew"`
	FBP            []FBPItem       `json:"fbp"`

	// IsFySwitch is 1 while the computation window for the current payroll
	// cycle is open. Anything else means the cut-off date has passed.
	IsFySwitch int `json:"isFySwitch"`
}

// WindowOpen reports whether tax computation is available this cycle.
func (e *Employee) WindowOpen() bool {
	return e.IsFySwitch == 1
}
