package model

import (
	"github.com/shopspring/decimal"
)

// OrderDashboard is the order overview shown on the home page
type OrderDashboard struct {
	TotalOrders      int64           `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TodayOrders      int64           `json:"todayOrders"`
	TodayRevenue     decimal.Decimal `json:"todayRevenue"`
}

// RecordTypeTotal groups owner records of one type
type RecordTypeTotal struct {
	RecordType    string          `json:"type"`
	RecordCount   int64           `json:"recordCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

// ExpenseDashboard is the owner records overview
type ExpenseDashboard struct {
	TotalRecords  int64             `json:"totalRecords"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	TodayRecords  int64             `json:"todayRecords"`
	TodayAmount   decimal.Decimal   `json:"todayAmount"`
	RecordsByType []RecordTypeTotal `json:"recordsByType"`
}

// FinancialSummary breaks owner records of a period down by type
type FinancialSummary struct {
	ByType  []RecordTypeTotal `json:"byType"`
	Overall struct {
		GrandTotal   decimal.Decimal `json:"grandTotal"`
		TotalRecords int64           `json:"totalRecords"`
	} `json:"overall"`
}
