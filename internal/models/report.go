package models

// RevenueSummary aggregates paid bills over a reporting window.
type RevenueSummary struct {
	BillCount     int64   `json:"billCount" bson:"bill_count"`
	Revenue       float64 `json:"revenue" bson:"revenue"`
	PlayRevenue   float64 `json:"playRevenue" bson:"play_revenue"`
	ServiceAmount float64 `json:"serviceAmount" bson:"service_amount"`
	DiscountTotal float64 `json:"discountTotal" bson:"discount_total"`
	AverageBill   float64 `json:"averageBill" bson:"average_bill"`
}

// DayRevenue is one row of the revenue-by-day report, keyed YYYY-MM-DD.
type DayRevenue struct {
	Date      string  `json:"date" bson:"_id"`
	BillCount int64   `json:"billCount" bson:"bill_count"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
}

// ProductSales is one row of the top-products report, keyed by the item
// name snapshot so renamed products keep their historical rows.
type ProductSales struct {
	Name   string  `json:"name" bson:"_id"`
	Qty    int64   `json:"qty" bson:"qty"`
	Amount float64 `json:"amount" bson:"amount"`
}

// TableRevenue is one row of the revenue-by-table report.
type TableRevenue struct {
	TableName string  `json:"tableName" bson:"_id"`
	BillCount int64   `json:"billCount" bson:"bill_count"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
	Minutes   int64   `json:"minutes" bson:"minutes"`
}
