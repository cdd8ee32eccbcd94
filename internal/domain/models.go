package domain

import "time"

// SaleItem is one line of a completed transaction.
type SaleItem struct {
	ProductID   string  `json:"productId" db:"product_id"`
	ProductName string  `json:"productName" db:"product_name"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	Price       float64 `json:"price" db:"price"`
	BuyingPrice float64 `json:"buyingPrice" db:"buying_price"`
	Subtotal    float64 `json:"subtotal" db:"subtotal"`
	Profit      float64 `json:"profit" db:"profit"`
}

// Sale is an append-only fact: created once, never mutated.
// Timestamp is kept as the raw wire string because the upstream
// spreadsheet is uncontrolled; the report engine parses it leniently
// and skips rows it cannot read.
type Sale struct {
	ID        string     `json:"id" db:"id"`
	Timestamp string     `json:"timestamp" db:"ts"`
	Items     []SaleItem `json:"items" db:"-"`
	Subtotal  float64    `json:"subtotal" db:"subtotal"`
	Tax       float64    `json:"tax,omitempty" db:"tax"`
	Total     float64    `json:"total" db:"total"`
	Profit    float64    `json:"profit" db:"profit"`
	UserID    string     `json:"userId,omitempty" db:"user_id"`
	UserName  string     `json:"userName,omitempty" db:"user_name"`
}

// Expense is a mutable operating cost record. Date is a calendar date
// ("2006-01-02"), not an instant.
type Expense struct {
	ID            string  `json:"id" db:"id"`
	Description   string  `json:"description" db:"description"`
	Category      string  `json:"category" db:"category"`
	Amount        float64 `json:"amount" db:"amount"`
	Date          string  `json:"date" db:"expense_date"`
	PaymentMethod string  `json:"paymentMethod" db:"payment_method"`
	Status        string  `json:"status" db:"status"` // paid | pending
	Notes         string  `json:"notes,omitempty" db:"notes"`
}

// Product is a catalog entry. Stock is decremented by the sale flow.
type Product struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Price        float64 `json:"price" db:"price"`
	BuyingPrice  float64 `json:"buyingPrice" db:"buying_price"`
	Stock        int     `json:"stock" db:"stock"`
	UnitType     string  `json:"unitType,omitempty" db:"unit_type"`
	Category     string  `json:"category,omitempty" db:"category"`
	SupplierID   string  `json:"supplierId,omitempty" db:"supplier_id"`
	SupplierName string  `json:"supplierName,omitempty" db:"supplier_name"`
	Size         string  `json:"size,omitempty" db:"size"`
	Color        string  `json:"color,omitempty" db:"color"`
	Image        string  `json:"image,omitempty" db:"image"`
}

// Closing is the manually entered end-of-day reconciliation snapshot.
// One per calendar date, upsert semantics.
type Closing struct {
	ID        string    `json:"id" db:"id"`
	Date      string    `json:"date" db:"closing_date"`
	Cash      float64   `json:"cash" db:"cash"`
	Float     float64   `json:"float" db:"cash_float"`
	Mpesa     float64   `json:"mpesa" db:"mpesa"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SalesTarget tracks progress toward a revenue goal. CurrentAmount is
// recomputed from the sales in [StartDate, EndDate], never trusted.
type SalesTarget struct {
	ID            string  `json:"id" db:"id"`
	Type          string  `json:"type" db:"target_type"` // daily/weekly/monthly/yearly
	TargetAmount  float64 `json:"targetAmount" db:"target_amount"`
	CurrentAmount float64 `json:"currentAmount" db:"current_amount"`
	StartDate     string  `json:"startDate" db:"start_date"`
	EndDate       string  `json:"endDate" db:"end_date"`
	Status        string  `json:"status" db:"status"` // active | completed | archived
}

// SaleFilter narrows sale listings. Date is an exact local calendar
// date; Month/Year select a calendar month.
type SaleFilter struct {
	Date   string `json:"date,omitempty"`
	Month  int    `json:"month,omitempty"`
	Year   int    `json:"year,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
	Month    int    `json:"month,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// Snapshot is one read-only pull of the upstream datastore. The report
// engine never mutates it.
type Snapshot struct {
	Sales     []Sale    `json:"sales"`
	Expenses  []Expense `json:"expenses"`
	Products  []Product `json:"products"`
	FetchedAt time.Time `json:"fetched_at"`
}
