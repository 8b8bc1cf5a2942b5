package entity

type Customer struct {
	BaseNoDelete
	BusinessName    string `db:"business_name"`
	Email           string `db:"email"`
	CanPayByInvoice bool   `db:"can_pay_by_invoice"`
}
