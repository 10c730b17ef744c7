package constants

// Permission resources
const (
	ResourceCollege         = "college"
	ResourceUser            = "user"
	ResourceRole            = "role"
	ResourceFinancialRecord = "financial_record"
	ResourceFeeStructure    = "fee_structure"
	ResourceHostelRoom      = "hostel_room"
	ResourceAuditLog        = "audit_log"
)

// Permission actions
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"

	// financial_record specific
	ActionPay             = "pay"
	ActionCancel          = "cancel"
	ActionRefund          = "refund"
	ActionWriteOffLateFee = "write_off_late_fee"

	// hostel_room specific
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// Built-in role names
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleWarden     = "warden"
	RoleStudent    = "student"
	RoleStaff      = "staff"
)
