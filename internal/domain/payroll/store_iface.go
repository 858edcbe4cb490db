package payroll

import "context"

type StoreAPI interface {
	GetRecord(ctx context.Context, recordID string) (*PayrollRecord, error)
	CreateRecord(ctx context.Context, rec *PayrollRecord) (string, error)
	UpdateComponents(ctx context.Context, rec *PayrollRecord) error
	ApproveRecord(ctx context.Context, recordID string) error
	MarkPaid(ctx context.Context, recordID string) error
	ListRecords(ctx context.Context, month, employeeID string) ([]PayrollRecord, error)
}
