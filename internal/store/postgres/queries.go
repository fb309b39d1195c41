package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/store"
)

// leadColumns is the column list used for SELECT statements on the leads table.
const leadColumns = `id, name, email, phone, company, status, notes, created_at, updated_at`

// paymentColumns is the column list for the payment_requests table.
const paymentColumns = `id, vendor_name, amount, program, due_date, requester_email, notes,
	status, container_id, asana_task_id, qbo_invoice_id, drive_folder_id, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateLead(ctx context.Context, db executor, l *model.Lead) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO leads (id, name, email, phone, company, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID,
		l.Name,
		l.Email,
		nullString(l.Phone),
		nullString(l.Company),
		string(l.Status),
		nullString(l.Notes),
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func queryGetLead(ctx context.Context, db executor, id string) (*model.Lead, error) {
	row := db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return l, err
}

func queryListLeads(ctx context.Context, db executor) ([]*model.Lead, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func queryUpdateLead(ctx context.Context, db executor, l *model.Lead) error {
	res, err := db.ExecContext(ctx, `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, company = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1`,
		l.ID,
		l.Name,
		l.Email,
		nullString(l.Phone),
		nullString(l.Company),
		string(l.Status),
		nullString(l.Notes),
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryDeleteLead(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryCreatePaymentRequest(ctx context.Context, db executor, p *model.PaymentRequest) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO payment_requests (
			id, vendor_name, amount, program, due_date, requester_email, notes,
			status, container_id, asana_task_id, qbo_invoice_id, drive_folder_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID,
		p.VendorName,
		p.Amount,
		p.Program,
		p.DueDate,
		p.RequesterEmail,
		nullString(p.Notes),
		string(p.Status),
		nullString(p.ContainerID),
		nullString(p.AsanaTaskID),
		nullString(p.QBOInvoiceID),
		nullString(p.DriveFolderID),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func queryGetPaymentRequest(ctx context.Context, db executor, id string) (*model.PaymentRequest, error) {
	row := db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payment_requests WHERE id = $1`, id)
	p, err := scanPaymentRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return p, err
}

func queryListPaymentRequests(ctx context.Context, db executor) ([]*model.PaymentRequest, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payment_requests ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPaymentRequests(rows)
}

func queryUpdatePaymentRequest(ctx context.Context, db executor, p *model.PaymentRequest) error {
	res, err := db.ExecContext(ctx, `
		UPDATE payment_requests
		SET vendor_name = $2, amount = $3, program = $4, due_date = $5, requester_email = $6,
			notes = $7, status = $8, container_id = $9, asana_task_id = $10,
			qbo_invoice_id = $11, drive_folder_id = $12, updated_at = $13
		WHERE id = $1`,
		p.ID,
		p.VendorName,
		p.Amount,
		p.Program,
		p.DueDate,
		p.RequesterEmail,
		nullString(p.Notes),
		string(p.Status),
		nullString(p.ContainerID),
		nullString(p.AsanaTaskID),
		nullString(p.QBOInvoiceID),
		nullString(p.DriveFolderID),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryDeletePaymentRequest(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM payment_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryLookupIdempotencyKey(ctx context.Context, db executor, key string) (string, error) {
	var recordID string
	err := db.QueryRowContext(ctx, `SELECT record_id FROM idempotency_keys WHERE key = $1`, key).Scan(&recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	return recordID, err
}

func querySaveIdempotencyKey(ctx context.Context, db executor, key, recordID string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO idempotency_keys (key, record_id) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`,
		key, recordID)
	return err
}

func queryRecordAudit(ctx context.Context, db executor, ev *model.AuditEvent) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO audit_log (action, entity, entity_id, actor, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		ev.Action,
		ev.Entity,
		ev.EntityID,
		nullString(ev.Actor),
		jsonbBytes(ev.Payload),
		ev.CreatedAt,
	).Scan(&ev.ID)
}

func queryListAudit(ctx context.Context, db executor, entityID string) ([]*model.AuditEvent, error) {
	query := `SELECT id, action, entity, entity_id, actor, payload, created_at FROM audit_log`
	var args []any
	if entityID != "" {
		query += ` WHERE entity_id = $1`
		args = append(args, entityID)
	}
	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditEvents(rows)
}

// requireRow maps a zero-row-affected result to store.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
