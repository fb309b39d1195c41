package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/crmbase/crmdesk/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanLead scans a single row into a model.Lead.
// The row must contain columns in the order defined by leadColumns.
func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var (
		phone   sql.NullString
		company sql.NullString
		notes   sql.NullString
	)

	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&phone,
		&company,
		&l.Status,
		&notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Phone = phone.String
	l.Company = company.String
	l.Notes = notes.String
	return &l, nil
}

func scanLeads(rows *sql.Rows) ([]*model.Lead, error) {
	var leads []*model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}

// scanPaymentRequest scans a single row into a model.PaymentRequest.
// The row must contain columns in the order defined by paymentColumns.
func scanPaymentRequest(row scannable) (*model.PaymentRequest, error) {
	var p model.PaymentRequest
	var (
		notes         sql.NullString
		containerID   sql.NullString
		asanaTaskID   sql.NullString
		qboInvoiceID  sql.NullString
		driveFolderID sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.VendorName,
		&p.Amount,
		&p.Program,
		&p.DueDate,
		&p.RequesterEmail,
		&notes,
		&p.Status,
		&containerID,
		&asanaTaskID,
		&qboInvoiceID,
		&driveFolderID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Notes = notes.String
	p.ContainerID = containerID.String
	p.AsanaTaskID = asanaTaskID.String
	p.QBOInvoiceID = qboInvoiceID.String
	p.DriveFolderID = driveFolderID.String
	return &p, nil
}

func scanPaymentRequests(rows *sql.Rows) ([]*model.PaymentRequest, error) {
	var payments []*model.PaymentRequest
	for rows.Next() {
		p, err := scanPaymentRequest(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// scanAuditEvent scans a single row into a model.AuditEvent.
func scanAuditEvent(row scannable) (*model.AuditEvent, error) {
	var ev model.AuditEvent
	var (
		actor   sql.NullString
		payload []byte
	)
	err := row.Scan(&ev.ID, &ev.Action, &ev.Entity, &ev.EntityID, &actor, &payload, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	ev.Actor = actor.String
	if len(payload) > 0 {
		ev.Payload = json.RawMessage(payload)
	}
	return &ev, nil
}

func scanAuditEvents(rows *sql.Rows) ([]*model.AuditEvent, error) {
	var events []*model.AuditEvent
	for rows.Next() {
		ev, err := scanAuditEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
