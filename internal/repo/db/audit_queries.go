package db

const createAuditEvent = `
INSERT INTO audit_events (id, account_id, kind, severity, fingerprint, ip, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
