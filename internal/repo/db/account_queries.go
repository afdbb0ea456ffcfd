package db

const accountColumns = `
	a.id,
	a.email,
	a.password,
	a.role,
	a.org_id,
	a.failed_attempts,
	a.lock_until,
	a.last_login_at,
	a.max_devices,
	a.created_at,
	a.updated_at`

const accountGetByEmailQ = `
SELECT` + accountColumns + `
FROM accounts a
WHERE lower(a.email) = lower($1)
`

const accountGetByIDQ = `
SELECT` + accountColumns + `
FROM accounts a
WHERE a.id = $1
`

const accountUpdatePasswordQ = `
UPDATE accounts
SET password = $1,
    updated_at = NOW()
WHERE id = $2
`

const accountIncrementFailuresQ = `
UPDATE accounts
SET failed_attempts = failed_attempts + 1,
    lock_until = CASE
        WHEN failed_attempts + 1 >= $2 THEN $3
        ELSE lock_until
    END,
    updated_at = NOW()
WHERE id = $1
RETURNING failed_attempts, lock_until
`

const accountResetFailuresQ = `
UPDATE accounts
SET failed_attempts = 0,
    lock_until = NULL,
    last_login_at = $2,
    updated_at = NOW()
WHERE id = $1
`
