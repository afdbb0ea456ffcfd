package db

const sessionColumns = `
	s.id,
	s.account_id,
	s.fingerprint,
	s.name,
	s.device_type,
	s.os,
	s.browser,
	s.user_agent,
	s.ip,
	s.is_active,
	s.is_trusted,
	s.access_token,
	s.refresh_token,
	s.token_expires_at,
	s.lock_until,
	s.failed_attempts,
	s.login_count,
	s.last_active,
	s.last_login_at,
	s.last_logout_at,
	s.action_log,
	s.created_at,
	s.updated_at`

const getSession = `
SELECT` + sessionColumns + `
FROM device_sessions s
WHERE s.account_id = $1 AND s.fingerprint = $2
`

const getSessionByID = `
SELECT` + sessionColumns + `
FROM device_sessions s
WHERE s.id = $1 AND s.account_id = $2
`

const getSessionByRefresh = `
SELECT` + sessionColumns + `
FROM device_sessions s
WHERE s.refresh_token = $1 AND s.refresh_token <> ''
`

const countActiveSessions = `
SELECT COUNT(*)
FROM device_sessions
WHERE account_id = $1 AND is_active
`

const createSession = `
INSERT INTO device_sessions (
	id, account_id, fingerprint, name, device_type, os, browser, user_agent, ip,
	is_active, login_count, last_active, last_login_at, action_log
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, 1, $10, $10, $11)
RETURNING created_at, updated_at
`

const reactivateSession = `
UPDATE device_sessions s
SET is_active = TRUE,
    login_count = s.login_count + 1,
    name = COALESCE(NULLIF($2, ''), s.name),
    device_type = COALESCE(NULLIF($3, ''), s.device_type),
    os = COALESCE(NULLIF($4, ''), s.os),
    browser = COALESCE(NULLIF($5, ''), s.browser),
    user_agent = COALESCE(NULLIF($6, ''), s.user_agent),
    ip = COALESCE(NULLIF($7, ''), s.ip),
    last_active = $8,
    last_login_at = $8,
    updated_at = NOW()
WHERE s.id = $1
RETURNING` + sessionColumns

const updateSessionTokens = `
UPDATE device_sessions
SET access_token = $2,
    refresh_token = $3,
    token_expires_at = $4,
    updated_at = NOW()
WHERE id = $1
`

const rotateSessionTokens = `
UPDATE device_sessions
SET access_token = $2,
    refresh_token = $3,
    token_expires_at = $4,
    updated_at = NOW()
WHERE id = $1 AND refresh_token = $5 AND is_active
`

const setSessionTrusted = `
UPDATE device_sessions
SET is_trusted = $2,
    updated_at = NOW()
WHERE id = $1
`

const lockSession = `
UPDATE device_sessions
SET lock_until = $2,
    updated_at = NOW()
WHERE id = $1
`

const unlockSession = `
UPDATE device_sessions
SET lock_until = NULL,
    failed_attempts = 0,
    updated_at = NOW()
WHERE id = $1
`

const incrementSessionFailures = `
UPDATE device_sessions
SET failed_attempts = failed_attempts + 1,
    updated_at = NOW()
WHERE id = $1
`

const deactivateSession = `
UPDATE device_sessions
SET is_active = FALSE,
    access_token = '',
    refresh_token = '',
    token_expires_at = NULL,
    last_logout_at = $2,
    updated_at = NOW()
WHERE id = $1 AND is_active
`

const deactivateAllSessions = `
UPDATE device_sessions
SET is_active = FALSE,
    access_token = '',
    refresh_token = '',
    token_expires_at = NULL,
    last_logout_at = $2,
    updated_at = NOW()
WHERE account_id = $1 AND is_active
`

// appendSessionAction appends and trims inside one UPDATE so concurrent
// appends serialize on the row lock instead of overwriting each other.
const appendSessionAction = `
UPDATE device_sessions
SET action_log = (
        SELECT COALESCE(jsonb_agg(e.value ORDER BY e.ord), '[]'::jsonb)
        FROM (
            SELECT t.value, t.ord
            FROM jsonb_array_elements(device_sessions.action_log || jsonb_build_array($2::jsonb))
                WITH ORDINALITY AS t(value, ord)
            ORDER BY t.ord DESC
            LIMIT $3
        ) e
    ),
    last_active = $4,
    updated_at = NOW()
WHERE id = $1
`

const deleteSession = `
DELETE FROM device_sessions
WHERE id = $1 AND account_id = $2
`
