package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, password_hash, national_id, first_name, last_name)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, email, password_hash, national_id, first_name, last_name, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, national_id, first_name, last_name, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, password_hash, national_id, first_name, last_name, created_at
    FROM users
    WHERE user_id = $1;`

	deleteSessionsForUser = `DELETE FROM sessions
    WHERE user_id = $1;`

	insertSession = `INSERT INTO sessions (token, user_id, expires_at)
    VALUES ($1, $2, $3);`

	findSessionByToken = `SELECT token, user_id, expires_at, created_at
    FROM sessions
    WHERE token = $1;`

	deleteSessionByToken = `DELETE FROM sessions
    WHERE token = $1;`

	deleteExpiredSessions = `DELETE FROM sessions
    WHERE expires_at <= $1;`

	createAccount = `INSERT INTO accounts (user_id, type, balance_cents, status)
    VALUES ($1, $2, 0, 'active')
    RETURNING account_id;`

	findAccountByID = `SELECT account_id, user_id, type, balance_cents, status, created_at
    FROM accounts
    WHERE account_id = $1 AND user_id = $2;`

	listAccountsByUser = `SELECT account_id, user_id, type, balance_cents, status, created_at
    FROM accounts
    WHERE user_id = $1
    ORDER BY account_id;`

	deleteAccountByID = `DELETE FROM accounts
    WHERE account_id = $1;`

	// The funding read-modify-write: the row lock taken here serializes
	// concurrent deposits to the same account.
	selectAccountForUpdate = `SELECT balance_cents, status
    FROM accounts
    WHERE account_id = $1
    FOR UPDATE;`

	insertTransaction = `INSERT INTO transactions (reference, account_id, type, amount_cents, status)
    VALUES ($1, $2, 'deposit', $3, 'completed')
    RETURNING transaction_id, reference, account_id, type, amount_cents, status, created_at;`

	updateAccountBalance = `UPDATE accounts
    SET balance_cents = $1
    WHERE account_id = $2;`

	countTransactionsByAccount = `SELECT COUNT(*)
    FROM transactions
    WHERE account_id = $1;`
)

// buildTransactionsPageQuery builds the newest-first page query for an
// account's transaction history.
func buildTransactionsPageQuery(accountID int64, limit, offset uint64) (string, []any, error) {
	query, args, err := sq.
		Select("transaction_id", "reference", "account_id", "type", "amount_cents", "status", "created_at").
		From("transactions").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "transaction_id DESC").
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
