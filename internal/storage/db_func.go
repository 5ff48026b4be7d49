package storage

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

var errorUnknownUser = errors.New("unknown user")

func (s *storage) validateToken(bearerToken string) (*jwt.Token, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(bearerToken, "Bearer "))
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	return token, err
}

func (s *storage) getUserId(bearerToken string) (int64, error) {
	if bearerToken == "" {
		return 0, errorUnknownUser
	}
	token, err := s.validateToken(bearerToken)
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errorUnknownUser
	}

	user, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errorUnknownUser
	}
	rawId, ok := user["id"].(string)
	if !ok {
		return 0, errorUnknownUser
	}
	return strconv.ParseInt(rawId, 10, 64)
}

func storeUser(db *sql.DB, login string, hashedPassword []byte) (int64, error) {
	var q string = `
	INSERT INTO users (login, hashedPassword) VALUES (?, ?)
	`

	res, err := db.Exec(q, login, string(hashedPassword))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getUser(db *sql.DB, login string) (id int64, hashedPassword string, err error) {
	var q string = `
	SELECT id, hashedPassword FROM users WHERE login = ?
	`

	err = db.QueryRow(q, login).Scan(&id, &hashedPassword)
	return id, hashedPassword, err
}

func storeEquation(db *sql.DB, userId int64, canonical string, rec equationRecord) (int64, error) {
	var q string = `
	INSERT INTO equations (hash, canonical, equation, userId, status, reducedForm, degree, result, output)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := db.Exec(q, getHash(canonical), canonical, rec.Equation, userId, rec.Status, rec.ReducedForm, rec.Degree, rec.Result, rec.Output)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// checkEquationExists looks a record up by hash and confirms the canonical
// text, so a hash collision is a miss.
func checkEquationExists(db *sql.DB, canonical string, userId int64) (equationRecord, error) {
	var q string = `
	SELECT id, equation, status, reducedForm, degree, result, output
	FROM equations WHERE hash = ? AND canonical = ? AND userId = ?
	ORDER BY id DESC LIMIT 1
	`

	return scanEquation(db.QueryRow(q, getHash(canonical), canonical, userId))
}

func getEquation(db *sql.DB, id, userId int64) (equationRecord, error) {
	var q string = `
	SELECT id, equation, status, reducedForm, degree, result, output
	FROM equations WHERE id = ? AND userId = ?
	`

	return scanEquation(db.QueryRow(q, id, userId))
}

func getHistory(db *sql.DB, userId int64) ([]equationRecord, error) {
	var q string = `
	SELECT id, equation, status, reducedForm, degree, result, output
	FROM equations WHERE userId = ?
	ORDER BY id DESC
	`

	rows, err := db.Query(q, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]equationRecord, 0)
	for rows.Next() {
		rec, err := scanEquation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquation(row rowScanner) (equationRecord, error) {
	var rec equationRecord
	err := row.Scan(&rec.Id, &rec.Equation, &rec.Status, &rec.ReducedForm, &rec.Degree, &rec.Result, &rec.Output)
	return rec, err
}
