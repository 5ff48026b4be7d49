// Package storage serves the solver over HTTP and keeps every user's solve
// history in SQLite.
package storage

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/XJIeI5/computor/internal/config"
	"github.com/XJIeI5/computor/internal/logger"
	"github.com/XJIeI5/computor/internal/parser"
)

type storage struct {
	router *mux.Router
	db     *sql.DB

	key        []byte
	tokenTTL   time.Duration
	bcryptCost int
	parserOpts []parser.Option
}

func newStorage(db *sql.DB, cfg *config.Config) *storage {
	s := &storage{
		db:         db,
		key:        []byte(cfg.Auth.JwtSecret),
		tokenTTL:   cfg.Auth.TTL(),
		bcryptCost: cfg.Auth.BcryptCost,
		parserOpts: cfg.Parser.Options(),
	}

	r := mux.NewRouter()
	r.Use(logRequests)
	// user handle
	r.HandleFunc("/register", s.handleRegister).Methods("POST")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	// equation handle
	r.HandleFunc("/solve", s.handleSolve).Methods("POST")
	r.HandleFunc("/result", s.handleGetResult).Methods("GET")
	r.HandleFunc("/history", s.handleHistory).Methods("GET")

	s.router = r

	return s
}

func (s *storage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func GetServer(cfg *config.Config, db *sql.DB) *http.Server {
	var _addr string
	addr, port := cfg.Server.Host, cfg.Server.Port
	if strings.Contains(addr, "localhost") || strings.Contains(addr, "127.0.0.1") {
		_addr = fmt.Sprintf(":%d", port)
	} else {
		_addr = fmt.Sprintf("%s:%d", strings.TrimPrefix(strings.TrimPrefix(addr, "http://"), "https://"), port)
	}
	return &http.Server{
		Addr:         _addr,
		Handler:      newStorage(db, cfg),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}
}

// CreateTables prepares an empty database.
func CreateTables(ctx context.Context, db *sql.DB) error {
	const (
		usersTable = `
		CREATE TABLE IF NOT EXISTS users(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			login TEXT NOT NULL UNIQUE,
			hashedPassword TEXT NOT NULL
		);`

		equationsTable = `
		CREATE TABLE IF NOT EXISTS equations(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hash INTEGER NOT NULL,
			canonical TEXT NOT NULL,
			equation TEXT NOT NULL,
			userId INTEGER NOT NULL,
			status TEXT,
			reducedForm TEXT,
			degree INTEGER,
			result TEXT,
			output TEXT,

			FOREIGN KEY (userId) REFERENCES users (id)
		);`
	)

	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, equationsTable); err != nil {
		return err
	}
	return nil
}

// logRequests tags every response with an X-Request-Id, reusing the
// caller's when present.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestId := r.Header.Get("X-Request-Id")
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestId)
		next.ServeHTTP(w, r)
		logger.Info("request",
			zap.String("id", requestId),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

type state string
type exprHash int

// canonicalForm joins the tokens of line with single spaces, so "5*X=1" and
// "5 * X = 1" share a record while "1 2" and "12" do not. Input that does
// not tokenize is kept verbatim.
func canonicalForm(line string, opts []parser.Option) string {
	tokens, err := parser.Tokenize(line, opts...)
	if err != nil {
		return line
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func getHash(canonical string) exprHash {
	h := sha1.New()
	h.Write([]byte(canonical))
	return exprHash(binary.BigEndian.Uint32(h.Sum(nil)))
}

const (
	has_error state = "error"
	solved    state = "ok"
)

type equationRecord struct {
	Id          int64  `json:"id"`
	Equation    string `json:"equation"`
	ReducedForm string `json:"reduced_form"`
	Degree      int    `json:"degree"`
	Status      state  `json:"status"`
	Result      string `json:"result"`
	Output      string `json:"output"`
}
