package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/XJIeI5/computor/internal/computor"
	"github.com/XJIeI5/computor/internal/logger"
)

func (s *storage) handleSolve(w http.ResponseWriter, r *http.Request) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, errorUnknownUser.Error(), http.StatusUnauthorized)
		return
	}

	_expr := struct {
		Value string `json:"equation"`
	}{}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&_expr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	canonical := canonicalForm(_expr.Value, s.parserOpts)
	if rec, err := checkEquationExists(s.db, canonical, userId); err == nil {
		logger.Debug("equation already solved", zap.Int64("id", rec.Id))
		writeRecord(w, solveStatus(rec), rec)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rec := solveRecord(_expr.Value, s)
	id, err := storeEquation(s.db, userId, canonical, rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rec.Id = id
	writeRecord(w, solveStatus(rec), rec)
}

func solveRecord(equation string, s *storage) equationRecord {
	rec := equationRecord{Equation: equation}
	report, err := computor.Solve(equation, s.parserOpts...)
	if err != nil {
		logger.Warn("solve failed", zap.String("equation", equation), zap.Error(err))
		rec.Status = has_error
		rec.Result = err.Error()
		return rec
	}

	var out bytes.Buffer
	if err := report.Render(&out); err != nil {
		rec.Status = has_error
		rec.Result = err.Error()
		return rec
	}
	roots := make([]string, 0, len(report.Solution.Roots))
	for _, root := range report.Solution.Roots {
		roots = append(roots, fmt.Sprintf("%.6f", root))
	}

	rec.Status = solved
	rec.ReducedForm = report.Reduced.String()
	rec.Degree = report.Degree
	rec.Result = strings.Join(roots, " ")
	rec.Output = out.String()
	return rec
}

func writeRecord(w http.ResponseWriter, code int, rec equationRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

// solveStatus is the response code of a freshly solved or cached record.
func solveStatus(rec equationRecord) int {
	if rec.Status == has_error {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

func (s *storage) handleGetResult(w http.ResponseWriter, r *http.Request) {
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, errorUnknownUser.Error(), http.StatusUnauthorized)
		return
	}

	strId := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(strId, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := getEquation(s.db, id, userId)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, fmt.Sprintf("no equation with id %d", id), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRecord(w, http.StatusOK, rec)
}

func (s *storage) handleHistory(w http.ResponseWriter, r *http.Request) {
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, errorUnknownUser.Error(), http.StatusUnauthorized)
		return
	}

	history, err := getHistory(s.db, userId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := json.Marshal(history)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
