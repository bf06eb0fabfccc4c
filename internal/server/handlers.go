package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/AdrianWangs/go-hstring/internal/analyzer"
	"github.com/AdrianWangs/go-hstring/pkg/hstring"
	"github.com/AdrianWangs/go-hstring/pkg/logger"
	"github.com/AdrianWangs/go-hstring/pkg/router"
)

const (
	maxRandomLength  = 1024
	maxRandomCount   = 1000
	maxBatchTexts    = 256
	batchConcurrency = 8

	formatJSON     = "json"
	formatMsgpack  = "msgpack"
	formatProtobuf = "protobuf"
)

type healthResponse struct {
	Status string         `json:"status" msgpack:"status"`
	Cached int            `json:"cached" msgpack:"cached"`
	Stats  analyzer.Stats `json:"stats" msgpack:"stats"`
}

type analyzeResponse struct {
	Report *analyzer.Report    `json:"report" msgpack:"report"`
	Top    []hstring.WordCount `json:"top,omitempty" msgpack:"top,omitempty"`
}

type batchRequest struct {
	Texts []string `json:"texts" msgpack:"texts"`
}

type batchResponse struct {
	Reports []*analyzer.Report `json:"reports" msgpack:"reports"`
}

type randomResponse struct {
	Words []hstring.String `json:"words" msgpack:"words"`
}

// handleHealth reports liveness and analyzer counters
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, healthResponse{
		Status: "ok",
		Cached: s.backend.Cached(),
		Stats:  s.backend.Stats(),
	})
}

// handleAnalyze: POST body text, optional ?top=n
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !acceptable(w, r) {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	top, err := intParam(r, "top", 0, 0, 1<<20)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report, err := s.backend.Analyze(r.Context(), body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := analyzeResponse{Report: report}
	if top > 0 {
		resp.Top = report.Top(top)
	}
	s.respond(w, r, resp)
}

// handleAnalyzeBatch: POST {"texts": [...]} as JSON or msgpack
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if !acceptable(w, r) {
		return
	}
	var req batchRequest
	var err error
	if strings.Contains(r.Header.Get("Content-Type"), "msgpack") {
		err = msgpack.NewDecoder(r.Body).Decode(&req)
	} else {
		err = json.NewDecoder(r.Body).Decode(&req)
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if !errors.As(err, &maxErr) {
			err = analyzer.WrapError(analyzer.ErrTypeInvalidRequest, "malformed batch request", err)
		}
		s.fail(w, r, err)
		return
	}
	if len(req.Texts) > maxBatchTexts {
		s.fail(w, r, analyzer.NewError(analyzer.ErrTypeInvalidRequest,
			fmt.Sprintf("at most %d texts per batch", maxBatchTexts)))
		return
	}

	texts := make([][]byte, len(req.Texts))
	for i, t := range req.Texts {
		texts[i] = []byte(t)
	}
	reports, err := s.backend.AnalyzeBatch(r.Context(), texts, batchConcurrency)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, batchResponse{Reports: reports})
}

// handleRandom: GET ?length=n&count=c
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	if !acceptable(w, r, formatProtobuf) {
		return
	}
	length, err := intParam(r, "length", 8, 0, maxRandomLength)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	count, err := intParam(r, "count", 1, 1, maxRandomCount)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	words := s.nextWords(length, count)
	if negotiate(r) == formatProtobuf {
		s.writeProtobuf(w, r, words)
		return
	}
	s.respond(w, r, randomResponse{Words: words})
}

// handleJoin: POST body lines, ?sep= separator (default ", ")
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	lines, err := readLines(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sep := hstring.FromString(", ")
	if r.URL.Query().Has("sep") {
		sep = hstring.FromString(r.URL.Query().Get("sep"))
	}

	joined := sep.Join(lines)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := joined.WriteTo(w); err != nil {
		logger.Warnf("write join response: %v", err)
	}
}

// handleTrim: POST body lines, each trimmed
func (s *Server) handleTrim(w http.ResponseWriter, r *http.Request) {
	s.transformLines(w, r, (*hstring.String).Trim)
}

// handleLower: POST body lines, each lowercased
func (s *Server) handleLower(w http.ResponseWriter, r *http.Request) {
	s.transformLines(w, r, func(line *hstring.String) { line.ToLower() })
}

func (s *Server) transformLines(w http.ResponseWriter, r *http.Request, fn func(*hstring.String)) {
	lines, err := readLines(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	bw := bufio.NewWriter(w)
	for i := range lines {
		fn(&lines[i])
		_, _ = lines[i].WriteTo(bw)
		_ = bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		logger.Warnf("write transform response: %v", err)
	}
}

// readLines splits body into lines with String.ReadLine
func readLines(body io.Reader) ([]hstring.String, error) {
	br := bufio.NewReader(body)
	var lines []hstring.String
	for {
		var line hstring.String
		err := line.ReadLine(br)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

// intParam parses an optional integer query parameter within [lo, hi]
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, analyzer.WrapError(analyzer.ErrTypeInvalidLength, "invalid "+name, err)
	}
	if n < lo || n > hi {
		return 0, analyzer.NewError(analyzer.ErrTypeInvalidLength,
			fmt.Sprintf("%s must be within [%d, %d]", name, lo, hi))
	}
	return n, nil
}

// negotiate picks the response format from ?format= or the Accept header
func negotiate(r *http.Request) string {
	if f := strings.ToLower(r.URL.Query().Get("format")); f != "" {
		return f
	}
	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "msgpack"):
		return formatMsgpack
	case strings.Contains(accept, "protobuf"):
		return formatProtobuf
	}
	return formatJSON
}

// acceptable answers 406 and reports false when the negotiated format is
// neither JSON, msgpack nor one of extra
func acceptable(w http.ResponseWriter, r *http.Request, extra ...string) bool {
	switch f := negotiate(r); {
	case f == formatJSON, f == formatMsgpack, slices.Contains(extra, f):
		return true
	}
	http.Error(w, "unsupported format", http.StatusNotAcceptable)
	return false
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, v interface{}) {
	var (
		data        []byte
		err         error
		contentType string
	)
	switch negotiate(r) {
	case formatJSON:
		data, err = json.Marshal(v)
		contentType = "application/json"
	case formatMsgpack:
		data, err = msgpack.Marshal(v)
		contentType = "application/msgpack"
	default:
		http.Error(w, "unsupported format", http.StatusNotAcceptable)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// writeProtobuf streams each word as a length-delimited BytesValue message
func (s *Server) writeProtobuf(w http.ResponseWriter, r *http.Request, words []hstring.String) {
	var buf []byte
	for _, word := range words {
		msg, err := word.MarshalBinary()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		buf = protowire.AppendBytes(buf, msg)
	}
	w.Header().Set("Content-Type", "application/protobuf")
	_, _ = w.Write(buf)
}

// fail maps an error to an HTTP status
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &maxErr), analyzer.IsInputTooLargeError(err):
		status = http.StatusRequestEntityTooLarge
	case analyzer.IsEmptyInputError(err), analyzer.IsInvalidLengthError(err), analyzer.IsInvalidRequestError(err):
		status = http.StatusBadRequest
	case errors.Is(err, r.Context().Err()) && r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logger.WithField("request_id", router.RequestID(r.Context())).Errorf("request failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}
